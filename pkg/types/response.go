package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Outcome is the flat {success, message} body of the public form endpoints.
type Outcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// FlashType tags an admin flash message.
type FlashType string

const (
	FlashSuccess FlashType = "success"
	FlashError   FlashType = "error"
)

// Flash is a one-shot admin notice carried between a form post and the next
// dashboard render.
type Flash struct {
	Message string    `json:"message"`
	Type    FlashType `json:"message_type"`
}
