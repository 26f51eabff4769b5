package auth

import "time"

// LoginRequest is the admin password form.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResult carries the signed token to place in the admin cookie.
type LoginResult struct {
	Token     string
	AccessID  string
	ExpiresAt time.Time
}
