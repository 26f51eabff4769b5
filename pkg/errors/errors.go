package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code classifies a failure. Every code maps to one HTTP status and a
// message that is safe to show a visitor.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeInvalidFile   Code = "INVALID_FILE"
	CodeInvalidAction Code = "INVALID_ACTION"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeNotFound      Code = "NOT_FOUND"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeStorage       Code = "STORAGE_FAILURE"
	CodeFileStorage   Code = "FILE_STORAGE_FAILURE"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

type Metadata struct {
	HTTPStatus    int
	PublicMessage string
	// DetailsAllowed lets the response carry Error.Details.
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {http.StatusBadRequest, "validation failed", true},
	CodeInvalidFile:   {http.StatusBadRequest, "file type not allowed", true},
	CodeInvalidAction: {http.StatusBadRequest, "invalid action", false},
	CodeUnauthorized:  {http.StatusUnauthorized, "authentication required", false},
	CodeNotFound:      {http.StatusNotFound, "resource not found", false},
	CodeRateLimit:     {http.StatusTooManyRequests, "rate limit exceeded", false},
	CodeStorage:       {http.StatusInternalServerError, "database error", false},
	CodeFileStorage:   {http.StatusInternalServerError, "file storage error", false},
	CodeInternal:      {http.StatusInternalServerError, "internal server error", false},
	CodeDependency:    {http.StatusServiceUnavailable, "dependency unavailable", true},
}

// MetadataFor returns the metadata of code. Unknown codes are internal errors.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded failure. Message is written for the person who caused it
// ("Product name and description are required."); cause stays in the logs.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. A nil err behaves like New.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.message)
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Cause returns the underlying error text, or the message when there is none.
func (e *Error) Cause() string {
	if e == nil {
		return ""
	}
	if e.cause == nil {
		return e.message
	}
	return e.cause.Error()
}

// As returns the first *Error in err's tree, including errors joined with
// multierr.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether the first *Error in err's tree carries code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
