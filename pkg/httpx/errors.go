package httpx

import (
	"fmt"
	"net/http"
)

// Error codes used in the error envelope. These are part of the API
// contract; the frontend switches on them.
const (
	CodeValidation         = "validation_error"
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCredentials = "invalid_credentials"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeRateLimited        = "rate_limit_exceeded"
	CodeInternal           = "internal_error"
)

// APIError is a client-visible error with its HTTP status. It implements
// the error interface and knows how to write itself as an error envelope.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this error to the response as a failure envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	WriteJSON(w, e.StatusCode, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: e.Code, Message: e.Message},
	})
}

// WithMessage returns a copy of the error carrying a more specific
// human-readable message. The status and code are preserved.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

var (
	// ErrValidation is returned for malformed or missing input. Handlers
	// usually attach a field-specific message via WithMessage.
	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrUnauthenticated is returned when the bearer token is absent or
	// malformed.
	ErrUnauthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthenticated,
		Message:    "authentication required",
	}

	// ErrInvalidToken is returned when the bearer token fails verification
	// or has expired.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidToken,
		Message:    "the access token is invalid or expired",
	}

	// ErrInvalidCredentials is the single login failure. The same value is
	// used for unknown email and wrong password so the response never leaks
	// which one it was.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidCredentials,
		Message:    "invalid email or password",
	}

	// ErrNotFound covers both true absence and ownership mismatch, which
	// are deliberately indistinguishable to the caller.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    "resource not found",
	}

	// ErrConflict is returned when a unique constraint would be violated,
	// e.g. registering an email that is already taken.
	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       CodeConflict,
		Message:    "resource already exists",
	}

	// ErrInternal is the generic unexpected failure. Details are logged
	// server-side and never surfaced to the client.
	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "internal server error",
	}
)
