package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password. Callers must not be able to tell which one it was.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrEmailTaken is returned when registering or changing to an email
	// another account already uses.
	ErrEmailTaken = errors.New("email_taken")

	// ErrNotFound covers both a genuinely missing task and a task owned by
	// someone else. Collapsing the two prevents probing for other users'
	// task IDs.
	ErrNotFound = errors.New("not_found")
)

// ValidationError reports invalid user input with a message safe to show
// to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
