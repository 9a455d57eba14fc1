// Package apperror holds the error kinds that services return to the
// request boundary. Every kind is a sentinel so callers can use errors.Is.
package apperror

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)

// Error pairs a kind with a message that is safe to show to the user.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func InvalidCredentials(message string) error {
	return &Error{Kind: ErrInvalidCredentials, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Message returns the user-facing text of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// IsClientError reports whether err is one of the kinds caused by user input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound)
}
