package utils

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common application errors used across services.
var (
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrForbidden          = errors.New("FORBIDDEN")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrConflict           = errors.New("CONFLICT")
	ErrUnavailable        = errors.New("UNAVAILABLE")
)

// ValidationError reports a client input problem. Its message is safe to
// return to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required builds the "<field> is required" validation error.
func Required(field string) error {
	return Invalid(field, "%s is required", field)
}

// MaxLen returns a ValidationError when value is longer than max characters.
func MaxLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return Invalid(field, "%s must be at most %d characters", field, max)
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// NotFound wraps ErrNotFound with a client-visible message.
func NotFound(message string) error {
	return &publicError{kind: ErrNotFound, message: message}
}

// Forbidden wraps ErrForbidden with a client-visible message.
func Forbidden(message string) error {
	return &publicError{kind: ErrForbidden, message: message}
}

// Conflict wraps ErrConflict with a client-visible message.
func Conflict(message string) error {
	return &publicError{kind: ErrConflict, message: message}
}

// publicError is a sentinel-classified error whose message may be shown to clients.
type publicError struct {
	kind    error
	message string
}

func (e *publicError) Error() string { return e.message }
func (e *publicError) Unwrap() error { return e.kind }

// PublicMessage returns the client-visible message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var pe *publicError
	if errors.As(err, &pe) {
		return pe.message, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
