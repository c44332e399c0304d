package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicatePending = errors.New("a price change request for this item is already pending")
	ErrAlreadyDecided   = errors.New("request is already decided")
	ErrInvalidPrice     = errors.New("price cannot be negative")
	ErrUnauthorized     = errors.New("not authorized")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
)

// ValidationError carries a field-level message for bad input. It maps to a
// 400 at the transport boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
