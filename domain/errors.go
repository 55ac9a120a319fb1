package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAddressInUse       = errors.New("address is still referenced by child records")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicate          = errors.New("record already exists")
)

// ValidationError carries the offending field so handlers can answer 400 with
// a field-specific message.
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

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
