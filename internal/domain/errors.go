package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup targets a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write transaction loses a serialization
	// race. The whole operation is safe to retry from scratch.
	ErrConflict = errors.New("write conflict")
)

// ValidationError reports malformed input. It is always raised before any
// write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
