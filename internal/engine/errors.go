package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or missing argument. It is surfaced to
// the caller as-is and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a hazard id with no record in the store.
type NotFoundError struct {
	HazardID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("hazard %s not found", e.HazardID)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
