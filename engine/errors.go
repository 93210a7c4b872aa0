package engine

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed or contradictory input. It is always
// surfaced to the caller, never recovered inside the engine.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed: %s (%s=%v)", e.Reason, e.Field, e.Value)
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.Reason, e.Field)
}

func newValidationError(field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// InsufficientPoolError indicates the solo-support donor pool cannot cover a
// requested bonus payout. Callers are expected to recover by paying zero
// bonuses; an empty donor pool is not a tournament-level failure.
type InsufficientPoolError struct {
	Available int64
	Eligible  int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("donor pool exhausted: %d available for %d eligible solo players", e.Available, e.Eligible)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
