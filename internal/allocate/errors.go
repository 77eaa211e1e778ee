package allocate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoWorkingDays is returned when the calendar and the exclusions
	// leave no day to put hours on.
	ErrNoWorkingDays = errors.New("no working day available")
)

// InputError reports a request field that cannot be planned.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
