package preipo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when an event carries a missing or non-finite field, or
	// when events of several entities are mixed in a single computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter is returned when the baseline growth rate is not a finite number
	// strictly greater than -1.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// InputError describes the offending event in a list handed to the engine.
type InputError struct {
	Index    int    // position of the event in the caller's list
	EntityID string // entity of the event
	Field    string // name of the invalid field
	Reason   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: event #%d (%q): %s %s", e.Index, e.EntityID, e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) true for any InputError.
func (e *InputError) Unwrap() error { return ErrInvalidInput }
