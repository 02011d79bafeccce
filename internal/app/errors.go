package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks record submissions rejected before any state
// changes. The message carries the field-level detail for the caller.
var ErrInvalidInput = errors.New("invalid record input")

func errInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
