package unit

import (
	"errors"
)

// Sentinel kinds for unit and normalization errors. Callers match with
// errors.Is; messages carry the field-level detail.
var (
	ErrInvalidUnit   = errors.New("invalid unit definition")
	ErrUnknownUnit   = errors.New("unknown performance unit")
	ErrInvalidFormat = errors.New("invalid value format")
	ErrOutOfRange    = errors.New("value out of range")
)
