package recurrence

import (
	"errors"
)

// Sentinel kinds for recurrence validation errors.
var (
	ErrUnknownKind     = errors.New("unknown recurrence kind")
	ErrMissingWeekdays = errors.New("custom recurrence requires at least one weekday")
)
