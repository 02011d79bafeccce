package unit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical scale constants. Dates and durations normalize to minutes so
// they stay comparable with time-of-day values.
const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	minutesPerDay    = 24 * minutesPerHour
)

// Normalize converts a unit's raw textual input into its canonical numeric
// value. Dates become minutes since the Unix epoch (UTC midnight, pure
// calendar arithmetic), times become minutes since midnight, and numeric
// kinds are bounds-checked, optionally rounded to whole values and scaled.
//
// Failures wrap ErrInvalidFormat or ErrOutOfRange.
func Normalize(u Unit, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: value is required", ErrInvalidFormat)
	}

	switch u.Kind {
	case KindDate:
		return normalizeDate(trimmed)
	case KindTime:
		return normalizeTime(trimmed)
	default:
		return normalizeNumber(u, trimmed)
	}
}

func normalizeDate(raw string) (decimal.Decimal, error) {
	// time.Parse with a date-only layout yields UTC midnight, so the
	// result never depends on the evaluator's local zone.
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: must be a valid date (YYYY-MM-DD)", ErrInvalidFormat)
	}
	return decimal.NewFromInt(t.Unix() / secondsPerMinute), nil
}

func normalizeTime(raw string) (decimal.Decimal, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return decimal.Zero, fmt.Errorf("%w: must be a valid time (HH:MM)", ErrInvalidFormat)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: must be a valid time (HH:MM)", ErrInvalidFormat)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: must be a valid time (HH:MM)", ErrInvalidFormat)
	}
	if hours < 0 || hours > 23 {
		return decimal.Zero, fmt.Errorf("%w: hours must be between 0 and 23", ErrOutOfRange)
	}
	if minutes < 0 || minutes > 59 {
		return decimal.Zero, fmt.Errorf("%w: minutes must be between 0 and 59", ErrOutOfRange)
	}
	return decimal.NewFromInt(int64(hours*minutesPerHour + minutes)), nil
}

func normalizeNumber(u Unit, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(stripGrouping(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: must be a valid number", ErrInvalidFormat)
	}

	if !u.AllowsNegative && value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cannot be negative for this unit", ErrOutOfRange)
	}
	if u.MinValue != nil && value.LessThan(*u.MinValue) {
		return decimal.Zero, fmt.Errorf("%w: must be at least %s", ErrOutOfRange, u.MinValue.String())
	}
	if u.MaxValue != nil && value.GreaterThan(*u.MaxValue) {
		return decimal.Zero, fmt.Errorf("%w: must be at most %s", ErrOutOfRange, u.MaxValue.String())
	}

	if u.Kind == KindInteger {
		// Round half away from zero, matching fixed-point half-up.
		value = value.Round(0)
	}
	if !u.ScalingFactor.IsZero() {
		value = value.Mul(u.ScalingFactor)
	}
	return value, nil
}

// stripGrouping removes digit grouping separators (commas, spaces) so
// values pasted from spreadsheets parse cleanly.
func stripGrouping(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ',', ' ', ' ':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
