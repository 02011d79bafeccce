// Package recurrence defines recurring-schedule variants for
// responsibilities, their validation rule and human-readable labels.
//
// The engine never fires recurring work; it only describes and validates a
// recurrence so the edit flow can store and render it.
package recurrence

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind enumerates the recurrence variants.
type Kind string

const (
	KindNone     Kind = "does_not_repeat"
	KindWeekdays Kind = "weekdays"
	KindDaily    Kind = "daily"
	KindWeekly   Kind = "weekly"
	KindMonthly  Kind = "monthly"
	KindAnnually Kind = "annually"
	KindCustom   Kind = "custom"
)

// ParseKind parses a string into a Kind, case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindNone, KindWeekdays, KindDaily, KindWeekly, KindMonthly, KindAnnually, KindCustom:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Weekday indexes days Monday=1 through Sunday=7 (ISO numbering).
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid reports whether the index is within Monday..Sunday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name, or "Unknown" for invalid indices.
func (d Weekday) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return weekdayNames[d-1]
}

// Spec is a tagged recurrence description. Weekdays carries the selected
// day set for the custom variant only.
type Spec struct {
	Kind     Kind      `json:"kind"`
	Weekdays []Weekday `json:"weekdays,omitempty"`
}

// New builds a Spec; days are only meaningful for KindCustom and are
// deduplicated and kept in day order.
func New(kind Kind, days []Weekday) Spec {
	s := Spec{Kind: kind}
	if kind != KindCustom {
		return s
	}
	seen := make(map[Weekday]bool, len(days))
	for _, d := range days {
		if d.Valid() && !seen[d] {
			seen[d] = true
			s.Weekdays = append(s.Weekdays, d)
		}
	}
	sort.Slice(s.Weekdays, func(i, j int) bool { return s.Weekdays[i] < s.Weekdays[j] })
	return s
}

// Validate enforces the one structural rule: a custom recurrence must
// carry at least one weekday. It is never silently repaired.
func (s Spec) Validate() error {
	if s.Kind == KindCustom && len(s.Weekdays) == 0 {
		return ErrMissingWeekdays
	}
	return nil
}

// Label renders the recurrence for the given reference date. Weekly,
// monthly and annual variants substitute the reference date's weekday
// name, ordinal day-of-month or month name; the rest have fixed labels.
// The reference date is supplied by the caller so labels are reproducible.
func (s Spec) Label(ref time.Time) string {
	switch s.Kind {
	case KindWeekdays:
		return "Every weekday (Monday to Friday)"
	case KindDaily:
		return "Daily"
	case KindWeekly:
		return fmt.Sprintf("Weekly on %s", ref.Weekday())
	case KindMonthly:
		return fmt.Sprintf("Monthly on the %s", ordinal(ref.Day()))
	case KindAnnually:
		return fmt.Sprintf("Annually on %s %d", ref.Month(), ref.Day())
	case KindCustom:
		return "Custom weekdays"
	default:
		return "Does not repeat"
	}
}

// ordinal renders n with its English ordinal suffix. 11th, 12th and 13th
// take "th" despite ending in 1, 2 and 3.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
