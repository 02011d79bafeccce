// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samprox/tally/internal/domain/recurrence"
)

// ActionState tracks what happened to a responsibility.
type ActionState string

const (
	ActionPlanned   ActionState = "planned"
	ActionDone      ActionState = "done"
	ActionDelegated ActionState = "delegated"
	ActionDeferred  ActionState = "deferred"
	ActionDiscussed ActionState = "discussed"
	ActionDeleted   ActionState = "deleted"
)

// ParseActionState parses a string into an ActionState, case-insensitive.
func ParseActionState(s string) (ActionState, error) {
	state := ActionState(strings.ToLower(strings.TrimSpace(s)))
	switch state {
	case ActionPlanned, ActionDone, ActionDelegated, ActionDeferred, ActionDiscussed, ActionDeleted:
		return state, nil
	default:
		return "", fmt.Errorf("invalid action state: %q", s)
	}
}

// Performance holds the measured side of a record: the raw entries, their
// normalized values and the derived achievement metric. It is recomputed
// whenever the unit or either raw value changes. MetricValue is nil (not
// zero) whenever either raw value fails normalization for its unit.
type Performance struct {
	UnitKey            string   `json:"unitKey"`
	ResponsibleRaw     string   `json:"responsibleRaw"`
	ActualRaw          string   `json:"actualRaw"`
	ResponsibleValue   *float64 `json:"responsibleValue"`
	ActualValue        *float64 `json:"actualValue"`
	ResponsibleDisplay string   `json:"responsibleDisplay"`
	ActualDisplay      string   `json:"actualDisplay"`
	MetricValue        *float64 `json:"metricValue"`
	MetricDisplay      string   `json:"metricDisplay"`
}

// Record is a responsibility snapshot. The engine never owns or persists
// records; they are handed in and handed back by the caller per operation.
// Assignee, assigner and delegate refs are opaque to this core.
type Record struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	ScheduledDate   time.Time       `json:"scheduledDate"`
	Recurrence      recurrence.Spec `json:"recurrence"`
	AssigneeRef     string          `json:"assigneeRef,omitempty"`
	AssignerRef     string          `json:"assignerRef,omitempty"`
	DelegateRef     string          `json:"delegateRef,omitempty"`
	Action          ActionState     `json:"action"`
	ProgressPercent int             `json:"progressPercent"`
	Performance     Performance     `json:"performance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ClampProgress bounds a progress value to [0, 100].
func ClampProgress(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ParseProgress converts free-form progress input to an integer percent.
// Out-of-range values clamp to the nearest bound; unparseable input
// defaults to 0.
func ParseProgress(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	if math.IsInf(f, 1) {
		return 100
	}
	if math.IsInf(f, -1) {
		return 0
	}
	return ClampProgress(int(math.Round(f)))
}
