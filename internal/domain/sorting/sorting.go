// Package sorting provides stable, toggleable ordering of responsibility
// records by a computed key.
package sorting

import (
	"sort"

	"github.com/samprox/tally/internal/domain/model"
)

// Key selects the value a sort extracts from each record.
type Key string

const (
	// KeyMetric orders by the computed achievement metric.
	KeyMetric Key = "metric"
	// KeyActual orders by the normalized actual performance value.
	KeyActual Key = "actual"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// State is the current sort selection.
type State struct {
	Key       Key       `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultState is the ordering used before any column is toggled.
func DefaultState() State {
	return State{Key: KeyMetric, Direction: Descending}
}

// Toggle returns the next sort state for a requested key: the same key
// flips the direction, a new key resets to descending.
func Toggle(s State, requested Key) State {
	if requested == s.Key {
		if s.Direction == Descending {
			return State{Key: s.Key, Direction: Ascending}
		}
		return State{Key: s.Key, Direction: Descending}
	}
	return State{Key: requested, Direction: Descending}
}

// Records returns a new slice ordered by the state's key and direction.
// The sort is stable: ties preserve the original relative order. Records
// whose key is undefined always sort after all defined keys, in both
// directions; an undefined value never wins a sort.
func Records(records []model.Record, state State) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)

	extract := extractor(state.Key)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := extract(out[i]), extract(out[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case state.Direction == Ascending:
			return *a < *b
		default:
			return *a > *b
		}
	})
	return out
}

func extractor(key Key) func(model.Record) *float64 {
	if key == KeyActual {
		return func(r model.Record) *float64 { return r.Performance.ActualValue }
	}
	return func(r model.Record) *float64 { return r.Performance.MetricValue }
}
