// Package unit defines performance measurement units and their
// normalization onto a single comparable numeric scale.
package unit

import (
	"github.com/shopspring/decimal"
)

// Kind selects the parsing rule applied to raw input for a unit.
type Kind string

const (
	// KindNumeric accepts real numbers, optionally bounded and scaled.
	KindNumeric Kind = "numeric"
	// KindInteger accepts real numbers rounded half-up to whole values.
	KindInteger Kind = "integer"
	// KindDate accepts plain calendar dates (YYYY-MM-DD).
	KindDate Kind = "date"
	// KindTime accepts wall-clock times (HH:MM).
	KindTime Kind = "time"
)

// ParseKind parses a string into a Kind, case-insensitive.
func ParseKind(s string) (Kind, bool) {
	switch Kind(lower(s)) {
	case KindNumeric, KindInteger, KindDate, KindTime:
		return Kind(lower(s)), true
	default:
		return "", false
	}
}

// Unit describes one measurement domain: its parsing rule, bounds and
// presentation hints. Units are value types; the catalog hands out copies.
type Unit struct {
	// Key uniquely identifies the unit, e.g. "completion_pct".
	Key string

	// Label is the human-facing name shown in selectors.
	Label string

	// Kind selects the normalization rule.
	Kind Kind

	// ScalingFactor converts entered values onto the canonical scale,
	// e.g. 60 for hours entered against minute-based comparisons.
	// A zero factor means no scaling.
	ScalingFactor decimal.Decimal

	// MinValue and MaxValue bound the entered value before scaling.
	// Nil means unbounded on that side.
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal

	// AllowsNegative permits values below zero (profit, margin, index).
	AllowsNegative bool

	// DecimalPrecision is the number of fractional digits for display.
	DecimalPrecision int

	// DisplayPrefix and DisplaySuffix wrap formatted values ("LKR", "%").
	DisplayPrefix string
	DisplaySuffix string

	// HelperHint is an optional entry hint shown next to the input.
	HelperHint string
}

// Option is the catalog entry shape handed to unit selectors. Field names
// follow the editing UI contract.
type Option struct {
	Key            string   `json:"key"`
	Label          string   `json:"label"`
	InputKind      string   `json:"inputKind"`
	AllowsNegative bool     `json:"allowsNegative"`
	Decimals       int      `json:"decimals"`
	Prefix         string   `json:"prefix,omitempty"`
	Suffix         string   `json:"suffix,omitempty"`
	HelperHint     string   `json:"helperHint,omitempty"`
	ScalingFactor  *float64 `json:"scalingFactor,omitempty"`
	MinValue       *float64 `json:"minValue,omitempty"`
	MaxValue       *float64 `json:"maxValue,omitempty"`
}

// option converts a unit to its selector representation.
func (u Unit) option() Option {
	o := Option{
		Key:            u.Key,
		Label:          u.Label,
		InputKind:      string(u.Kind),
		AllowsNegative: u.AllowsNegative,
		Decimals:       u.DecimalPrecision,
		Prefix:         u.DisplayPrefix,
		Suffix:         u.DisplaySuffix,
		HelperHint:     u.HelperHint,
	}
	if !u.ScalingFactor.IsZero() {
		f, _ := u.ScalingFactor.Float64()
		o.ScalingFactor = &f
	}
	if u.MinValue != nil {
		f, _ := u.MinValue.Float64()
		o.MinValue = &f
	}
	if u.MaxValue != nil {
		f, _ := u.MaxValue.Float64()
		o.MaxValue = &f
	}
	return o
}
