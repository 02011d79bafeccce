// Package metric computes the achievement ratio between a responsible
// (target) value and an actual value, and classifies it into risk bands.
package metric

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/samprox/tally/internal/domain/unit"
)

// Classification thresholds and clamp bounds. These are fixed constants of
// the system, not configurable per unit.
const (
	goodThreshold    = 100.0
	cautionThreshold = 80.0
	upperClamp       = 200
	lowerClampNeg    = -200
)

// PlaceholderDisplay stands in for a metric that could not be computed.
// A single unresolvable value must never block rendering of a record.
const PlaceholderDisplay = "—"

// Band is the good/caution/risk/neutral categorization of a metric.
type Band string

const (
	BandGood    Band = "good"
	BandCaution Band = "caution"
	BandRisk    Band = "risk"
	BandNeutral Band = "neutral"
)

// Metric is the computed achievement ratio. Value is nil when either raw
// input failed normalization for its unit; it is never nil for a zero
// target, which is defined as 0% achievement.
type Metric struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// Compute normalizes both raw values against the unit and derives the
// achievement percentage: (actual / responsible) * 100, rounded half-up to
// one decimal place and clamped to [0, 200], or [-200, 200] for units that
// allow negative values. A zero target yields 0%; a zero target cannot be
// exceeded, so achievement is defined rather than infinite.
func Compute(u unit.Unit, responsibleRaw, actualRaw string) Metric {
	responsible, err := unit.Normalize(u, responsibleRaw)
	if err != nil {
		return Metric{Display: PlaceholderDisplay}
	}
	actual, err := unit.Normalize(u, actualRaw)
	if err != nil {
		return Metric{Display: PlaceholderDisplay}
	}
	return fromValues(u, responsible, actual)
}

// FromNormalized derives the metric from already-normalized values, used
// when both sides were validated earlier in the request.
func FromNormalized(u unit.Unit, responsible, actual decimal.Decimal) Metric {
	return fromValues(u, responsible, actual)
}

func fromValues(u unit.Unit, responsible, actual decimal.Decimal) Metric {
	var ratio decimal.Decimal
	if !responsible.IsZero() {
		ratio = actual.DivRound(responsible, 8).Mul(decimal.NewFromInt(100))
	}

	ratio = ratio.Round(1)

	lower := decimal.NewFromInt(0)
	if u.AllowsNegative {
		lower = decimal.NewFromInt(lowerClampNeg)
	}
	upper := decimal.NewFromInt(upperClamp)
	if ratio.LessThan(lower) {
		ratio = lower
	}
	if ratio.GreaterThan(upper) {
		ratio = upper
	}

	value, _ := ratio.Float64()
	return Metric{
		Value:   &value,
		Display: fmt.Sprintf("%s%%", ratio.StringFixed(1)),
	}
}

// Classify maps a metric value onto its band: nil is neutral, >= 100 is
// good, >= 80 is caution, anything lower is risk.
func Classify(value *float64) Band {
	switch {
	case value == nil:
		return BandNeutral
	case *value >= goodThreshold:
		return BandGood
	case *value >= cautionThreshold:
		return BandCaution
	default:
		return BandRisk
	}
}
