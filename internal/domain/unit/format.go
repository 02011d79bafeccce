package unit

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatValue renders a normalized value back in the unit's own terms for
// display: dates as YYYY-MM-DD, times as HH:MM, scaled values divided back
// to the entered magnitude and fixed to the unit's precision, with any
// prefix or suffix applied.
func FormatValue(u Unit, value decimal.Decimal) string {
	switch u.Kind {
	case KindDate:
		minutes := value.Round(0).IntPart()
		return time.Unix(minutes*secondsPerMinute, 0).UTC().Format("2006-01-02")
	case KindTime:
		total := value.Round(0).IntPart()
		return fmt.Sprintf("%02d:%02d", total/minutesPerHour, total%minutesPerHour)
	}

	if !u.ScalingFactor.IsZero() {
		value = value.DivRound(u.ScalingFactor, int32(u.DecimalPrecision)+2)
	}
	formatted := value.StringFixed(int32(u.DecimalPrecision))

	switch {
	case u.DisplaySuffix != "":
		return formatted + " " + u.DisplaySuffix
	case u.DisplayPrefix != "":
		return u.DisplayPrefix + " " + formatted
	default:
		return formatted
	}
}
