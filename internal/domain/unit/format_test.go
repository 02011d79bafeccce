package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	unit "github.com/samprox/tally/internal/domain/unit"
)

func TestFormatValue(t *testing.T) {
	Convey("Given normalized values", t, func() {
		Convey("When formatting a date unit", func() {
			u := unit.Unit{Key: "date", Kind: unit.KindDate}
			v, err := unit.Normalize(u, "2024-03-15")
			So(err, ShouldBeNil)

			Convey("Then it should round-trip to the calendar form", func() {
				So(unit.FormatValue(u, v), ShouldEqual, "2024-03-15")
			})
		})

		Convey("When formatting a time unit", func() {
			u := unit.Unit{Key: "time", Kind: unit.KindTime}

			Convey("Then it should render zero-padded HH:MM", func() {
				So(unit.FormatValue(u, decimal.NewFromInt(8*60+5)), ShouldEqual, "08:05")
				So(unit.FormatValue(u, decimal.Zero), ShouldEqual, "00:00")
				So(unit.FormatValue(u, decimal.NewFromInt(23*60+59)), ShouldEqual, "23:59")
			})
		})

		Convey("When formatting a scaled duration unit", func() {
			u := unit.Unit{
				Key:              "hours",
				Kind:             unit.KindNumeric,
				ScalingFactor:    decimal.NewFromInt(60),
				DecimalPrecision: 1,
				DisplaySuffix:    "hrs",
			}

			Convey("Then it should divide back to the entered magnitude", func() {
				So(unit.FormatValue(u, decimal.NewFromInt(150)), ShouldEqual, "2.5 hrs")
			})
		})

		Convey("When formatting a prefixed currency unit", func() {
			u := unit.Unit{
				Key:              "amount_lkr",
				Kind:             unit.KindNumeric,
				DecimalPrecision: 2,
				DisplayPrefix:    "LKR",
			}

			Convey("Then the prefix should lead the value", func() {
				So(unit.FormatValue(u, decimal.NewFromFloat(1234.5)), ShouldEqual, "LKR 1234.50")
			})
		})

		Convey("When formatting a bare count", func() {
			u := unit.Unit{Key: "qty", Kind: unit.KindInteger}

			Convey("Then it should render the plain number", func() {
				So(unit.FormatValue(u, decimal.NewFromInt(7)), ShouldEqual, "7")
			})
		})
	})
}
