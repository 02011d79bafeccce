package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	unit "github.com/samprox/tally/internal/domain/unit"
)

func TestNormalizeDate(t *testing.T) {
	Convey("Given a date unit", t, func() {
		u := unit.Unit{Key: "date", Kind: unit.KindDate}

		Convey("When normalizing a valid calendar date", func() {
			value, err := unit.Normalize(u, "2024-03-15")

			Convey("Then it should yield minutes since the Unix epoch", func() {
				So(err, ShouldBeNil)
				// 2024-03-15T00:00:00Z = 1710460800 seconds.
				So(value.IntPart(), ShouldEqual, int64(1710460800/60))
			})
		})

		Convey("When normalizing the epoch itself", func() {
			value, err := unit.Normalize(u, "1970-01-01")

			Convey("Then it should be zero", func() {
				So(err, ShouldBeNil)
				So(value.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When normalizing consecutive days", func() {
			a, errA := unit.Normalize(u, "2024-03-15")
			b, errB := unit.Normalize(u, "2024-03-16")

			Convey("Then they should differ by exactly one day of minutes", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(b.Sub(a).IntPart(), ShouldEqual, int64(24*60))
			})
		})

		Convey("When the input is not a date", func() {
			_, err := unit.Normalize(u, "15/03/2024")

			Convey("Then it should fail with an invalid format error", func() {
				So(err, ShouldWrap, unit.ErrInvalidFormat)
			})
		})

		Convey("When the input is empty", func() {
			_, err := unit.Normalize(u, "   ")

			Convey("Then it should fail with an invalid format error", func() {
				So(err, ShouldWrap, unit.ErrInvalidFormat)
			})
		})
	})
}

func TestNormalizeTime(t *testing.T) {
	Convey("Given a time unit", t, func() {
		u := unit.Unit{Key: "time", Kind: unit.KindTime}

		Convey("When normalizing a wall-clock time", func() {
			value, err := unit.Normalize(u, "08:30")

			Convey("Then it should yield minutes since midnight", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(8*60+30))
			})
		})

		Convey("When normalizing midnight", func() {
			value, err := unit.Normalize(u, "00:00")

			Convey("Then it should be zero", func() {
				So(err, ShouldBeNil)
				So(value.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When the hour is out of range", func() {
			_, err := unit.Normalize(u, "24:00")

			Convey("Then it should fail with an out of range error", func() {
				So(err, ShouldWrap, unit.ErrOutOfRange)
			})
		})

		Convey("When the minute is out of range", func() {
			_, err := unit.Normalize(u, "12:60")

			Convey("Then it should fail with an out of range error", func() {
				So(err, ShouldWrap, unit.ErrOutOfRange)
			})
		})

		Convey("When the input has no colon", func() {
			_, err := unit.Normalize(u, "0830")

			Convey("Then it should fail with an invalid format error", func() {
				So(err, ShouldWrap, unit.ErrInvalidFormat)
			})
		})

		Convey("When the input has seconds", func() {
			_, err := unit.Normalize(u, "08:30:15")

			Convey("Then it should fail with an invalid format error", func() {
				So(err, ShouldWrap, unit.ErrInvalidFormat)
			})
		})
	})
}

func TestNormalizeNumber(t *testing.T) {
	Convey("Given a plain numeric unit", t, func() {
		min := decimal.Zero
		u := unit.Unit{Key: "qty", Kind: unit.KindNumeric, MinValue: &min}

		Convey("When normalizing a plain number", func() {
			value, err := unit.Normalize(u, "42.5")

			Convey("Then it should parse exactly", func() {
				So(err, ShouldBeNil)
				So(value.String(), ShouldEqual, "42.5")
			})
		})

		Convey("When the value carries grouping separators", func() {
			value, err := unit.Normalize(u, "1,234,567.89")

			Convey("Then separators should be stripped before parsing", func() {
				So(err, ShouldBeNil)
				So(value.String(), ShouldEqual, "1234567.89")
			})
		})

		Convey("When the value uses space grouping", func() {
			value, err := unit.Normalize(u, "1 234 567")

			Convey("Then it should still parse", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(1234567))
			})
		})

		Convey("When the value is negative and the unit forbids it", func() {
			_, err := unit.Normalize(u, "-5")

			Convey("Then it should fail with an out of range error", func() {
				So(err, ShouldWrap, unit.ErrOutOfRange)
			})
		})

		Convey("When the value is not a number", func() {
			_, err := unit.Normalize(u, "lots")

			Convey("Then it should fail with an invalid format error", func() {
				So(err, ShouldWrap, unit.ErrInvalidFormat)
			})
		})
	})

	Convey("Given a numeric unit allowing negatives", t, func() {
		u := unit.Unit{Key: "profit", Kind: unit.KindNumeric, AllowsNegative: true}

		Convey("When normalizing a negative value", func() {
			value, err := unit.Normalize(u, "-12.5")

			Convey("Then it should parse", func() {
				So(err, ShouldBeNil)
				So(value.String(), ShouldEqual, "-12.5")
			})
		})
	})

	Convey("Given a bounded percentage unit", t, func() {
		min := decimal.Zero
		max := decimal.NewFromInt(200)
		u := unit.Unit{Key: "completion_pct", Kind: unit.KindNumeric, MinValue: &min, MaxValue: &max}

		Convey("When the value exceeds the maximum", func() {
			_, err := unit.Normalize(u, "250")

			Convey("Then it should fail with an out of range error", func() {
				So(err, ShouldWrap, unit.ErrOutOfRange)
			})
		})

		Convey("When the value sits exactly on the bound", func() {
			value, err := unit.Normalize(u, "200")

			Convey("Then it should be accepted", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(200))
			})
		})
	})

	Convey("Given an integer unit", t, func() {
		min := decimal.Zero
		u := unit.Unit{Key: "orders", Kind: unit.KindInteger, MinValue: &min}

		Convey("When the value has a fractional part at or above a half", func() {
			value, err := unit.Normalize(u, "7.5")

			Convey("Then it should round up", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(8))
			})
		})

		Convey("When the value has a fractional part below a half", func() {
			value, err := unit.Normalize(u, "7.4")

			Convey("Then it should round down", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(7))
			})
		})
	})

	Convey("Given a scaled duration unit", t, func() {
		min := decimal.Zero
		u := unit.Unit{
			Key:           "hours",
			Kind:          unit.KindNumeric,
			MinValue:      &min,
			ScalingFactor: decimal.NewFromInt(60),
		}

		Convey("When normalizing a value", func() {
			value, err := unit.Normalize(u, "2.5")

			Convey("Then it should be scaled onto the minute scale", func() {
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(150))
			})
		})

		Convey("When the unit also carries a bound", func() {
			max := decimal.NewFromInt(10)
			bounded := u
			bounded.MaxValue = &max

			Convey("Then the bound applies to the entered value, not the scaled one", func() {
				value, err := unit.Normalize(bounded, "10")
				So(err, ShouldBeNil)
				So(value.IntPart(), ShouldEqual, int64(600))

				_, err = unit.Normalize(bounded, "11")
				So(err, ShouldWrap, unit.ErrOutOfRange)
			})
		})
	})
}
