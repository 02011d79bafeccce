package recurrence_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	recurrence "github.com/samprox/tally/internal/domain/recurrence"
)

func TestParseKind(t *testing.T) {
	Convey("Given recurrence kind strings", t, func() {
		Convey("When parsing known kinds", func() {
			for _, s := range []string{"does_not_repeat", "weekdays", "daily", "weekly", "monthly", "annually", "custom"} {
				k, err := recurrence.ParseKind(s)
				So(err, ShouldBeNil)
				So(string(k), ShouldEqual, s)
			}
		})

		Convey("When parsing with mixed case and padding", func() {
			k, err := recurrence.ParseKind("  Weekly ")

			Convey("Then it should normalize", func() {
				So(err, ShouldBeNil)
				So(k, ShouldEqual, recurrence.KindWeekly)
			})
		})

		Convey("When parsing an unknown kind", func() {
			_, err := recurrence.ParseKind("fortnightly")

			Convey("Then it should fail", func() {
				So(err, ShouldWrap, recurrence.ErrUnknownKind)
			})
		})
	})
}

func TestSpecValidate(t *testing.T) {
	Convey("Given recurrence specs", t, func() {
		Convey("When a custom spec carries weekdays", func() {
			s := recurrence.New(recurrence.KindCustom, []recurrence.Weekday{recurrence.Monday, recurrence.Wednesday})

			Convey("Then it should validate", func() {
				So(s.Validate(), ShouldBeNil)
				So(s.Weekdays, ShouldResemble, []recurrence.Weekday{recurrence.Monday, recurrence.Wednesday})
			})
		})

		Convey("When a custom spec has no weekdays", func() {
			s := recurrence.New(recurrence.KindCustom, nil)

			Convey("Then validation should fail, never silently repair", func() {
				So(s.Validate(), ShouldWrap, recurrence.ErrMissingWeekdays)
			})
		})

		Convey("When a custom spec has duplicate and unordered weekdays", func() {
			s := recurrence.New(recurrence.KindCustom, []recurrence.Weekday{
				recurrence.Friday, recurrence.Monday, recurrence.Friday, recurrence.Weekday(9),
			})

			Convey("Then the day set should be deduplicated, ordered and cleaned", func() {
				So(s.Weekdays, ShouldResemble, []recurrence.Weekday{recurrence.Monday, recurrence.Friday})
			})
		})

		Convey("When a non-custom spec is given weekdays", func() {
			s := recurrence.New(recurrence.KindWeekly, []recurrence.Weekday{recurrence.Monday})

			Convey("Then the day set should be dropped", func() {
				So(s.Weekdays, ShouldBeEmpty)
				So(s.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestSpecLabel(t *testing.T) {
	Convey("Given a reference date of Friday, March 15 2024", t, func() {
		ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

		Convey("Then each kind should render its label", func() {
			cases := map[recurrence.Kind]string{
				recurrence.KindNone:     "Does not repeat",
				recurrence.KindWeekdays: "Every weekday (Monday to Friday)",
				recurrence.KindDaily:    "Daily",
				recurrence.KindWeekly:   "Weekly on Friday",
				recurrence.KindMonthly:  "Monthly on the 15th",
				recurrence.KindAnnually: "Annually on March 15",
				recurrence.KindCustom:   "Custom weekdays",
			}
			for kind, want := range cases {
				So(recurrence.Spec{Kind: kind}.Label(ref), ShouldEqual, want)
			}
		})

		Convey("When the day of month takes an irregular ordinal", func() {
			monthly := recurrence.Spec{Kind: recurrence.KindMonthly}

			Convey("Then 1st, 2nd, 3rd and the teens should all render correctly", func() {
				day := func(d int) string {
					return monthly.Label(time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC))
				}
				So(day(1), ShouldEqual, "Monthly on the 1st")
				So(day(2), ShouldEqual, "Monthly on the 2nd")
				So(day(3), ShouldEqual, "Monthly on the 3rd")
				So(day(4), ShouldEqual, "Monthly on the 4th")
				So(day(11), ShouldEqual, "Monthly on the 11th")
				So(day(12), ShouldEqual, "Monthly on the 12th")
				So(day(13), ShouldEqual, "Monthly on the 13th")
				So(day(21), ShouldEqual, "Monthly on the 21st")
				So(day(22), ShouldEqual, "Monthly on the 22nd")
				So(day(23), ShouldEqual, "Monthly on the 23rd")
				So(day(31), ShouldEqual, "Monthly on the 31st")
			})
		})
	})
}

func TestWeekday(t *testing.T) {
	Convey("Given the ISO weekday numbering", t, func() {
		Convey("Then Monday is 1 and Sunday is 7", func() {
			So(int(recurrence.Monday), ShouldEqual, 1)
			So(int(recurrence.Sunday), ShouldEqual, 7)
			So(recurrence.Monday.String(), ShouldEqual, "Monday")
			So(recurrence.Sunday.String(), ShouldEqual, "Sunday")
		})

		Convey("Then out-of-range indices are invalid", func() {
			So(recurrence.Weekday(0).Valid(), ShouldBeFalse)
			So(recurrence.Weekday(8).Valid(), ShouldBeFalse)
			So(recurrence.Weekday(0).String(), ShouldEqual, "Unknown")
		})
	})
}
