package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	config "github.com/samprox/tally/internal/config"
	"github.com/samprox/tally/internal/domain/unit"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		os.Unsetenv("TALLY_CONFIG")
		os.Unsetenv("TALLY_ADDR")
		os.Unsetenv("TALLY_LOG_LEVEL")
		os.Unsetenv("TALLY_MAX_LIST_LIMIT")

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.ShardCount, ShouldEqual, 8)
				So(cfg.DedupeSize, ShouldEqual, 50_000)
				So(cfg.MaxListLimit, ShouldEqual, 500)
				So(cfg.ExtraUnits, ShouldBeEmpty)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("TALLY_ADDR", ":8081")
			t.Setenv("TALLY_LOG_LEVEL", "debug")
			cfg, err := config.Load(context.Background())

			Convey("Then the overrides should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8081")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.MaxListLimit, ShouldEqual, 500)
			})
		})

		Convey("When a config file extends the unit catalog", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			payload := []byte(`
addr: ":7070"
extra_units:
  - key: widgets
    label: Widgets
    input_kind: numeric
    integer_only: true
    min_value: 0
`)
			So(os.WriteFile(path, payload, 0o600), ShouldBeNil)
			t.Setenv("TALLY_CONFIG", path)
			cfg, err := config.Load(context.Background())

			Convey("Then file values should layer over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(len(cfg.ExtraUnits), ShouldEqual, 1)

				u, uerr := cfg.ExtraUnits[0].Unit()
				So(uerr, ShouldBeNil)
				So(u.Key, ShouldEqual, "widgets")
				So(u.Kind, ShouldEqual, unit.KindInteger)
				So(u.MinValue, ShouldNotBeNil)
			})
		})

		Convey("When the config file path is bogus", func() {
			t.Setenv("TALLY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load(context.Background())

			Convey("Then loading should fail", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})

		Convey("When the list limit is invalid", func() {
			t.Setenv("TALLY_MAX_LIST_LIMIT", "0")
			_, err := config.Load(context.Background())

			Convey("Then validation should fail", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func TestUnitPayload(t *testing.T) {
	Convey("Given unit payload entries", t, func() {
		Convey("When the input kind is unknown", func() {
			_, err := config.UnitPayload{Key: "odd", InputKind: "fancy"}.Unit()

			Convey("Then conversion should fail", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When a scaling factor is set", func() {
			f := 60.0
			u, err := config.UnitPayload{Key: "shift_hours", Label: "Shift Hours", InputKind: "numeric", ScalingFactor: &f}.Unit()

			Convey("Then the unit should carry it", func() {
				So(err, ShouldBeNil)
				So(u.ScalingFactor.IntPart(), ShouldEqual, int64(60))
			})
		})
	})
}
