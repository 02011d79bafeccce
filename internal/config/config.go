// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped via this package's error helpers.
package config

import (
	"github.com/shopspring/decimal"

	"github.com/samprox/tally/internal/domain/unit"
)

// UnitPayload is one entry of the unit configuration payload (delivered
// once at startup) used to extend the built-in catalog.
type UnitPayload struct {
	Key            string   `koanf:"key"`
	Label          string   `koanf:"label"`
	InputKind      string   `koanf:"input_kind"`
	MinValue       *float64 `koanf:"min_value"`
	MaxValue       *float64 `koanf:"max_value"`
	Decimals       int      `koanf:"decimals"`
	AllowsNegative bool     `koanf:"allows_negative"`
	IntegerOnly    bool     `koanf:"integer_only"`
	ScalingFactor  *float64 `koanf:"scaling_factor"`
	Prefix         string   `koanf:"prefix"`
	Suffix         string   `koanf:"suffix"`
	HelperHint     string   `koanf:"helper_hint"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ShardCount configures the number of shards in the record store.
	ShardCount int `koanf:"shard_count"`

	// DedupeSize bounds the duplicate-submission cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxListLimit caps GET /records?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// ExtraUnits extends the built-in performance unit catalog.
	ExtraUnits []UnitPayload `koanf:"extra_units"`
}

// New creates a Config holding the defaults that Load layers file and
// environment values over.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9090",
		ShardCount:   8,
		DedupeSize:   50_000,
		MaxListLimit: 500,
	}
}

// Unit converts a payload entry into a catalog unit definition.
func (p UnitPayload) Unit() (unit.Unit, error) {
	kind, ok := unit.ParseKind(p.InputKind)
	if !ok {
		return unit.Unit{}, wrapInvalid("unit %q has unknown input_kind %q", p.Key, p.InputKind)
	}
	if kind == unit.KindNumeric && p.IntegerOnly {
		kind = unit.KindInteger
	}
	u := unit.Unit{
		Key:              p.Key,
		Label:            p.Label,
		Kind:             kind,
		AllowsNegative:   p.AllowsNegative,
		DecimalPrecision: p.Decimals,
		DisplayPrefix:    p.Prefix,
		DisplaySuffix:    p.Suffix,
		HelperHint:       p.HelperHint,
	}
	if p.ScalingFactor != nil {
		u.ScalingFactor = decimalFromFloat(*p.ScalingFactor)
	}
	if p.MinValue != nil {
		d := decimalFromFloat(*p.MinValue)
		u.MinValue = &d
	}
	if p.MaxValue != nil {
		d := decimalFromFloat(*p.MaxValue)
		u.MaxValue = &d
	}
	return u, nil
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
