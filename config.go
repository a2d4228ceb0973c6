package keyreduce

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the tuning parameters of a reduction.
//
// The zero value is not usable; start from [DefaultConfig].
type Config struct {
	// SampleRate is the number of averaged keyframes per second produced by
	// the resampling pass.
	SampleRate float64 `toml:"sample_rate"`
	// MaxSampleRate is the ceiling above which resampling is skipped and the
	// refinement pass works directly on the original keyframes.
	MaxSampleRate float64 `toml:"max_sample_rate"`
	// Threshold is the normalized error below which a reconstruction is
	// considered good enough.
	Threshold float64 `toml:"threshold"`
	// PositionUnit is the distance, in curve units, that counts as one unit
	// of error.
	PositionUnit float64 `toml:"position_unit"`
	// RotationUnit is the angle, in degrees, that counts as one unit of
	// error.
	RotationUnit float64 `toml:"rotation_unit"`
	// ValueUnit is the fraction of a scalar target's range that counts as
	// one unit of error.
	ValueUnit float64 `toml:"value_unit"`
	// IterationsPerSecond bounds the refinement pass to
	// ceil(IterationsPerSecond × duration) insertions.
	IterationsPerSecond float64 `toml:"iterations_per_second"`
	// MinBucketSize is the number of candidate keyframes a bucket must hold
	// to stay under consideration after a split. With 1, every keyframe of
	// the reference ends up within the threshold.
	MinBucketSize int `toml:"min_bucket_size"`
}

// DefaultConfig returns the parameters used by the timeline editor.
func DefaultConfig() Config {
	return Config{
		SampleRate:          10,
		MaxSampleRate:       50,
		Threshold:           1,
		PositionUnit:        0.1,
		RotationUnit:        2,
		ValueUnit:           0.01,
		IterationsPerSecond: 10,
		MinBucketSize:       3,
	}
}

// LoadConfig reads a TOML file on top of [DefaultConfig]. Keys that are not
// part of Config are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports whether every parameter is in range.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"max_sample_rate", c.MaxSampleRate},
		{"threshold", c.Threshold},
		{"position_unit", c.PositionUnit},
		{"rotation_unit", c.RotationUnit},
		{"value_unit", c.ValueUnit},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.SampleRate < 0 || math.IsNaN(c.SampleRate) {
		return fmt.Errorf("%w: sample_rate must not be negative, got %g", ErrInvalidConfig, c.SampleRate)
	}
	if c.IterationsPerSecond < 0 || math.IsNaN(c.IterationsPerSecond) {
		return fmt.Errorf("%w: iterations_per_second must not be negative, got %g", ErrInvalidConfig, c.IterationsPerSecond)
	}
	if c.MinBucketSize < 1 {
		return fmt.Errorf("%w: min_bucket_size must be at least 1, got %d", ErrInvalidConfig, c.MinBucketSize)
	}
	return nil
}

// resamples reports whether the averaging pass runs at all. A zero sample
// rate disables it, as does a rate at or above the sanity ceiling.
func (c Config) resamples() bool {
	return c.SampleRate > 0 && c.SampleRate < c.MaxSampleRate
}

func (c Config) maxIterations(duration float64) int {
	return int(math.Ceil(c.IterationsPerSecond * duration))
}
