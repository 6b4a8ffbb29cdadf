package gate

import (
	"fmt"
	"math"
)

const (
	// DefaultThresholdDB is the margin above the noise floor a bin must reach
	// to pass untouched.
	DefaultThresholdDB = 6.0
	// DefaultSmoothingWindow disables noise-magnitude smoothing.
	DefaultSmoothingWindow = 1
)

// Config holds the gate parameters.
type Config struct {
	// ThresholdDB scales the noise floor by 10^(ThresholdDB/20). It may be
	// negative to gate only content well below the noise floor.
	ThresholdDB float64 `yaml:"threshold_db"`
	// SmoothingWindow is the number of adjacent bins averaged into each noise
	// magnitude. 1 means no smoothing.
	SmoothingWindow int `yaml:"smoothing_window"`
}

// DefaultConfig returns a 6 dB threshold without smoothing.
func DefaultConfig() Config {
	return Config{
		ThresholdDB:     DefaultThresholdDB,
		SmoothingWindow: DefaultSmoothingWindow,
	}
}

// Validate checks that the threshold is finite and the smoothing window positive.
func (c Config) Validate() error {
	if math.IsNaN(c.ThresholdDB) || math.IsInf(c.ThresholdDB, 0) {
		return fmt.Errorf("gate: threshold must be finite: %f", c.ThresholdDB)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("gate: smoothing window must be >= 1: %d", c.SmoothingWindow)
	}
	return nil
}
