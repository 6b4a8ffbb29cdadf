package pipeline

import (
	"fmt"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/filter"
	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/pitch"
)

// Cleaning selects how windows are cleaned before pitch estimation.
type Cleaning string

const (
	// CleaningNone passes windows through unchanged.
	CleaningNone Cleaning = "none"
	// CleaningGate applies the spectral gate once a noise profile is set.
	CleaningGate Cleaning = "gate"
	// CleaningBandpass filters the stream through the vocal band.
	CleaningBandpass Cleaning = "bandpass"
	// CleaningAuto gates when a profile is set and falls back to the vocal
	// bandpass otherwise.
	CleaningAuto Cleaning = "auto"
)

// ParseCleaning parses a cleaning mode name.
func ParseCleaning(s string) (Cleaning, error) {
	switch c := Cleaning(s); c {
	case CleaningNone, CleaningGate, CleaningBandpass, CleaningAuto:
		return c, nil
	case "":
		return CleaningAuto, nil
	default:
		return "", fmt.Errorf("pipeline: unknown cleaning mode: %q", s)
	}
}

// Config holds the pipeline settings.
type Config struct {
	Frame            core.FrameConfig
	Gate             gate.Config
	PowerThreshold   float64
	ClarityThreshold float64
	Cleaning         Cleaning
	VocalLowHz       float64
	VocalHighHz      float64
}

// DefaultConfig returns the defaults used by the command line tools.
func DefaultConfig() Config {
	return Config{
		Frame:            core.DefaultFrameConfig(),
		Gate:             gate.DefaultConfig(),
		PowerThreshold:   pitch.DefaultPowerThreshold,
		ClarityThreshold: pitch.DefaultClarityThreshold,
		Cleaning:         CleaningAuto,
		VocalLowHz:       filter.DefaultVocalLowHz,
		VocalHighHz:      filter.DefaultVocalHighHz,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := c.Frame.Validate(); err != nil {
		return err
	}
	if err := c.Gate.Validate(); err != nil {
		return err
	}
	if c.PowerThreshold < 0 || !core.IsFinite(c.PowerThreshold) {
		return fmt.Errorf("pipeline: power threshold must be >= 0: %v", c.PowerThreshold)
	}
	if c.ClarityThreshold < 0 || c.ClarityThreshold > 1 || !core.IsFinite(c.ClarityThreshold) {
		return fmt.Errorf("pipeline: clarity threshold must be in [0, 1]: %v", c.ClarityThreshold)
	}
	if _, err := ParseCleaning(string(c.Cleaning)); err != nil {
		return err
	}
	if c.VocalLowHz <= 0 || c.VocalHighHz <= c.VocalLowHz {
		return fmt.Errorf("pipeline: vocal band must satisfy 0 < low < high: %v..%v", c.VocalLowHz, c.VocalHighHz)
	}
	return nil
}
