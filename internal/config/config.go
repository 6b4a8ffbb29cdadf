// Package config loads pitchgate settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PITCHGATE_"

// Config mirrors the configuration file.
type Config struct {
	WindowSize       int     `yaml:"window_size"`
	StepSize         int     `yaml:"step_size"`
	ThresholdDB      float64 `yaml:"threshold_db"`
	SmoothingWindow  int     `yaml:"smoothing_window"`
	PowerThreshold   float64 `yaml:"power_threshold"`
	ClarityThreshold float64 `yaml:"clarity_threshold"`
	Cleaning         string  `yaml:"cleaning"`
	VocalLowHz       float64 `yaml:"vocal_low_hz"`
	VocalHighHz      float64 `yaml:"vocal_high_hz"`

	// Capture settings
	Device     string `yaml:"device"`
	SampleRate uint32 `yaml:"sample_rate"`
	ChunkSize  int    `yaml:"chunk_size"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	p := pipeline.DefaultConfig()
	return &Config{
		WindowSize:       p.Frame.WindowSize,
		StepSize:         p.Frame.StepSize,
		ThresholdDB:      p.Gate.ThresholdDB,
		SmoothingWindow:  p.Gate.SmoothingWindow,
		PowerThreshold:   p.PowerThreshold,
		ClarityThreshold: p.ClarityThreshold,
		Cleaning:         string(p.Cleaning),
		VocalLowHz:       p.VocalLowHz,
		VocalHighHz:      p.VocalHighHz,
		SampleRate:       44100,
		ChunkSize:        1024,
		LogLevel:         "info",
	}
}

// Load reads the optional .env file and the optional YAML file at path, then
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PITCHGATE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"WINDOW_SIZE":      &c.WindowSize,
		"STEP_SIZE":        &c.StepSize,
		"SMOOTHING_WINDOW": &c.SmoothingWindow,
		"CHUNK_SIZE":       &c.ChunkSize,
	}
	floats := map[string]*float64{
		"THRESHOLD_DB":      &c.ThresholdDB,
		"POWER_THRESHOLD":   &c.PowerThreshold,
		"CLARITY_THRESHOLD": &c.ClarityThreshold,
		"VOCAL_LOW_HZ":      &c.VocalLowHz,
		"VOCAL_HIGH_HZ":     &c.VocalHighHz,
	}
	strs := map[string]*string{
		"CLEANING":  &c.Cleaning,
		"DEVICE":    &c.Device,
		"LOG_LEVEL": &c.LogLevel,
	}

	for key, dst := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range floats {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
			*dst = f
		}
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	if v, ok := lookup(EnvPrefix + "SAMPLE_RATE"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %sSAMPLE_RATE: %w", EnvPrefix, err)
		}
		c.SampleRate = uint32(n)
	}
	return nil
}

// Pipeline converts the file settings into a validated pipeline config.
func (c *Config) Pipeline() (pipeline.Config, error) {
	cleaning, err := pipeline.ParseCleaning(c.Cleaning)
	if err != nil {
		return pipeline.Config{}, err
	}
	out := pipeline.Config{
		Frame: core.FrameConfig{
			WindowSize: c.WindowSize,
			StepSize:   c.StepSize,
		},
		Gate: gate.Config{
			ThresholdDB:     c.ThresholdDB,
			SmoothingWindow: c.SmoothingWindow,
		},
		PowerThreshold:   c.PowerThreshold,
		ClarityThreshold: c.ClarityThreshold,
		Cleaning:         cleaning,
		VocalLowHz:       c.VocalLowHz,
		VocalHighHz:      c.VocalHighHz,
	}
	if err := out.Validate(); err != nil {
		return pipeline.Config{}, err
	}
	return out, nil
}
