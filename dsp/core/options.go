package core

import "fmt"

const (
	// DefaultWindowSize is the analysis window used for live pitch tracking.
	DefaultWindowSize = 2048
	// DefaultStepSize is the hop between consecutive analysis windows.
	DefaultStepSize = 1024
)

// FrameConfig defines how a sample stream is cut into analysis windows.
type FrameConfig struct {
	WindowSize int
	StepSize   int
}

// FrameOption mutates a FrameConfig.
type FrameOption func(*FrameConfig)

// DefaultFrameConfig returns the window and hop used for streaming analysis.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		WindowSize: DefaultWindowSize,
		StepSize:   DefaultStepSize,
	}
}

// WithWindowSize sets the analysis window length in samples.
func WithWindowSize(size int) FrameOption {
	return func(cfg *FrameConfig) {
		if size > 0 {
			cfg.WindowSize = size
		}
	}
}

// WithStepSize sets the hop between window starts in samples.
func WithStepSize(step int) FrameOption {
	return func(cfg *FrameConfig) {
		if step > 0 {
			cfg.StepSize = step
		}
	}
}

// ApplyFrameOptions applies zero or more options to the default config.
func ApplyFrameOptions(opts ...FrameOption) FrameConfig {
	cfg := DefaultFrameConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether the window and step are both positive.
func (c FrameConfig) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("core: window size must be > 0: %d", c.WindowSize)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("core: step size must be > 0: %d", c.StepSize)
	}
	return nil
}

// Overlap returns the fraction of each window shared with the next one.
// It is zero when the step is at least the window length.
func (c FrameConfig) Overlap() float64 {
	if c.WindowSize <= 0 || c.StepSize >= c.WindowSize {
		return 0
	}
	return float64(c.WindowSize-c.StepSize) / float64(c.WindowSize)
}
