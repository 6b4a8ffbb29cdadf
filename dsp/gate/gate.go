package gate

import (
	"errors"
	"math/cmplx"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/noise"
	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/dsp/spectrum"
)

// ErrNoProfile is returned when a gate is configured without a noise profile.
var ErrNoProfile = errors.New("gate: noise profile is required")

// SpectralGate is a frequency-domain noise gate.
//
// Process is a pure function of its input and the gate state. Updates to the
// profile or config recompute the noise magnitudes before returning.
//
// This gate is mono, buffer-oriented, and not thread-safe. Profile and config
// updates must be serialized with Process by the owner.
type SpectralGate struct {
	profile    *noise.Profile
	config     Config
	magnitudes []float64
}

// New creates a gate for profile with cfg.
func New(profile *noise.Profile, cfg Config) (*SpectralGate, error) {
	if profile == nil {
		return nil, ErrNoProfile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &SpectralGate{profile: profile, config: cfg}
	g.magnitudes = noiseMagnitudes(profile, cfg)
	return g, nil
}

// NewDefault creates a gate for profile with [DefaultConfig].
func NewDefault(profile *noise.Profile) (*SpectralGate, error) {
	return New(profile, DefaultConfig())
}

// Process returns samples with noise-level bins attenuated. The output has
// the same length as samples. An empty input returns an empty output without
// running a transform.
func (g *SpectralGate) Process(samples []float32) []float32 {
	if len(samples) == 0 {
		return []float32{}
	}

	mult := core.DBToLinear(g.config.ThresholdDB)
	spec := spectrum.Forward(samples)
	g.apply(spec, mult)

	out := spec.Inverse()
	if len(out) > len(samples) {
		out = out[:len(samples)]
	}
	return out
}

// ProcessWaveform gates w and keeps its sample rate.
func (g *SpectralGate) ProcessWaveform(w signal.Waveform) signal.Waveform {
	return signal.Waveform{Samples: g.Process(w.Samples), SampleRate: w.SampleRate}
}

func (g *SpectralGate) apply(spec *spectrum.Spectrum, mult float64) {
	for i := range spec.Len() {
		var noiseLevel float64
		if i < len(g.magnitudes) {
			noiseLevel = g.magnitudes[i]
		}
		threshold := noiseLevel * mult

		bin, _ := spec.At(i)
		mag := cmplx.Abs(bin)
		if mag >= threshold || noiseLevel <= 0 {
			continue
		}
		spec.Scale(i, core.Clamp(mag/threshold, 0, 1))
	}
}

// UpdateNoiseProfile replaces the noise profile and recomputes the noise
// magnitudes.
func (g *SpectralGate) UpdateNoiseProfile(profile *noise.Profile) error {
	if profile == nil {
		return ErrNoProfile
	}
	g.profile = profile
	g.magnitudes = noiseMagnitudes(profile, g.config)
	return nil
}

// UpdateConfig replaces the configuration and recomputes the noise magnitudes.
func (g *SpectralGate) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.config = cfg
	g.magnitudes = noiseMagnitudes(g.profile, cfg)
	return nil
}

// NoiseProfile returns the active profile.
func (g *SpectralGate) NoiseProfile() *noise.Profile {
	return g.profile
}

// Config returns the active configuration.
func (g *SpectralGate) Config() Config {
	return g.config
}

// NoiseMagnitudes returns a copy of the per-bin noise levels in use.
func (g *SpectralGate) NoiseMagnitudes() []float64 {
	out := make([]float64, len(g.magnitudes))
	copy(out, g.magnitudes)
	return out
}

func noiseMagnitudes(profile *noise.Profile, cfg Config) []float64 {
	mags := profile.Magnitudes()
	if cfg.SmoothingWindow <= 1 {
		return mags
	}
	return SmoothMagnitudes(mags, cfg.SmoothingWindow)
}

// SmoothMagnitudes returns the centered moving average of mags over window
// bins. Edge bins average only the neighbours that exist. A window of 1 or
// less returns a copy of mags.
func SmoothMagnitudes(mags []float64, window int) []float64 {
	out := make([]float64, len(mags))
	if window <= 1 {
		copy(out, mags)
		return out
	}

	half := window / 2
	for i := range mags {
		start := max(i-half, 0)
		end := min(i+half+1, len(mags))
		var sum float64
		for _, v := range mags[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// ProcessBlocks gates samples in consecutive blocks of blockSize and joins the
// results. The final block may be shorter. A blockSize <= 0 processes the
// whole buffer at once.
func (g *SpectralGate) ProcessBlocks(samples []float32, blockSize int) []float32 {
	if blockSize <= 0 || blockSize >= len(samples) {
		return g.Process(samples)
	}
	out := make([]float32, 0, len(samples))
	for start := 0; start < len(samples); start += blockSize {
		end := min(start+blockSize, len(samples))
		out = append(out, g.Process(samples[start:end])...)
	}
	return out
}
