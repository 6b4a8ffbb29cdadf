package gate

import (
	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/dsp/spectrum"
	timestats "github.com/cwbudde/pitchgate/stats/time"
)

// Comparison pairs a waveform with its cleaned version for review.
// Spectra are computed on first use.
type Comparison struct {
	Before signal.Waveform
	After  signal.Waveform

	before *spectrum.Spectrum
	after  *spectrum.Spectrum
}

// Compare runs clean on w and returns both versions.
func Compare(w signal.Waveform, clean func(signal.Waveform) signal.Waveform) *Comparison {
	return &Comparison{Before: w.Clone(), After: clean(w)}
}

// Spectra returns the spectra of both waveforms.
func (c *Comparison) Spectra() (before, after *spectrum.Spectrum) {
	if c.before == nil || c.after == nil {
		c.before = spectrum.Forward(c.Before.Samples)
		c.after = spectrum.Forward(c.After.Samples)
	}
	return c.before, c.after
}

// MagnitudeSpectra returns the half-spectrum magnitudes of both waveforms.
func (c *Comparison) MagnitudeSpectra() (before, after []float64) {
	b, a := c.Spectra()
	return b.Magnitudes(), a.Magnitudes()
}

// EnergyRetained returns output energy divided by input energy. A silent
// input reports 1.
func (c *Comparison) EnergyRetained() float64 {
	in := timestats.Energy(c.Before.Samples)
	if in == 0 {
		return 1
	}
	return timestats.Energy(c.After.Samples) / in
}

// Stats returns the time-domain statistics of both waveforms.
func (c *Comparison) Stats() (before, after timestats.Stats) {
	return timestats.Calculate(c.Before.Samples), timestats.Calculate(c.After.Samples)
}

// SampleRate returns the rate of the original waveform.
func (c *Comparison) SampleRate() uint32 {
	return c.Before.SampleRate
}
