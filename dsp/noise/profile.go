package noise

import (
	"errors"

	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/dsp/spectrum"
	"github.com/cwbudde/pitchgate/stats/frequency"
)

// ErrEmptyProfile is returned when a profile is built from no samples.
var ErrEmptyProfile = errors.New("noise: profile needs at least one sample")

// Profile is the spectrum of a noise-only sample block.
type Profile struct {
	Spectrum   *spectrum.Spectrum
	SampleRate uint32
}

// NewProfile transforms a noise-only waveform into a profile.
func NewProfile(w signal.Waveform) (*Profile, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, ErrEmptyProfile
	}
	return &Profile{
		Spectrum:   spectrum.Forward(w.Samples),
		SampleRate: w.SampleRate,
	}, nil
}

// Len returns the number of bins, equal to the source sample count.
func (p *Profile) Len() int {
	if p == nil || p.Spectrum == nil {
		return 0
	}
	return p.Spectrum.Len()
}

// Magnitudes returns the magnitude of every bin.
func (p *Profile) Magnitudes() []float64 {
	if p.Len() == 0 {
		return []float64{}
	}
	return p.Spectrum.FullMagnitudes()
}

// Describe summarizes the lower half of the profile's spectrum.
func (p *Profile) Describe() frequency.Stats {
	if p.Len() == 0 {
		return frequency.Stats{}
	}
	return frequency.Calculate(p.Spectrum.Magnitudes(), float64(p.SampleRate), p.Len())
}
