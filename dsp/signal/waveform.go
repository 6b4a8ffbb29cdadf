package signal

import (
	"errors"
	"fmt"
	"time"
)

// ErrSampleRate is returned when a waveform is built with a zero sample rate.
var ErrSampleRate = errors.New("signal: sample rate must be > 0")

// Waveform is a mono block of normalized float samples at a fixed rate.
//
// Samples are expected in [-1, 1] but this is not enforced. The zero value is
// an empty waveform without a rate and is rejected by [Waveform.Validate].
type Waveform struct {
	Samples    []float32
	SampleRate uint32
}

// NewWaveform wraps samples without copying.
func NewWaveform(samples []float32, sampleRate uint32) (Waveform, error) {
	w := Waveform{Samples: samples, SampleRate: sampleRate}
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}
	return w, nil
}

// Validate reports whether the waveform carries a usable sample rate.
func (w Waveform) Validate() error {
	if w.SampleRate == 0 {
		return ErrSampleRate
	}
	return nil
}

// Len returns the sample count.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// SampleIndex converts a time offset into a sample index, truncating toward zero.
func (w Waveform) SampleIndex(at time.Duration) int {
	return int(at.Seconds() * float64(w.SampleRate))
}

// Slice returns the samples in [start, end) as a new waveform sharing storage.
// Indices are clamped to the valid range.
func (w Waveform) Slice(start, end int) Waveform {
	if start < 0 {
		start = 0
	}
	if end > len(w.Samples) {
		end = len(w.Samples)
	}
	if start > end {
		start = end
	}
	return Waveform{Samples: w.Samples[start:end], SampleRate: w.SampleRate}
}

// Clone returns a waveform with its own copy of the samples.
func (w Waveform) Clone() Waveform {
	s := make([]float32, len(w.Samples))
	copy(s, w.Samples)
	return Waveform{Samples: s, SampleRate: w.SampleRate}
}

// String implements fmt.Stringer.
func (w Waveform) String() string {
	return fmt.Sprintf("%d samples @ %d Hz (%s)", len(w.Samples), w.SampleRate, w.Duration())
}
