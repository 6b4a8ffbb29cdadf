package spectrum

import (
	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/frame"
	"github.com/cwbudde/pitchgate/dsp/signal"
)

// Spectrogram is a time-frequency magnitude grid. Row t holds the
// WindowSize/2 bin magnitudes of the t-th analysis window.
type Spectrogram struct {
	Frames     [][]float64
	SampleRate uint32
	Config     core.FrameConfig
}

// NewSpectrogram frames w with cfg and transforms every window.
// A waveform shorter than one window yields zero frames.
func NewSpectrogram(w signal.Waveform, cfg core.FrameConfig) (*Spectrogram, error) {
	it, err := frame.New(w.Samples, w.SampleRate, cfg)
	if err != nil {
		return nil, err
	}

	sg := &Spectrogram{
		Frames:     make([][]float64, 0, it.Remaining()),
		SampleRate: w.SampleRate,
		Config:     cfg,
	}
	for seg := range it.All() {
		sg.Frames = append(sg.Frames, Forward(seg.Samples).Magnitudes())
	}
	return sg, nil
}

// TimeSteps returns the frame count.
func (s *Spectrogram) TimeSteps() int {
	return len(s.Frames)
}

// FreqBins returns the magnitudes per frame.
func (s *Spectrogram) FreqBins() int {
	return s.Config.WindowSize / 2
}

// FrameTime returns the start time in seconds of frame t.
func (s *Spectrogram) FrameTime(t int) float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(t*s.Config.StepSize) / float64(s.SampleRate)
}

// BinFrequency returns the center frequency in Hz of bin k.
func (s *Spectrogram) BinFrequency(k int) float64 {
	return BinFrequency(k, s.Config.WindowSize, s.SampleRate)
}

// Peak returns the bin with the largest magnitude in frame t, or -1.
func (s *Spectrogram) Peak(t int) int {
	if t < 0 || t >= len(s.Frames) {
		return -1
	}
	best, idx := -1.0, -1
	for k, m := range s.Frames[t] {
		if m > best {
			best, idx = m, k
		}
	}
	return idx
}
