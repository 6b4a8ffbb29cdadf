package pitch

import (
	"fmt"
	"iter"
	"time"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/frame"
	"github.com/cwbudde/pitchgate/dsp/signal"
)

// Point is the pitch result for one analysis window.
type Point struct {
	Index  int
	Offset int
	Time   time.Duration
	Estimate
	Voiced bool
}

// Track is an ordered pitch time series.
type Track []Point

// Frequencies returns one frequency per point with 0 for unvoiced points.
func (t Track) Frequencies() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		if p.Voiced {
			out[i] = p.Frequency
		}
	}
	return out
}

// VoicedCount returns the number of voiced points.
func (t Track) VoicedCount() int {
	n := 0
	for _, p := range t {
		if p.Voiced {
			n++
		}
	}
	return n
}

// Notes returns the nearest note name for each point, "N/A" when unvoiced.
func (t Track) Notes() []string {
	out := make([]string, len(t))
	for i, p := range t {
		if p.Voiced {
			out[i] = NoteName(p.Frequency)
		} else {
			out[i] = NoteName(0)
		}
	}
	return out
}

// Tracker applies a Detector to every window of a waveform.
type Tracker struct {
	detector Detector
	cfg      core.FrameConfig
}

// NewTracker returns a tracker. When the estimator has a fixed window size
// it must equal cfg.WindowSize.
func NewTracker(det Detector, cfg core.FrameConfig) (*Tracker, error) {
	if det.Estimator == nil {
		return nil, fmt.Errorf("pitch: tracker needs an estimator")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if size := windowSizeOf(det.Estimator); size > 0 && size != cfg.WindowSize {
		return nil, fmt.Errorf("%w: estimator %d, frames %d", ErrWindowSize, size, cfg.WindowSize)
	}
	return &Tracker{detector: det, cfg: cfg}, nil
}

// Config returns the framing used by the tracker.
func (t *Tracker) Config() core.FrameConfig {
	return t.cfg
}

// Track frames w and estimates every window.
func (t *Tracker) Track(w signal.Waveform) Track {
	it, err := frame.New(w.Samples, w.SampleRate, t.cfg)
	if err != nil {
		return Track{}
	}
	return t.TrackSegments(it.All())
}

// TrackSegments estimates every segment of segs. Segments whose length
// differs from the configured window are recorded unvoiced and never reach
// the estimator.
func (t *Tracker) TrackSegments(segs iter.Seq[frame.Segment]) Track {
	out := Track{}
	for seg := range segs {
		out = append(out, t.point(seg))
	}
	return out
}

func (t *Tracker) point(seg frame.Segment) Point {
	p := Point{Index: seg.Index, Offset: seg.Offset, Time: seg.Time()}
	if len(seg.Samples) != t.cfg.WindowSize {
		return p
	}
	p.Estimate, p.Voiced = t.detector.Detect(seg)
	return p
}

// TrackFrequencies is a convenience that tracks samples and returns the
// 0-for-unvoiced frequency series.
func TrackFrequencies(samples []float32, sampleRate uint32, cfg core.FrameConfig, det Detector) ([]float64, error) {
	tr, err := NewTracker(det, cfg)
	if err != nil {
		return nil, err
	}
	return tr.Track(signal.Waveform{Samples: samples, SampleRate: sampleRate}).Frequencies(), nil
}
