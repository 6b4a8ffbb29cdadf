package frame

import (
	"iter"
	"time"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/signal"
)

// Segment is one analysis window. Samples are owned by the receiver.
type Segment struct {
	Index      int
	Offset     int
	Samples    []float32
	SampleRate uint32
}

// Time returns the start time of the segment within its stream.
func (s Segment) Time() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(s.Offset) / float64(s.SampleRate) * float64(time.Second))
}

// Waveform returns the segment samples as a waveform.
func (s Segment) Waveform() signal.Waveform {
	return signal.Waveform{Samples: s.Samples, SampleRate: s.SampleRate}
}

// Count returns the number of complete windows in n samples.
func Count(n, window, step int) int {
	if window <= 0 || step <= 0 || n < window {
		return 0
	}
	return (n-window)/step + 1
}

// Iterator yields the windows of a buffer in order. It is single pass:
// once exhausted it stays exhausted.
type Iterator struct {
	samples    []float32
	sampleRate uint32
	window     int
	step       int
	pos        int
	index      int
}

// New returns an iterator over samples. The samples are not copied until a
// segment is produced.
func New(samples []float32, sampleRate uint32, cfg core.FrameConfig) (*Iterator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Iterator{
		samples:    samples,
		sampleRate: sampleRate,
		window:     cfg.WindowSize,
		step:       cfg.StepSize,
	}, nil
}

// Next returns the next window, or false when fewer than window samples
// remain at the current position.
func (it *Iterator) Next() (Segment, bool) {
	if it.pos > len(it.samples) || len(it.samples)-it.pos < it.window {
		return Segment{}, false
	}

	buf := make([]float32, it.window)
	copy(buf, it.samples[it.pos:it.pos+it.window])
	seg := Segment{
		Index:      it.index,
		Offset:     it.pos,
		Samples:    buf,
		SampleRate: it.sampleRate,
	}
	it.pos += it.step
	it.index++
	return seg, true
}

// Remaining returns how many windows Next will still produce.
func (it *Iterator) Remaining() int {
	if it.pos > len(it.samples) {
		return 0
	}
	return Count(len(it.samples)-it.pos, it.window, it.step)
}

// All adapts the iterator to a range-over-func sequence. The sequence drains
// the iterator it came from.
func (it *Iterator) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for {
			seg, ok := it.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

// Windows returns every window of samples as copies.
func Windows(samples []float32, window, step int) [][]float32 {
	it, err := New(samples, 0, core.FrameConfig{WindowSize: window, StepSize: step})
	if err != nil {
		return nil
	}
	out := make([][]float32, 0, it.Remaining())
	for seg := range it.All() {
		out = append(out, seg.Samples)
	}
	return out
}
