package frame

import (
	"github.com/cwbudde/pitchgate/dsp/buffer"
	"github.com/cwbudde/pitchgate/dsp/core"
)

// Stream frames a live sample stream delivered in arbitrary chunks.
//
// Pushing a buffer in any chunking produces exactly the windows an
// [Iterator] produces for the concatenated buffer, with offsets counted from
// the first pushed sample. Stream is not safe for concurrent use.
type Stream struct {
	buf        *buffer.Buffer
	sampleRate uint32
	window     int
	step       int
	base       int // stream offset of buf[0]
	next       int // stream offset of the next window start
	index      int
	pushed     int
}

// NewStream returns a framer for a stream at sampleRate.
func NewStream(sampleRate uint32, cfg core.FrameConfig) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Stream{
		buf:        buffer.New(2 * cfg.WindowSize),
		sampleRate: sampleRate,
		window:     cfg.WindowSize,
		step:       cfg.StepSize,
	}, nil
}

// Push appends chunk and returns every window completed by it.
func (s *Stream) Push(chunk []float32) []Segment {
	s.buf.Append(chunk)
	s.pushed += len(chunk)

	var out []Segment
	for {
		if lag := s.next - s.base; lag > 0 {
			s.base += s.buf.Discard(lag)
			if s.next > s.base {
				break
			}
		}
		if s.buf.Len() < s.window {
			break
		}

		samples := make([]float32, s.window)
		s.buf.CopyHead(samples)
		out = append(out, Segment{
			Index:      s.index,
			Offset:     s.next,
			Samples:    samples,
			SampleRate: s.sampleRate,
		})
		s.next += s.step
		s.index++
	}
	return out
}

// Pending returns the number of buffered samples not yet released.
func (s *Stream) Pending() int {
	return s.buf.Len()
}

// Pushed returns the total number of samples pushed since creation or Reset.
func (s *Stream) Pushed() int {
	return s.pushed
}

// Emitted returns the number of windows produced so far.
func (s *Stream) Emitted() int {
	return s.index
}

// Reset discards buffered samples and restarts offsets at zero.
func (s *Stream) Reset() {
	s.buf.Reset()
	s.base, s.next, s.index, s.pushed = 0, 0, 0, 0
}

// Config returns the window and step in use.
func (s *Stream) Config() core.FrameConfig {
	return core.FrameConfig{WindowSize: s.window, StepSize: s.step}
}
