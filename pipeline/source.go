package pipeline

import (
	"context"
	"io"
	"time"
)

// Chunk is one block of mono samples delivered by a source.
//
// Arrival is when the source received the block; the zero time means
// unknown. DeviceLatency is the input latency reported by the device; zero
// means unknown.
type Chunk struct {
	Samples       []float32
	SampleRate    uint32
	Arrival       time.Time
	DeviceLatency time.Duration
}

// Source delivers chunks in order. ReadChunk returns io.EOF after the last
// chunk.
type Source interface {
	ReadChunk(ctx context.Context) (Chunk, error)
}

// SliceSource replays a buffer in fixed-size chunks. The last chunk may be
// shorter.
type SliceSource struct {
	samples    []float32
	sampleRate uint32
	chunkSize  int
	pos        int
	clock      func() time.Time
}

// NewSliceSource returns a source over samples. A chunkSize <= 0 delivers
// the buffer as a single chunk.
func NewSliceSource(samples []float32, sampleRate uint32, chunkSize int) *SliceSource {
	if chunkSize <= 0 {
		chunkSize = max(len(samples), 1)
	}
	return &SliceSource{
		samples:    samples,
		sampleRate: sampleRate,
		chunkSize:  chunkSize,
		clock:      time.Now,
	}
}

// ReadChunk implements [Source].
func (s *SliceSource) ReadChunk(ctx context.Context) (Chunk, error) {
	if err := ctx.Err(); err != nil {
		return Chunk{}, err
	}
	if s.pos >= len(s.samples) {
		return Chunk{}, io.EOF
	}
	end := min(s.pos+s.chunkSize, len(s.samples))
	c := Chunk{
		Samples:    s.samples[s.pos:end],
		SampleRate: s.sampleRate,
		Arrival:    s.clock(),
	}
	s.pos = end
	return c, nil
}
