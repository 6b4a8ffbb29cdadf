package audioio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/pitchgate/pipeline"
)

// FileSource streams a mono WAV file in fixed-size chunks. The last chunk
// may be shorter.
type FileSource struct {
	dec        *wav.Decoder
	buf        *audio.IntBuffer
	format     sampleFormat
	sampleRate uint32
	clock      func() time.Time
}

// NewFileSource opens a chunked reader over r.
func NewFileSource(r io.ReadSeeker, chunkSize int) (*FileSource, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("audioio: chunk size must be > 0: %d", chunkSize)
	}
	dec, err := openDecoder(r)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		dec: dec,
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: 1, SampleRate: int(dec.SampleRate)},
			Data:   make([]int, chunkSize),
		},
		format:     sampleFormatOf(dec),
		sampleRate: dec.SampleRate,
		clock:      time.Now,
	}, nil
}

// SampleRate returns the file's sample rate.
func (s *FileSource) SampleRate() uint32 {
	return s.sampleRate
}

// ReadChunk implements [pipeline.Source].
func (s *FileSource) ReadChunk(ctx context.Context) (pipeline.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Chunk{}, err
	}
	s.buf.Data = s.buf.Data[:cap(s.buf.Data)]
	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return pipeline.Chunk{}, fmt.Errorf("audioio: read PCM: %w", err)
		}
		return pipeline.Chunk{}, io.EOF
	}
	return pipeline.Chunk{
		Samples:    s.format.decode(s.buf.Data[:n]),
		SampleRate: s.sampleRate,
		Arrival:    s.clock(),
	}, nil
}
