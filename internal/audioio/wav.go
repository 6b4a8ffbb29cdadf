// Package audioio reads and writes mono WAV files. Integer PCM at 16, 24 and
// 32 bits and 32-bit IEEE float are read; output is 16-bit PCM.
package audioio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/pitchgate/dsp/signal"
)

var (
	// ErrInvalidWAV is returned for input that is not a RIFF/WAVE stream.
	ErrInvalidWAV = errors.New("audioio: invalid WAV file")
	// ErrNotMono is returned for files with more than one channel.
	ErrNotMono = errors.New("audioio: only mono files are supported")
)

// LoadWAV reads a whole mono WAV file.
func LoadWAV(path string) (signal.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Waveform{}, fmt.Errorf("audioio: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeWAV(f)
}

// DecodeWAV reads a whole mono WAV stream. Samples are scaled by bit depth
// to roughly [-1, 1].
func DecodeWAV(r io.ReadSeeker) (signal.Waveform, error) {
	dec, err := openDecoder(r)
	if err != nil {
		return signal.Waveform{}, err
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Waveform{}, fmt.Errorf("audioio: read PCM: %w", err)
	}
	samples := sampleFormatOf(dec).decode(buf.Data)
	return signal.Waveform{Samples: samples, SampleRate: dec.SampleRate}, nil
}

func openDecoder(r io.ReadSeeker) (*wav.Decoder, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotMono, dec.NumChans)
	}
	if err := sampleFormatOf(dec).validate(); err != nil {
		return nil, err
	}
	return dec, nil
}

// WAVE format tags.
const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// sampleFormat describes how decoded words map to float samples.
type sampleFormat struct {
	tag      uint16
	bitDepth int
}

func sampleFormatOf(dec *wav.Decoder) sampleFormat {
	return sampleFormat{tag: dec.WavAudioFormat, bitDepth: int(dec.BitDepth)}
}

func (f sampleFormat) float() bool {
	return f.tag == formatIEEEFloat
}

func (f sampleFormat) validate() error {
	switch f.tag {
	case formatPCM:
		if _, ok := pcmScale(f.bitDepth); !ok {
			return fmt.Errorf("%w: unsupported PCM bit depth %d", ErrInvalidWAV, f.bitDepth)
		}
	case formatIEEEFloat:
		if f.bitDepth != 32 {
			return fmt.Errorf("%w: unsupported float bit depth %d", ErrInvalidWAV, f.bitDepth)
		}
	default:
		return fmt.Errorf("%w: unsupported format tag %d", ErrInvalidWAV, f.tag)
	}
	return nil
}

// pcmScale returns the full-scale value for a PCM bit depth.
func pcmScale(bitDepth int) (float64, bool) {
	switch bitDepth {
	case 16:
		return math.MaxInt16, true
	case 24:
		return 1 << 23, true
	case 32:
		return math.MaxInt32, true
	}
	return 0, false
}

// decode converts decoder words to samples. The decoder returns float
// samples as their raw 32-bit patterns. Callers validate f first.
func (f sampleFormat) decode(data []int) []float32 {
	out := make([]float32, len(data))
	if f.float() {
		for i, v := range data {
			out[i] = math.Float32frombits(uint32(v))
		}
		return out
	}
	scale, _ := pcmScale(f.bitDepth)
	for i, v := range data {
		out[i] = float32(float64(v) / scale)
	}
	return out
}

// SaveWAV writes w as 16-bit mono PCM. Samples are clipped to [-1, 1].
func SaveWAV(path string, w signal.Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audioio: create %s: %w", path, err)
	}
	if err := EncodeWAV(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeWAV writes w as 16-bit mono PCM to ws.
func EncodeWAV(ws io.WriteSeeker, w signal.Waveform) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		data[i] = int(math.Round(v * math.MaxInt16))
	}

	enc := wav.NewEncoder(ws, int(w.SampleRate), 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(w.SampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audioio: write PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audioio: finalize WAV: %w", err)
	}
	return nil
}
