//go:build !portaudio

package capture

import (
	"context"

	"github.com/cwbudde/pitchgate/pipeline"
)

// Device is unavailable without the portaudio build tag.
type Device struct {
	Name string
}

// OpenDevice always returns [ErrUnavailable].
func OpenDevice(string, uint32, int) (*Device, error) {
	return nil, ErrUnavailable
}

// ListDevices always returns [ErrUnavailable].
func ListDevices() ([]string, error) {
	return nil, ErrUnavailable
}

// ReadChunk always returns [ErrUnavailable].
func (d *Device) ReadChunk(context.Context) (pipeline.Chunk, error) {
	return pipeline.Chunk{}, ErrUnavailable
}

// Close is a no-op.
func (d *Device) Close() error {
	return nil
}
