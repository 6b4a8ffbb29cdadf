//go:build portaudio

package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/pitchgate/pipeline"
)

var paRefs struct {
	sync.Mutex
	refs int
}

// Device is an open portaudio input stream.
type Device struct {
	Name       string
	stream     *portaudio.Stream
	buf        []float32
	sampleRate uint32
	latency    time.Duration
}

// OpenDevice opens and starts a mono input stream. name is a 1-based device
// number or a name prefix; an empty name uses the default input.
func OpenDevice(name string, sampleRate uint32, chunkSize int) (*Device, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("capture: chunk size must be > 0: %d", chunkSize)
	}
	if err := acquire(); err != nil {
		return nil, err
	}

	info, err := findInput(name)
	if err != nil {
		release()
		return nil, err
	}

	p := portaudio.HighLatencyParameters(info, nil)
	p.Input.Channels = 1
	p.Output.Channels = 0
	p.SampleRate = float64(sampleRate)
	p.FramesPerBuffer = chunkSize

	buf := make([]float32, chunkSize)
	stream, err := portaudio.OpenStream(p, buf)
	if err != nil {
		release()
		return nil, fmt.Errorf("capture: open input: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		release()
		return nil, fmt.Errorf("capture: start input: %w", err)
	}

	return &Device{
		Name:       info.Name,
		stream:     stream,
		buf:        buf,
		sampleRate: sampleRate,
		latency:    stream.Info().InputLatency,
	}, nil
}

func findInput(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		info, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("capture: default input: %w", err)
		}
		return info, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture: list devices: %w", err)
	}
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}
	i, err := pickDevice(names, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	return devices[i], nil
}

// ListDevices returns the names of devices with input channels.
func ListDevices() ([]string, error) {
	if err := acquire(); err != nil {
		return nil, err
	}
	defer release()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture: list devices: %w", err)
	}
	var out []string
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			out = append(out, d.Name)
		}
	}
	return out, nil
}

// ReadChunk blocks until the next buffer is captured.
func (d *Device) ReadChunk(ctx context.Context) (pipeline.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Chunk{}, err
	}
	if err := d.stream.Read(); err != nil {
		return pipeline.Chunk{}, fmt.Errorf("capture: read: %w", err)
	}
	samples := make([]float32, len(d.buf))
	copy(samples, d.buf)
	return pipeline.Chunk{
		Samples:       samples,
		SampleRate:    d.sampleRate,
		Arrival:       time.Now(),
		DeviceLatency: d.latency,
	}, nil
}

// Close stops the stream and releases portaudio.
func (d *Device) Close() error {
	if d.stream == nil {
		return nil
	}
	err := d.stream.Stop()
	if cerr := d.stream.Close(); err == nil {
		err = cerr
	}
	d.stream = nil
	release()
	return err
}

func acquire() error {
	paRefs.Lock()
	defer paRefs.Unlock()
	if paRefs.refs == 0 {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("capture: initialize portaudio: %w", err)
		}
	}
	paRefs.refs++
	return nil
}

func release() {
	paRefs.Lock()
	defer paRefs.Unlock()
	if paRefs.refs == 0 {
		return
	}
	paRefs.refs--
	if paRefs.refs == 0 {
		portaudio.Terminate()
	}
}
