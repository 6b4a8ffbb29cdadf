// Package capture reads mono audio from an input device.
//
// The portaudio backend is only compiled with the portaudio build tag, since
// it needs the native PortAudio library. Without the tag OpenDevice returns
// [ErrUnavailable].
package capture

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnavailable is returned when the binary was built without device
// support.
var ErrUnavailable = errors.New("capture: built without portaudio support (use -tags portaudio)")

// ErrNoDevice is returned when no input device matches the requested name.
var ErrNoDevice = errors.New("capture: input device not found")

// pickDevice returns the index of the device matching name: a 1-based
// position, or a name prefix. An empty name selects the default (-1).
func pickDevice(names []string, name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	if i, err := strconv.Atoi(name); err == nil {
		if i > 0 && i <= len(names) {
			return i - 1, nil
		}
		return 0, ErrNoDevice
	}
	for i, n := range names {
		if strings.HasPrefix(n, name) {
			return i, nil
		}
	}
	return 0, ErrNoDevice
}
