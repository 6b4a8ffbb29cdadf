package capture

import (
	"errors"
	"testing"
)

func TestPickDevice(t *testing.T) {
	names := []string{"Built-in Microphone", "USB Audio CODEC", "USB Headset"}
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"", -1, false},
		{"1", 0, false},
		{"3", 2, false},
		{"4", 0, true},
		{"0", 0, true},
		{"USB", 1, false},
		{"USB H", 2, false},
		{"Line In", 0, true},
	}
	for _, tt := range tests {
		got, err := pickDevice(names, tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrNoDevice) {
				t.Fatalf("pickDevice(%q) error = %v, want %v", tt.name, err, ErrNoDevice)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("pickDevice(%q) = %d, %v, want %d", tt.name, got, err, tt.want)
		}
	}
}
