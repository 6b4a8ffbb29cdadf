package testutil

import (
	"testing"

	"github.com/cwbudde/pitchgate/dsp/signal"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float32{1, 2, 3}, []float32{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff() = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float32{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	RequireSliceNearlyEqual(t, []float32{1, 2}, []float32{1, 2.0000001}, 1e-6)
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float32{1, -2}); got != 5 {
		t.Fatalf("Energy() = %v, want 5", got)
	}
}

func TestRequireWaveformNearlyEqual(t *testing.T) {
	a := signal.Waveform{Samples: []float32{0.5, -0.5}, SampleRate: 8000}
	b := signal.Waveform{Samples: []float32{0.5, -0.50001}, SampleRate: 8000}
	RequireWaveformNearlyEqual(t, a, b, 1e-4)
	RequireFinite(t, a.Samples)
}

func TestWorstReportsLargestDifference(t *testing.T) {
	i, d := worst([]float32{0, 1, 2}, []float32{0.5, 1, 0})
	if i != 2 || d != 2 {
		t.Fatalf("worst() = %d, %v, want 2, 2", i, d)
	}
	if i, _ := worst(nil, nil); i != -1 {
		t.Fatalf("worst(nil) index = %d, want -1", i)
	}
}
