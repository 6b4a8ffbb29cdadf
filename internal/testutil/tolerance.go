package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/signal"
)

// worst returns the index and size of the largest sample difference
// between a and b, measured in float64. Index is -1 for empty input.
func worst(a, b []float32) (int, float64) {
	idx, maxDiff := -1, 0.0
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if idx < 0 || d > maxDiff {
			idx, maxDiff = i, d
		}
	}
	return idx, maxDiff
}

// RequireSliceNearlyEqual fails t when got and want differ in length or when
// any sample differs by more than eps. The report names the worst sample.
func RequireSliceNearlyEqual(t testing.TB, got, want []float32, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if i, d := worst(got, want); d > eps {
		t.Fatalf("sample %d: got %v, want %v (diff %g > eps %g)", i, got[i], want[i], d, eps)
	}
}

// RequireWaveformNearlyEqual is [RequireSliceNearlyEqual] for waveforms. The
// sample rates must match exactly.
func RequireWaveformNearlyEqual(t testing.TB, got, want signal.Waveform, eps float64) {
	t.Helper()
	if got.SampleRate != want.SampleRate {
		t.Fatalf("sample rate: got %d, want %d", got.SampleRate, want.SampleRate)
	}
	RequireSliceNearlyEqual(t, got.Samples, want.Samples, eps)
}

// RequireFinite fails t on the first NaN or Inf sample.
func RequireFinite(t testing.TB, data []float32) {
	t.Helper()
	for i, v := range data {
		if !core.IsFinite(float64(v)) {
			t.Fatalf("sample %d is %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest sample difference between a and b.
func MaxAbsDiff(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	_, d := worst(a, b)
	return d, nil
}

// Energy returns the sum of squared samples.
func Energy(x []float32) float64 {
	var e float64
	for _, v := range x {
		e += float64(v) * float64(v)
	}
	return e
}
