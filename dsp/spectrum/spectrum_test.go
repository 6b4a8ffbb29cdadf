package spectrum

import (
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/cwbudde/pitchgate/internal/testutil"
)

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}
	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 {
		t.Fatalf("Power[0]=%f want=25", pow[0])
	}
	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestForwardInverseRoundTrip(t *testing.T) {
	sizes := []int{1, 2, 7, 8, 12, 100, 1024, 1500}
	for _, n := range sizes {
		x := testutil.DeterministicNoise(int64(n), 1, n)
		s := Forward(x)
		if s.Len() != n {
			t.Fatalf("n=%d: Len() = %d", n, s.Len())
		}
		y := s.Inverse()
		testutil.RequireSliceNearlyEqual(t, y, x, 1e-5)
	}
}

func TestForwardEmpty(t *testing.T) {
	s := Forward(nil)
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	if len(s.Magnitudes()) != 0 || len(s.FullMagnitudes()) != 0 || len(s.Inverse()) != 0 {
		t.Fatal("empty spectrum produced data")
	}
	if _, ok := s.At(0); ok {
		t.Fatal("At(0) on empty spectrum reported a bin")
	}
}

func TestForwardDC(t *testing.T) {
	s := Forward(testutil.DC(1, 8))
	dc, ok := s.At(0)
	if !ok {
		t.Fatal("At(0) missing")
	}
	if cmplx.Abs(dc-8) > 1e-9 {
		t.Fatalf("DC bin = %v, want 8", dc)
	}
	for k := 1; k < 8; k++ {
		b, _ := s.At(k)
		if cmplx.Abs(b) > 1e-9 {
			t.Fatalf("bin %d = %v, want 0", k, b)
		}
	}
}

func TestMagnitudesHalfLength(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 1, want: 0},
		{n: 2, want: 1},
		{n: 7, want: 3},
		{n: 8, want: 4},
	}
	for _, tt := range tests {
		s := Forward(make([]float32, tt.n))
		if got := len(s.Magnitudes()); got != tt.want {
			t.Fatalf("n=%d: len(Magnitudes()) = %d, want %d", tt.n, got, tt.want)
		}
		if got := len(s.FullMagnitudes()); got != tt.n {
			t.Fatalf("n=%d: len(FullMagnitudes()) = %d, want %d", tt.n, got, tt.n)
		}
	}
}

func TestForwardSinePeak(t *testing.T) {
	const (
		n  = 1024
		sr = 8192
	)
	x := testutil.DeterministicSine(1000, sr, 1, n)
	mags := Forward(x).Magnitudes()

	peak := 0
	for k := range mags {
		if mags[k] > mags[peak] {
			peak = k
		}
	}
	if got := BinFrequency(peak, n, sr); got != 1000 {
		t.Fatalf("peak frequency = %v, want 1000", got)
	}
	if math.Abs(mags[peak]-n/2) > 1e-2 {
		t.Fatalf("peak magnitude = %v, want %v", mags[peak], n/2)
	}
}

func TestCloneAndScale(t *testing.T) {
	s := Forward(testutil.DC(1, 4))
	c := s.Clone()
	c.Scale(0, 0.5)
	c.Scale(99, 0)

	orig, _ := s.At(0)
	scaled, _ := c.At(0)
	if cmplx.Abs(orig-4) > 1e-9 || cmplx.Abs(scaled-2) > 1e-9 {
		t.Fatalf("orig=%v scaled=%v", orig, scaled)
	}
	bins := s.Bins()
	bins[0] = 0
	if b, _ := s.At(0); b == 0 {
		t.Fatal("Bins() returned shared storage")
	}
}

func TestBackend(t *testing.T) {
	if got := Backend(0); got != "none" {
		t.Fatalf("Backend(0) = %q", got)
	}
	if got := Backend(12); got != "gonum" {
		t.Fatalf("Backend(12) = %q, want gonum", got)
	}
}

func TestForwardConcurrent(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 256)
	want := Forward(x).Bins()

	var wg sync.WaitGroup
	errs := make(chan int, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Forward(x).Bins()
			for k := range got {
				if cmplx.Abs(got[k]-want[k]) > 1e-9 {
					errs <- k
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for k := range errs {
		t.Fatalf("concurrent transform mismatch at bin %d", k)
	}
}
