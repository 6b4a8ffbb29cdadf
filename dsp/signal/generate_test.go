package signal

import (
	"math"
	"testing"
)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(8000, opts...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func TestNewGeneratorRejectsZeroRate(t *testing.T) {
	if _, err := NewGenerator(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestSineLength(t *testing.T) {
	g := newTestGenerator(t)
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if s.Len() != 64 {
		t.Fatalf("len = %d, want 64", s.Len())
	}
	if s.SampleRate != 8000 {
		t.Fatalf("sample rate = %d, want 8000", s.SampleRate)
	}
}

func TestSineRejectsEmpty(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := newTestGenerator(t, WithSeed(42))
	g2 := newTestGenerator(t, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1.Samples {
		if n1.Samples[i] != n2.Samples[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1.Samples[i], n2.Samples[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := newTestGenerator(t)
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestVoiceLikeEnvelope(t *testing.T) {
	g := newTestGenerator(t)
	w, err := g.VoiceLike(220, 5, 1000)
	if err != nil {
		t.Fatalf("VoiceLike() error = %v", err)
	}
	if w.Samples[0] != 0 {
		t.Fatalf("first sample = %v, want 0 (attack starts silent)", w.Samples[0])
	}

	peak := 0.0
	for _, v := range w.Samples[100:800] {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak < 0.5 {
		t.Fatalf("sustain peak = %v, want >= 0.5", peak)
	}
}

func TestVoiceLikeRejectsNoHarmonics(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.VoiceLike(220, 0, 100); err == nil {
		t.Fatal("expected error for zero harmonics")
	}
}

func TestVibratoBounded(t *testing.T) {
	g := newTestGenerator(t)
	w, err := g.Vibrato(440, 5, 8, 4000)
	if err != nil {
		t.Fatalf("Vibrato() error = %v", err)
	}
	for i, v := range w.Samples {
		if v > 1 || v < -1 {
			t.Fatalf("sample %d = %v out of range", i, v)
		}
	}
}

func TestVibratoStaysWithinDepth(t *testing.T) {
	g := newTestGenerator(t)
	w, err := g.Vibrato(440, 5, 8, 8000)
	if err != nil {
		t.Fatalf("Vibrato() error = %v", err)
	}
	// 0.1 s windows at 440 +/- 8 Hz hold 43 to 45 rising zero crossings,
	// give or take one at the window edges.
	const window = 800
	for start := 0; start+window <= w.Len(); start += window {
		n := 0
		seg := w.Samples[start : start+window]
		for i := 1; i < len(seg); i++ {
			if seg[i-1] < 0 && seg[i] >= 0 {
				n++
			}
		}
		if n < 42 || n > 46 {
			t.Fatalf("window at %d: %d rising crossings, want 42..46", start, n)
		}
	}
}

func TestMixAndConcat(t *testing.T) {
	g := newTestGenerator(t)
	a := g.Constant(0.25, 4)
	b := g.Constant(0.5, 2)

	m := Mix(a, b)
	want := []float32{0.75, 0.75, 0.25, 0.25}
	for i := range want {
		if m.Samples[i] != want[i] {
			t.Fatalf("Mix()[%d] = %v, want %v", i, m.Samples[i], want[i])
		}
	}

	c, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat() error = %v", err)
	}
	if c.Len() != 6 {
		t.Fatalf("Concat() len = %d, want 6", c.Len())
	}

	if _, err := Concat(a, Waveform{Samples: []float32{1}, SampleRate: 44100}); err == nil {
		t.Fatal("expected error for mismatched sample rates")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float32{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
}
