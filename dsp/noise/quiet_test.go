package noise

import (
	"testing"
	"time"

	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/internal/testutil"
)

const testRate = 1000

// quietThenLoud is 1.5s of faint noise followed by 4.5s of a loud tone.
func quietThenLoud() signal.Waveform {
	return signal.Waveform{
		Samples:    testutil.NoisyTone(50, testRate, 0.5, 0.01, 1500, 4500, 7),
		SampleRate: testRate,
	}
}

func TestFindQuietSegmentAccepts(t *testing.T) {
	w := quietThenLoud()
	seg, ok := FindQuietSegment(w)
	if !ok {
		t.Fatalf("FindQuietSegment() not found: %+v", AnalyzeQuietSegment(w))
	}
	if seg.Len() != 1300 {
		t.Fatalf("segment length = %d, want 1300", seg.Len())
	}
	if seg.SampleRate != testRate {
		t.Fatalf("sample rate = %d, want %d", seg.SampleRate, testRate)
	}
	if seg.Samples[0] != w.Samples[200] {
		t.Fatal("segment does not start at 200ms")
	}
}

func TestAnalyzeQuietSegmentReport(t *testing.T) {
	rep := AnalyzeQuietSegment(quietThenLoud())
	if rep.Start != 200 || rep.End != 1500 {
		t.Fatalf("candidate = [%d, %d), want [200, 1500)", rep.Start, rep.End)
	}
	// 6000 samples in chunks of 1300: four full chunks plus a tail of 800.
	if rep.Chunks != 5 {
		t.Fatalf("Chunks = %d, want 5", rep.Chunks)
	}
	if rep.ZScore >= DefaultZScoreThreshold {
		t.Fatalf("ZScore = %v, want < %v", rep.ZScore, DefaultZScoreThreshold)
	}
}

func TestFindQuietSegmentRejects(t *testing.T) {
	tests := []struct {
		name string
		w    signal.Waveform
	}{
		{name: "empty", w: signal.Waveform{SampleRate: testRate}},
		{name: "shorter than candidate start", w: signal.Waveform{Samples: make([]float32, 150), SampleRate: testRate}},
		{name: "steady tone", w: signal.Waveform{Samples: testutil.DeterministicSine(50, testRate, 0.3, 6000), SampleRate: testRate}},
		{name: "constant level", w: signal.Waveform{Samples: testutil.DC(0.01, 6000), SampleRate: testRate}},
		{name: "loud start", w: signal.Waveform{
			Samples:    append(testutil.DeterministicSine(50, testRate, 0.5, 1500), make([]float32, 4500)...),
			SampleRate: testRate,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FindQuietSegment(tt.w); ok {
				t.Fatalf("FindQuietSegment() found a segment: %+v", AnalyzeQuietSegment(tt.w))
			}
		})
	}
}

func TestFindQuietSegmentShortInputUsesAvailableRange(t *testing.T) {
	// 1s of audio: the candidate is clipped to [200, 1000) and covers most of
	// the buffer, so the chunk statistics decide acceptance.
	samples := append(make([]float32, 0, 1000), testutil.DeterministicNoise(1, 0.4, 200)...)
	samples = append(samples, testutil.DeterministicNoise(2, 0.001, 800)...)
	w := signal.Waveform{Samples: samples, SampleRate: testRate}

	rep := AnalyzeQuietSegment(w)
	if rep.End != 1000 {
		t.Fatalf("End = %d, want 1000", rep.End)
	}
	if rep.Chunks != 2 {
		t.Fatalf("Chunks = %d, want 2", rep.Chunks)
	}
}

func TestQuietOptions(t *testing.T) {
	w := quietThenLoud()

	if _, ok := FindQuietSegment(w, WithZScoreThreshold(-10)); ok {
		t.Fatal("strict threshold should reject the candidate")
	}

	seg, ok := FindQuietSegment(w, WithCandidate(100*time.Millisecond, 600*time.Millisecond))
	if !ok {
		t.Fatal("custom candidate not accepted")
	}
	if seg.Len() != 500 {
		t.Fatalf("segment length = %d, want 500", seg.Len())
	}

	rep := AnalyzeQuietSegment(w, WithCandidate(time.Second, time.Millisecond))
	if rep.Start != 200 {
		t.Fatalf("invalid candidate override applied: start = %d", rep.Start)
	}
}

func TestEstimateProfile(t *testing.T) {
	p, ok := EstimateProfile(quietThenLoud())
	if !ok {
		t.Fatal("EstimateProfile() not found")
	}
	if p.Len() != 1300 {
		t.Fatalf("profile bins = %d, want 1300", p.Len())
	}
	if _, ok := EstimateProfile(signal.Waveform{SampleRate: testRate}); ok {
		t.Fatal("EstimateProfile(empty) reported a profile")
	}
}
