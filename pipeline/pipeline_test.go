package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/pitchgate/dsp/core"
	"github.com/cwbudde/pitchgate/dsp/frame"
	"github.com/cwbudde/pitchgate/dsp/noise"
	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/internal/testutil"
	"github.com/cwbudde/pitchgate/latency"
	"github.com/cwbudde/pitchgate/pitch"
)

const testRate = 8000

func testConfig(cleaning Cleaning) Config {
	cfg := DefaultConfig()
	cfg.Frame = core.FrameConfig{WindowSize: 1024, StepSize: 512}
	cfg.Cleaning = cleaning
	return cfg
}

func newPipeline(t *testing.T, cfg Config, opts ...Option) *Pipeline {
	t.Helper()
	yin, err := pitch.NewYIN(cfg.Frame.WindowSize)
	require.NoError(t, err)
	p, err := New(yin, cfg, opts...)
	require.NoError(t, err)
	return p
}

func stepClock(step time.Duration) latency.Clock {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func pushAll(p *Pipeline, samples []float32, chunk int) []Result {
	var out []Result
	for start := 0; start < len(samples); start += chunk {
		end := min(start+chunk, len(samples))
		out = append(out, p.Push(Chunk{Samples: samples[start:end], SampleRate: testRate})...)
	}
	return out
}

func TestNewRejectsMismatchedEstimator(t *testing.T) {
	yin, err := pitch.NewYIN(512)
	require.NoError(t, err)

	_, err = New(yin, testConfig(CleaningNone))
	assert.ErrorIs(t, err, pitch.ErrWindowSize)

	_, err = New(yin, testConfig(CleaningNone), WithLogger(nil))
	assert.Error(t, err)
}

func TestPushTracksToneAcrossChunks(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningNone))
	samples := testutil.DeterministicSine(440, testRate, 0.5, 8192)

	results := pushAll(p, samples, 300)
	require.Len(t, results, frame.Count(len(samples), 1024, 512))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, i*512, r.Offset)
		assert.Equal(t, p.Session(), r.Session)
		assert.Equal(t, CleaningNone, r.Cleaning)
		require.NotNil(t, r.Latency)
		require.True(t, r.Voiced, "window %d", i)
		assert.Equal(t, "A4", pitch.NoteName(r.Frequency))
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newPipeline(t, testConfig(CleaningNone))
	b := newPipeline(t, testConfig(CleaningNone))
	assert.NotEmpty(t, a.Session())
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestGateModeNeedsProfile(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningGate))
	samples := testutil.DeterministicSine(440, testRate, 0.5, 2048)

	results := p.Push(Chunk{Samples: samples[:1024], SampleRate: testRate})
	require.Len(t, results, 1)
	assert.Equal(t, CleaningNone, results[0].Cleaning)

	profile, err := noise.NewProfile(signal.Waveform{
		Samples:    testutil.DeterministicNoise(1, 0.01, 1024),
		SampleRate: testRate,
	})
	require.NoError(t, err)
	require.NoError(t, p.SetNoiseProfile(profile))
	assert.True(t, p.HasNoiseProfile())

	results = p.Push(Chunk{Samples: samples[1024:], SampleRate: testRate})
	require.Len(t, results, 2)
	assert.Equal(t, CleaningGate, results[0].Cleaning)
	assert.True(t, results[0].Voiced)

	require.NoError(t, p.SetNoiseProfile(nil))
	assert.False(t, p.HasNoiseProfile())
}

func TestAutoModeFallsBackToBandpass(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningAuto))
	samples := testutil.DeterministicSine(440, testRate, 0.5, 8192)

	results := pushAll(p, samples, 1000)
	require.NotEmpty(t, results)
	voiced := 0
	for _, r := range results {
		assert.Equal(t, CleaningBandpass, r.Cleaning)
		if r.Voiced && pitch.NoteName(r.Frequency) == "A4" {
			voiced++
		}
	}
	assert.GreaterOrEqual(t, voiced, len(results)-1)
}

func TestProcessWaveformEstimatesProfile(t *testing.T) {
	const leadIn = 12000
	samples := testutil.NoisyTone(440, testRate, 0.5, 0.01, leadIn, 40000, 3)
	p := newPipeline(t, testConfig(CleaningAuto))

	results := p.ProcessWaveform(signal.Waveform{Samples: samples, SampleRate: testRate})
	require.Len(t, results, frame.Count(len(samples), 1024, 512))
	assert.False(t, p.HasNoiseProfile(), "estimated profile outlived the waveform")

	for _, r := range results {
		assert.Equal(t, CleaningGate, r.Cleaning)
		switch {
		case r.Offset+1024 <= leadIn:
			assert.False(t, r.Voiced, "noise window at %d voiced", r.Offset)
		case r.Offset >= leadIn:
			require.True(t, r.Voiced, "tone window at %d unvoiced", r.Offset)
			assert.Equal(t, "A4", pitch.NoteName(r.Frequency))
		}
	}

	again := p.ProcessWaveform(signal.Waveform{Samples: samples, SampleRate: testRate})
	assert.Len(t, again, len(results))
	assert.Equal(t, 0, again[0].Offset)
	assert.Equal(t, CleaningGate, again[0].Cleaning)
}

func TestProcessWaveformDoesNotReuseEstimatedProfile(t *testing.T) {
	noisy := testutil.NoisyTone(440, testRate, 0.5, 0.01, 12000, 40000, 3)
	flat := testutil.DC(0.5, 16384)
	p := newPipeline(t, testConfig(CleaningAuto))

	first := p.ProcessWaveform(signal.Waveform{Samples: noisy, SampleRate: testRate})
	require.NotEmpty(t, first)
	assert.Equal(t, CleaningGate, first[0].Cleaning)

	second := p.ProcessWaveform(signal.Waveform{Samples: flat, SampleRate: testRate})
	require.NotEmpty(t, second)
	for _, r := range second {
		assert.Equal(t, CleaningBandpass, r.Cleaning, "window at %d", r.Offset)
	}
	assert.False(t, p.HasNoiseProfile())
}

func TestProcessWaveformKeepsCallerProfile(t *testing.T) {
	profile, err := noise.NewProfile(signal.Waveform{
		Samples:    testutil.DeterministicNoise(5, 0.01, 1024),
		SampleRate: testRate,
	})
	require.NoError(t, err)
	p := newPipeline(t, testConfig(CleaningAuto), WithNoiseProfile(profile))

	flat := testutil.DeterministicSine(440, testRate, 0.5, 4096)
	for range 2 {
		results := p.ProcessWaveform(signal.Waveform{Samples: flat, SampleRate: testRate})
		require.NotEmpty(t, results)
		assert.Equal(t, CleaningGate, results[0].Cleaning)
	}
	assert.True(t, p.HasNoiseProfile())
}

func TestPushIgnoresZeroSampleRate(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	p := newPipeline(t, testConfig(CleaningNone), WithLogger(logrus.NewEntry(logrus.StandardLogger())))
	assert.Empty(t, p.Push(Chunk{Samples: make([]float32, 2048)}))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, p.Session(), hook.LastEntry().Data["session"])
}

func TestSampleRateChangeRestartsStream(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningNone))
	assert.Empty(t, p.Push(Chunk{Samples: make([]float32, 1000), SampleRate: 8000}))
	assert.Empty(t, p.Push(Chunk{Samples: make([]float32, 1000), SampleRate: 16000}))

	results := p.Push(Chunk{Samples: make([]float32, 100), SampleRate: 16000})
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Offset)
	assert.False(t, results[0].Voiced)
}

func TestPushLatencyRecord(t *testing.T) {
	clock := stepClock(time.Millisecond)
	p := newPipeline(t, testConfig(CleaningNone), WithClock(clock))

	arrival := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-3 * time.Millisecond)
	results := p.Push(Chunk{
		Samples:       testutil.DeterministicSine(440, testRate, 0.5, 1024),
		SampleRate:    testRate,
		Arrival:       arrival,
		DeviceLatency: 5 * time.Millisecond,
	})
	require.Len(t, results, 1)

	rec := results[0].Latency
	d, ok := rec.ProcessingDuration()
	require.True(t, ok)
	assert.Equal(t, time.Millisecond, d)

	total, ok := rec.TotalLatency()
	require.True(t, ok)
	assert.Equal(t, 4*time.Millisecond, total)

	e2e, ok := rec.EndToEndLatency()
	require.True(t, ok)
	assert.Equal(t, 9*time.Millisecond, e2e)
}

func TestRun(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningNone), WithClock(stepClock(time.Millisecond)))
	samples := testutil.DeterministicSine(440, testRate, 0.5, 8000)

	var results []Result
	summary, err := p.Run(context.Background(), NewSliceSource(samples, testRate, 800), func(r Result) {
		results = append(results, r)
	})
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Count)
	assert.Equal(t, 100*time.Millisecond, summary.Budget)
	assert.Equal(t, time.Millisecond, summary.Mean())
	assert.Zero(t, summary.Overruns)
	assert.True(t, summary.HasEndToEnd)
	assert.Len(t, results, frame.Count(len(samples), 1024, 512))
}

func TestRunCancelled(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningNone))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, NewSliceSource(make([]float32, 4096), testRate, 512), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingSource struct{ err error }

func (s failingSource) ReadChunk(context.Context) (Chunk, error) {
	return Chunk{}, s.err
}

func TestRunSourceError(t *testing.T) {
	p := newPipeline(t, testConfig(CleaningNone))
	boom := errors.New("device unplugged")

	_, err := p.Run(context.Background(), failingSource{err: boom}, nil)
	assert.ErrorIs(t, err, boom)

	summary, err := p.Run(context.Background(), failingSource{err: io.EOF}, nil)
	assert.NoError(t, err)
	assert.Zero(t, summary.Count)
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource(testutil.Ramp(5), testRate, 2)
	var sizes []int
	for {
		c, err := src.ReadChunk(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, uint32(testRate), c.SampleRate)
		assert.False(t, c.Arrival.IsZero())
		sizes = append(sizes, len(c.Samples))
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)

	whole := NewSliceSource(testutil.Ramp(5), testRate, 0)
	c, err := whole.ReadChunk(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Samples, 5)
}
