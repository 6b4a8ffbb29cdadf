package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/pitchgate/dsp/filter"
	"github.com/cwbudde/pitchgate/dsp/frame"
	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/dsp/noise"
	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/dsp/spectrum"
	"github.com/cwbudde/pitchgate/latency"
	"github.com/cwbudde/pitchgate/pitch"
)

// Result is the pitch of one analysis window.
type Result struct {
	Session string
	pitch.Point
	// Cleaning is the cleaning actually applied to the window.
	Cleaning Cleaning
	// Latency is shared by all results of the same chunk.
	Latency *latency.Record
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the log entry. Pipeline fields are added to it.
func WithLogger(entry *logrus.Entry) Option {
	return func(p *Pipeline) error {
		if entry == nil {
			return errors.New("pipeline: logger must not be nil")
		}
		p.log = entry
		return nil
	}
}

// WithNoiseProfile installs a noise profile for gating.
func WithNoiseProfile(profile *noise.Profile) Option {
	return func(p *Pipeline) error {
		return p.SetNoiseProfile(profile)
	}
}

// WithClock sets the clock used for latency stamps.
func WithClock(c latency.Clock) Option {
	return func(p *Pipeline) error {
		if c == nil {
			return errors.New("pipeline: clock must not be nil")
		}
		p.clock = c
		return nil
	}
}

// Pipeline turns chunks of audio into pitch results.
//
// It is not thread-safe. SetNoiseProfile must be called from the goroutine
// that calls Push, or between chunks.
type Pipeline struct {
	cfg     Config
	session string
	log     *logrus.Entry
	clock   latency.Clock

	tracker *pitch.Tracker
	stream  *frame.Stream
	gate    *gate.SpectralGate
	band    *filter.Section

	sampleRate uint32
	scratch    []float32
}

// New returns a pipeline that estimates pitch with est. When est has a fixed
// window size it must match cfg.Frame.WindowSize.
func New(est pitch.Estimator, cfg Config, opts ...Option) (*Pipeline, error) {
	if cfg.Cleaning == "" {
		cfg.Cleaning = CleaningAuto
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	det := pitch.Detector{
		Estimator:        est,
		PowerThreshold:   cfg.PowerThreshold,
		ClarityThreshold: cfg.ClarityThreshold,
	}
	tracker, err := pitch.NewTracker(det, cfg.Frame)
	if err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		cfg:     cfg,
		session: uuid.NewString(),
		log:     logrus.NewEntry(discard),
		clock:   time.Now,
		tracker: tracker,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.log = p.log.WithFields(logrus.Fields{
		"component": "pipeline",
		"session":   p.session,
	})
	p.log.WithFields(logrus.Fields{
		"window":   cfg.Frame.WindowSize,
		"step":     cfg.Frame.StepSize,
		"cleaning": cfg.Cleaning,
		"fft":      spectrum.Backend(cfg.Frame.WindowSize),
	}).Debug("pipeline created")
	return p, nil
}

// Session returns the session ID attached to every result.
func (p *Pipeline) Session() string {
	return p.session
}

// Config returns the configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// HasNoiseProfile reports whether gating is available.
func (p *Pipeline) HasNoiseProfile() bool {
	return p.gate != nil
}

// SetNoiseProfile replaces the gate's noise profile. A nil profile disables
// gating. For bins to line up, the profile should span one analysis window.
func (p *Pipeline) SetNoiseProfile(profile *noise.Profile) error {
	if profile == nil {
		p.gate = nil
		return nil
	}
	if p.gate != nil {
		return p.gate.UpdateNoiseProfile(profile)
	}
	g, err := gate.New(profile, p.cfg.Gate)
	if err != nil {
		return err
	}
	p.gate = g
	p.log.WithField("bins", profile.Len()).Debug("noise profile installed")
	return nil
}

// NoiseProfileFrom locates the quiet segment of w and builds a profile from
// its first analysis window.
func (p *Pipeline) NoiseProfileFrom(w signal.Waveform, opts ...noise.QuietOption) (*noise.Profile, bool) {
	return EstimateNoiseProfile(w, p.cfg.Frame.WindowSize, opts...)
}

// EstimateNoiseProfile locates the quiet segment of w and builds a profile
// from at most its first windowSize samples, so that the profile bins line
// up with windows of that length.
func EstimateNoiseProfile(w signal.Waveform, windowSize int, opts ...noise.QuietOption) (*noise.Profile, bool) {
	quiet, ok := noise.FindQuietSegment(w, opts...)
	if !ok {
		return nil, false
	}
	if windowSize > 0 && quiet.Len() > windowSize {
		quiet = quiet.Slice(0, windowSize)
	}
	profile, err := noise.NewProfile(quiet)
	if err != nil {
		return nil, false
	}
	return profile, true
}

// Reset drops buffered samples and filter state. The noise profile and
// session are kept.
func (p *Pipeline) Reset() {
	p.stream = nil
	p.band = nil
	p.sampleRate = 0
}

// Push processes one chunk and returns a result for every window it
// completes.
func (p *Pipeline) Push(chunk Chunk) []Result {
	out, _ := p.push(chunk)
	return out
}

func (p *Pipeline) push(chunk Chunk) ([]Result, *latency.Record) {
	rec := latency.NewRecord(latency.WithClock(p.clock))
	if !chunk.Arrival.IsZero() {
		rec = latency.NewRecord(latency.WithClock(p.clock), latency.WithCallbackArrival(chunk.Arrival))
	}
	if chunk.DeviceLatency > 0 {
		rec.SetInputDeviceLatency(chunk.DeviceLatency)
	}
	rec.MarkProcessingStart()
	defer rec.MarkProcessingEnd()

	if err := p.prepare(chunk.SampleRate); err != nil {
		p.log.WithError(err).Warn("chunk dropped")
		return nil, rec
	}

	mode := p.activeCleaning()
	samples := chunk.Samples
	if mode == CleaningBandpass {
		p.scratch = slices.Grow(p.scratch[:0], len(samples))[:len(samples)]
		p.band.ProcessBlockTo(p.scratch, samples)
		samples = p.scratch
	}

	segs := p.stream.Push(samples)
	if len(segs) == 0 {
		return nil, rec
	}
	if mode == CleaningGate {
		for i := range segs {
			segs[i].Samples = p.gate.Process(segs[i].Samples)
		}
	}

	track := p.tracker.TrackSegments(slices.Values(segs))
	out := make([]Result, len(track))
	for i, pt := range track {
		out[i] = Result{
			Session:  p.session,
			Point:    pt,
			Cleaning: mode,
			Latency:  rec,
		}
	}
	return out, rec
}

// prepare creates the framer and filter for the stream's sample rate. A
// change of sample rate restarts both.
func (p *Pipeline) prepare(sampleRate uint32) error {
	if sampleRate == 0 {
		return errors.New("pipeline: chunk sample rate must be > 0")
	}
	if p.stream != nil && sampleRate == p.sampleRate {
		return nil
	}
	if p.stream != nil {
		p.log.WithFields(logrus.Fields{
			"from": p.sampleRate,
			"to":   sampleRate,
		}).Warn("sample rate changed, restarting stream")
	}

	stream, err := frame.NewStream(sampleRate, p.cfg.Frame)
	if err != nil {
		return err
	}
	p.stream = stream
	p.band = nil
	if p.cfg.Cleaning == CleaningBandpass || p.cfg.Cleaning == CleaningAuto {
		c, err := filter.VocalBand(p.cfg.VocalLowHz, p.cfg.VocalHighHz, sampleRate)
		if err != nil {
			return err
		}
		p.band = filter.NewSection(c)
	}
	p.sampleRate = sampleRate
	return nil
}

func (p *Pipeline) activeCleaning() Cleaning {
	switch p.cfg.Cleaning {
	case CleaningGate:
		if p.gate != nil {
			return CleaningGate
		}
	case CleaningBandpass:
		return CleaningBandpass
	case CleaningAuto:
		if p.gate != nil {
			return CleaningGate
		}
		return CleaningBandpass
	}
	return CleaningNone
}

// ProcessWaveform runs a whole buffer as one chunk on a fresh stream. In
// gate and auto mode a noise profile is estimated from w first when none is
// set. An estimated profile applies to w only and is removed afterwards; a
// profile installed by the caller is kept.
func (p *Pipeline) ProcessWaveform(w signal.Waveform) []Result {
	p.Reset()
	estimated := false
	if p.gate == nil && (p.cfg.Cleaning == CleaningGate || p.cfg.Cleaning == CleaningAuto) {
		if profile, ok := p.NoiseProfileFrom(w); ok {
			if err := p.SetNoiseProfile(profile); err != nil {
				p.log.WithError(err).Warn("noise profile rejected")
			} else {
				estimated = true
			}
		} else {
			p.log.Debug("no quiet segment found")
		}
	}
	out := p.Push(Chunk{Samples: w.Samples, SampleRate: w.SampleRate, Arrival: p.clock()})
	p.Reset()
	if estimated {
		p.gate = nil
	}
	return out
}

// Run reads chunks from src until it is exhausted or ctx is cancelled and
// calls fn for every result. It returns the latency summary of the chunks
// processed.
func (p *Pipeline) Run(ctx context.Context, src Source, fn func(Result)) (latency.Summary, error) {
	var summary *latency.Summary
	for {
		if err := ctx.Err(); err != nil {
			return deref(summary), err
		}
		chunk, err := src.ReadChunk(ctx)
		if errors.Is(err, io.EOF) {
			p.log.WithField("chunks", deref(summary).Count).Info("source exhausted")
			return deref(summary), nil
		}
		if err != nil {
			return deref(summary), fmt.Errorf("pipeline: read chunk: %w", err)
		}
		if summary == nil {
			summary = latency.NewSummary(latency.BudgetFor(len(chunk.Samples), chunk.SampleRate))
		}

		results, rec := p.push(chunk)
		summary.Add(rec)
		if d, ok := rec.ProcessingDuration(); ok && summary.Budget > 0 && d > summary.Budget {
			p.log.WithFields(logrus.Fields{
				"latency_ms": float64(d) / float64(time.Millisecond),
				"budget_ms":  float64(summary.Budget) / float64(time.Millisecond),
			}).Warn("chunk overran its budget")
		}
		for _, r := range results {
			if fn != nil {
				fn(r)
			}
		}
	}
}

func deref(s *latency.Summary) latency.Summary {
	if s == nil {
		return latency.Summary{}
	}
	return *s
}
