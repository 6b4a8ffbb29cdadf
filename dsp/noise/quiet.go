package noise

import (
	"time"

	"github.com/cwbudde/pitchgate/dsp/signal"
	timestats "github.com/cwbudde/pitchgate/stats/time"
)

const (
	// DefaultZScoreThreshold is the loudness z-score a candidate must fall
	// below to be accepted as noise-only.
	DefaultZScoreThreshold = -1.0
	// DefaultCandidateStart skips the onset click of typical recordings.
	DefaultCandidateStart = 200 * time.Millisecond
	// DefaultCandidateEnd bounds the candidate region.
	DefaultCandidateEnd = 1500 * time.Millisecond

	// uniformTolerance is the relative spread below which chunk loudness is
	// treated as constant.
	uniformTolerance = 1e-9
)

// QuietOption configures [FindQuietSegment].
type QuietOption func(*quietConfig)

type quietConfig struct {
	threshold float64
	start     time.Duration
	end       time.Duration
}

// WithZScoreThreshold overrides [DefaultZScoreThreshold].
func WithZScoreThreshold(z float64) QuietOption {
	return func(c *quietConfig) {
		c.threshold = z
	}
}

// WithCandidate overrides the candidate region. Invalid ranges are ignored.
func WithCandidate(start, end time.Duration) QuietOption {
	return func(c *quietConfig) {
		if start >= 0 && end > start {
			c.start, c.end = start, end
		}
	}
}

// QuietReport explains the outcome of a quiet-segment search.
type QuietReport struct {
	Start, End   int // candidate sample range, End exclusive
	CandidateRMS float64
	MeanRMS      float64
	StdDevRMS    float64
	ZScore       float64
	Chunks       int
	Found        bool
}

// FindQuietSegment returns the candidate region of w when it is quiet
// relative to the rest of the recording.
//
// The candidate spans [200ms, min(1500ms, len)). The whole waveform is cut
// into consecutive chunks of the candidate's length, including a shorter
// trailing chunk, and the candidate is accepted when the z-score of its RMS
// against the chunk RMS values is below the threshold. Empty input, a
// candidate that does not fit, or chunks of uniform loudness report false.
func FindQuietSegment(w signal.Waveform, opts ...QuietOption) (signal.Waveform, bool) {
	rep := AnalyzeQuietSegment(w, opts...)
	if !rep.Found {
		return signal.Waveform{}, false
	}
	return w.Slice(rep.Start, rep.End), true
}

// AnalyzeQuietSegment runs the same search as [FindQuietSegment] and reports
// the intermediate statistics.
func AnalyzeQuietSegment(w signal.Waveform, opts ...QuietOption) QuietReport {
	cfg := quietConfig{
		threshold: DefaultZScoreThreshold,
		start:     DefaultCandidateStart,
		end:       DefaultCandidateEnd,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var rep QuietReport
	if w.Len() == 0 || w.SampleRate == 0 {
		return rep
	}

	rep.Start = w.SampleIndex(cfg.start)
	rep.End = min(w.SampleIndex(cfg.end), w.Len())
	if rep.Start >= rep.End {
		return rep
	}

	candidate := w.Samples[rep.Start:rep.End]
	chunks := timestats.ChunkRMS(w.Samples, len(candidate))
	rep.Chunks = len(chunks)

	mean, std, ok := timestats.MeanStdDev(chunks)
	if !ok {
		return rep
	}
	rep.MeanRMS, rep.StdDevRMS = mean, std
	rep.CandidateRMS = timestats.RMS(candidate)
	if std <= mean*uniformTolerance {
		return rep
	}

	z, ok := timestats.ZScore(rep.CandidateRMS, mean, std)
	if !ok {
		return rep
	}
	rep.ZScore = z
	rep.Found = z < cfg.threshold
	return rep
}

// EstimateProfile locates a quiet segment and builds a profile from it.
func EstimateProfile(w signal.Waveform, opts ...QuietOption) (*Profile, bool) {
	quiet, ok := FindQuietSegment(w, opts...)
	if !ok {
		return nil, false
	}
	p, err := NewProfile(quiet)
	if err != nil {
		return nil, false
	}
	return p, true
}
