package pitch

import "github.com/cwbudde/pitchgate/dsp/frame"

const (
	// DefaultPowerThreshold is the minimum window energy (sum of squares).
	DefaultPowerThreshold = 0.1
	// DefaultClarityThreshold is the minimum periodicity for a voiced window.
	DefaultClarityThreshold = 0.7
)

// Detector binds an estimator to its thresholds.
type Detector struct {
	Estimator        Estimator
	PowerThreshold   float64
	ClarityThreshold float64
}

// NewDetector returns a detector with the default thresholds.
func NewDetector(est Estimator) Detector {
	return Detector{
		Estimator:        est,
		PowerThreshold:   DefaultPowerThreshold,
		ClarityThreshold: DefaultClarityThreshold,
	}
}

// Detect estimates the pitch of one segment.
func (d Detector) Detect(seg frame.Segment) (Estimate, bool) {
	return d.Estimator.Estimate(seg.Samples, seg.SampleRate, d.PowerThreshold, d.ClarityThreshold)
}
