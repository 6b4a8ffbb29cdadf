package latency

import (
	"fmt"
	"time"
)

// Summary aggregates records of a session.
//
// Mean and Max cover processing durations. A record whose processing took
// longer than Budget counts as an overrun. A zero Budget disables overrun
// counting.
type Summary struct {
	Budget   time.Duration
	Count    int
	Total    time.Duration
	Max      time.Duration
	Overruns int

	LastEndToEnd time.Duration
	HasEndToEnd  bool
}

// NewSummary returns an empty summary with the given per-chunk budget.
func NewSummary(budget time.Duration) *Summary {
	return &Summary{Budget: budget}
}

// BudgetFor returns the real-time duration of a chunk of n samples.
func BudgetFor(n int, sampleRate uint32) time.Duration {
	if n <= 0 || sampleRate == 0 {
		return 0
	}
	return time.Duration(float64(n) / float64(sampleRate) * float64(time.Second))
}

// Add folds r into the summary. Records without a processing duration only
// update the end-to-end value.
func (s *Summary) Add(r *Record) {
	if r == nil {
		return
	}
	if e2e, ok := r.EndToEndLatency(); ok {
		s.LastEndToEnd = e2e
		s.HasEndToEnd = true
	}
	d, ok := r.ProcessingDuration()
	if !ok {
		return
	}
	s.Count++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
	if s.Budget > 0 && d > s.Budget {
		s.Overruns++
	}
}

// Mean returns the mean processing duration.
func (s *Summary) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// String implements fmt.Stringer.
func (s *Summary) String() string {
	e2e := "n/a"
	if s.HasEndToEnd {
		e2e = s.LastEndToEnd.String()
	}
	return fmt.Sprintf("chunks=%d mean=%v max=%v overruns=%d/%v e2e=%s",
		s.Count, s.Mean(), s.Max, s.Overruns, s.Budget, e2e)
}
