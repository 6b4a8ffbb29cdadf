package pitch

import (
	"errors"
	"sync"
)

// ErrWindowSize reports a window whose length differs from the estimator's
// configured size.
var ErrWindowSize = errors.New("pitch: window length does not match estimator window size")

// Estimate is a detected fundamental frequency and its clarity in [0, 1].
type Estimate struct {
	Frequency float64
	Clarity   float64
}

// Estimator detects the pitch of one window.
//
// It returns false when the window is too quiet (total power below
// powerThreshold) or not periodic enough (clarity below clarityThreshold).
type Estimator interface {
	Estimate(samples []float32, sampleRate uint32, powerThreshold, clarityThreshold float64) (Estimate, bool)
}

// Sized is implemented by estimators that only accept one window length.
type Sized interface {
	WindowSize() int
}

// EstimatorFunc adapts a function to [Estimator].
type EstimatorFunc func(samples []float32, sampleRate uint32, powerThreshold, clarityThreshold float64) (Estimate, bool)

// Estimate calls f.
func (f EstimatorFunc) Estimate(samples []float32, sampleRate uint32, powerThreshold, clarityThreshold float64) (Estimate, bool) {
	return f(samples, sampleRate, powerThreshold, clarityThreshold)
}

// Shared guards an Estimator with a mutex so one instance can serve several
// goroutines. The lock is held only for the duration of one Estimate call.
type Shared struct {
	mu  sync.Mutex
	est Estimator
}

// NewShared wraps est.
func NewShared(est Estimator) *Shared {
	return &Shared{est: est}
}

// Estimate runs the wrapped estimator under the lock.
func (s *Shared) Estimate(samples []float32, sampleRate uint32, powerThreshold, clarityThreshold float64) (Estimate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.est.Estimate(samples, sampleRate, powerThreshold, clarityThreshold)
}

// WindowSize reports the wrapped estimator's window size, or 0 when it
// accepts any length.
func (s *Shared) WindowSize() int {
	if sz, ok := s.est.(Sized); ok {
		return sz.WindowSize()
	}
	return 0
}

// windowSizeOf returns the fixed window size of est, or 0.
func windowSizeOf(est Estimator) int {
	if sz, ok := est.(Sized); ok {
		return sz.WindowSize()
	}
	return 0
}
