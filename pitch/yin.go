package pitch

import (
	"fmt"

	"github.com/cwbudde/pitchgate/dsp/core"
)

const minYINWindow = 4

// YIN is a fixed-size YIN pitch estimator (de Cheveigné and Kawahara, 2002).
//
// It keeps scratch buffers between calls and is not safe for concurrent use;
// wrap it in [Shared] to share one instance. Calling Estimate with a window
// of any other length than WindowSize panics.
type YIN struct {
	size  int
	diff  []float64
	cmndf []float64
	buf   []float64
}

// NewYIN returns an estimator for windows of exactly size samples.
func NewYIN(size int) (*YIN, error) {
	if size < minYINWindow {
		return nil, fmt.Errorf("pitch: yin window must be >= %d: %d", minYINWindow, size)
	}
	half := size / 2
	return &YIN{
		size:  size,
		diff:  make([]float64, half),
		cmndf: make([]float64, half),
		buf:   make([]float64, size),
	}, nil
}

// WindowSize returns the only accepted window length.
func (y *YIN) WindowSize() int {
	return y.size
}

// Estimate implements [Estimator].
func (y *YIN) Estimate(samples []float32, sampleRate uint32, powerThreshold, clarityThreshold float64) (Estimate, bool) {
	if len(samples) != y.size {
		panic(fmt.Errorf("%w: got %d, want %d", ErrWindowSize, len(samples), y.size))
	}
	if sampleRate == 0 {
		return Estimate{}, false
	}

	y.buf = core.ToFloat64(y.buf, samples)
	var power float64
	for _, v := range y.buf {
		power += v * v
	}
	if power < powerThreshold {
		return Estimate{}, false
	}

	y.difference()
	y.normalize()

	tau, ok := y.firstDip(1 - clarityThreshold)
	if !ok {
		return Estimate{}, false
	}

	period := parabolicMinimum(y.cmndf, tau)
	if period <= 0 {
		return Estimate{}, false
	}
	return Estimate{
		Frequency: float64(sampleRate) / period,
		Clarity:   1 - y.cmndf[tau],
	}, true
}

// difference computes d(tau) = sum_j (x[j] - x[j+tau])^2 over half a window.
func (y *YIN) difference() {
	half := len(y.diff)
	for tau := range half {
		var sum float64
		for j := range half {
			d := y.buf[j] - y.buf[j+tau]
			sum += d * d
		}
		y.diff[tau] = sum
	}
}

// normalize computes the cumulative mean normalized difference.
func (y *YIN) normalize() {
	y.cmndf[0] = 1
	var running float64
	for tau := 1; tau < len(y.diff); tau++ {
		running += y.diff[tau]
		if running == 0 {
			y.cmndf[tau] = 1
			continue
		}
		y.cmndf[tau] = y.diff[tau] * float64(tau) / running
	}
}

// firstDip returns the lag of the first local minimum below threshold.
func (y *YIN) firstDip(threshold float64) (int, bool) {
	for tau := 1; tau < len(y.cmndf); tau++ {
		if y.cmndf[tau] >= threshold {
			continue
		}
		for tau+1 < len(y.cmndf) && y.cmndf[tau+1] < y.cmndf[tau] {
			tau++
		}
		return tau, true
	}
	return 0, false
}

func parabolicMinimum(data []float64, idx int) float64 {
	if idx <= 0 || idx >= len(data)-1 {
		return float64(idx)
	}

	y1, y2, y3 := data[idx-1], data[idx], data[idx+1]
	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2
	if a == 0 {
		return float64(idx)
	}
	return float64(idx) - b/(2*a)
}
