// Package time provides time-domain statistics over float32 sample blocks.
package time

import (
	"math"

	"github.com/cwbudde/pitchgate/dsp/core"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length      int
	Peak        float64
	RMS         float64
	Mean        float64
	StdDev      float64 // population standard deviation
	Energy      float64 // sum of squares
	CrestFactor float64
	RMS_dB      float64 //nolint:revive
}

// Calculate computes all statistics in a single pass.
// An empty signal yields zeroes with RMS_dB = -Inf.
func Calculate(signal []float32) Stats {
	st := Stats{Length: len(signal), RMS_dB: math.Inf(-1)}
	if len(signal) == 0 {
		return st
	}

	var sum, sumSq, peak float64
	for _, s := range signal {
		v := float64(s)
		sum += v
		sumSq += v * v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	n := float64(len(signal))
	st.Peak = peak
	st.Energy = sumSq
	st.RMS = math.Sqrt(sumSq / n)
	st.Mean = sum / n
	st.StdDev = math.Sqrt(math.Max(sumSq/n-st.Mean*st.Mean, 0))
	if st.RMS > 0 {
		st.CrestFactor = peak / st.RMS
		st.RMS_dB = core.LinearToDB(st.RMS)
	}
	return st
}

// RMS returns the root-mean-square of the signal, or 0 when empty.
func RMS(signal []float32) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(Energy(signal) / float64(len(signal)))
}

// Energy returns the sum of squared samples.
func Energy(signal []float32) float64 {
	var sum float64
	for _, s := range signal {
		v := float64(s)
		sum += v * v
	}
	return sum
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float32) float64 {
	var peak float64
	for _, s := range signal {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

// MeanStdDev returns the mean and population standard deviation of values.
// ok is false for an empty input.
func MeanStdDev(values []float64) (mean, std float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance), true
}

// ChunkRMS splits signal into consecutive non-overlapping chunks of size
// samples and returns the RMS of each. The last chunk may be shorter.
func ChunkRMS(signal []float32, size int) []float64 {
	if size <= 0 || len(signal) == 0 {
		return nil
	}
	out := make([]float64, 0, (len(signal)+size-1)/size)
	for start := 0; start < len(signal); start += size {
		end := min(start+size, len(signal))
		out = append(out, RMS(signal[start:end]))
	}
	return out
}

// ZScore returns (value-mean)/std. ok is false when std is zero or not finite.
func ZScore(value, mean, std float64) (float64, bool) {
	if std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return 0, false
	}
	return (value - mean) / std, true
}
