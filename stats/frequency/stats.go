// Package frequency describes the shape of a magnitude spectrum.
//
// Magnitudes are the lower half of an N-point transform: bin k for k < N/2
// at frequency k*sampleRate/N.
package frequency

import "math"

// Stats holds frequency-domain shape descriptors.
type Stats struct {
	BinCount int
	Energy   float64 // sum of squared magnitudes
	PeakHz   float64
	PeakMag  float64
	Centroid float64 // Hz
	Flatness float64 // Wiener entropy, 0..1
	Rolloff  float64 // Hz below which 85% of the energy lies
}

// DefaultRolloff is the energy fraction used by [Calculate].
const DefaultRolloff = 0.85

func binFreq(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// Calculate computes all descriptors. fftSize is the transform length N,
// normally 2*len(magnitude) or 2*len(magnitude)+1.
func Calculate(magnitude []float64, sampleRate float64, fftSize int) Stats {
	st := Stats{BinCount: len(magnitude)}
	if len(magnitude) == 0 || fftSize <= 0 {
		return st
	}
	for _, v := range magnitude {
		st.Energy += v * v
	}
	peak := 0
	for k, v := range magnitude {
		if v > magnitude[peak] {
			peak = k
		}
	}
	st.PeakHz = binFreq(peak, fftSize, sampleRate)
	st.PeakMag = magnitude[peak]
	st.Centroid = Centroid(magnitude, sampleRate, fftSize)
	st.Flatness = Flatness(magnitude)
	st.Rolloff = Rolloff(magnitude, sampleRate, fftSize, DefaultRolloff)
	return st
}

// Centroid returns the magnitude-weighted mean frequency in Hz.
//
//	centroid = sum(f_k * |X_k|) / sum(|X_k|)
func Centroid(magnitude []float64, sampleRate float64, fftSize int) float64 {
	var sum, weighted float64
	for k, v := range magnitude {
		sum += v
		weighted += binFreq(k, fftSize, sampleRate) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_k|))) / mean(|X_k|)
//
// The DC bin is excluded. If any considered bin is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// energy lies.
func Rolloff(magnitude []float64, sampleRate float64, fftSize int, fraction float64) float64 {
	var total float64
	for _, v := range magnitude {
		total += v * v
	}
	if total == 0 {
		return 0
	}
	target := total * fraction
	var acc float64
	for k, v := range magnitude {
		acc += v * v
		if acc >= target {
			return binFreq(k, fftSize, sampleRate)
		}
	}
	return binFreq(len(magnitude)-1, fftSize, sampleRate)
}
