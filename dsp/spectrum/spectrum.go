package spectrum

// Spectrum is the full complex DFT of a real sample block.
//
// Bin k holds frequency k*sampleRate/N. For real input bins above N/2 mirror
// the lower half as complex conjugates. A Spectrum is a plain value holder and
// is not safe for concurrent mutation.
type Spectrum struct {
	bins []complex128
}

// Forward computes the N-point DFT of samples, N = len(samples).
// An empty input yields an empty spectrum.
func Forward(samples []float32) *Spectrum {
	n := len(samples)
	if n == 0 {
		return &Spectrum{}
	}

	src := make([]complex128, n)
	for i, v := range samples {
		src[i] = complex(float64(v), 0)
	}
	bins := make([]complex128, n)
	run(bins, src, false)
	return &Spectrum{bins: bins}
}

// FromBins wraps bins without copying.
func FromBins(bins []complex128) *Spectrum {
	return &Spectrum{bins: bins}
}

// Len returns the bin count N.
func (s *Spectrum) Len() int {
	return len(s.bins)
}

// At returns bin i, or false when i is out of range.
func (s *Spectrum) At(i int) (complex128, bool) {
	if i < 0 || i >= len(s.bins) {
		return 0, false
	}
	return s.bins[i], true
}

// Bins returns a copy of all N bins.
func (s *Spectrum) Bins() []complex128 {
	out := make([]complex128, len(s.bins))
	copy(out, s.bins)
	return out
}

// Magnitudes returns |X[k]| for the first N/2 bins (integer division).
// The Nyquist bin of an even-length spectrum is not included.
func (s *Spectrum) Magnitudes() []float64 {
	half := len(s.bins) / 2
	if half == 0 {
		return []float64{}
	}
	return Magnitude(s.bins[:half])
}

// FullMagnitudes returns |X[k]| for all N bins.
func (s *Spectrum) FullMagnitudes() []float64 {
	if len(s.bins) == 0 {
		return []float64{}
	}
	return Magnitude(s.bins)
}

// Inverse returns the real part of the normalized inverse DFT.
// Its length equals Len.
func (s *Spectrum) Inverse() []float32 {
	n := len(s.bins)
	if n == 0 {
		return []float32{}
	}

	tmp := make([]complex128, n)
	run(tmp, s.bins, true)

	out := make([]float32, n)
	for i, c := range tmp {
		out[i] = float32(real(c))
	}
	return out
}

// Clone returns a spectrum with its own copy of the bins.
func (s *Spectrum) Clone() *Spectrum {
	return &Spectrum{bins: s.Bins()}
}

// Scale multiplies bin i by gain. Out-of-range indices are ignored.
func (s *Spectrum) Scale(i int, gain float64) {
	if i < 0 || i >= len(s.bins) {
		return
	}
	s.bins[i] *= complex(gain, 0)
}

// BinFrequency returns the center frequency in Hz of bin k for an N-point
// transform at sampleRate.
func BinFrequency(k, n int, sampleRate uint32) float64 {
	if n <= 0 {
		return 0
	}
	return float64(k) * float64(sampleRate) / float64(n)
}
