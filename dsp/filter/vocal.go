package filter

import "fmt"

const (
	// DefaultVocalLowHz is the lower edge of the sung-voice band.
	DefaultVocalLowHz = 80.0
	// DefaultVocalHighHz is the upper edge of the sung-voice band.
	DefaultVocalHighHz = 1200.0
)

// VocalBand designs a bandpass centered between lowHz and highHz with
// Q = center/bandwidth. A non-positive bandwidth uses Q = 1.
func VocalBand(lowHz, highHz float64, sampleRate uint32) (Coefficients, error) {
	center := (lowHz + highHz) / 2
	bandwidth := highHz - lowHz
	q := 1.0
	if bandwidth > 0 {
		q = center / bandwidth
	}

	c := Bandpass(center, q, float64(sampleRate))
	if c.IsZero() {
		return Coefficients{}, fmt.Errorf("filter: vocal band center %.1f Hz invalid at %d Hz", center, sampleRate)
	}
	return c, nil
}

// VocalBandpass filters samples through a fresh vocal-band section and
// returns a new slice of the same length.
func VocalBandpass(samples []float32, sampleRate uint32, lowHz, highHz float64) ([]float32, error) {
	c, err := VocalBand(lowHz, highHz, sampleRate)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(samples))
	NewSection(c).ProcessBlockTo(out, samples)
	return out, nil
}
