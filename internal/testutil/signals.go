package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp returns 1, 2, ..., n as float32 values.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

// NoisyTone returns noise of noiseAmp for leadIn samples followed by a tone
// of freqHz mixed with the same noise for toneLen samples.
func NoisyTone(freqHz, sampleRate, toneAmp, noiseAmp float64, leadIn, toneLen int, seed int64) []float32 {
	out := DeterministicNoise(seed, noiseAmp, leadIn+toneLen)
	tone := DeterministicSine(freqHz, sampleRate, toneAmp, toneLen)
	for i, v := range tone {
		out[leadIn+i] += v
	}
	return out
}
