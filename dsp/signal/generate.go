package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic test and demo signals at a fixed rate.
type Generator struct {
	sampleRate uint32
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator for the given sample rate.
func NewGenerator(sampleRate uint32, opts ...Option) (*Generator, error) {
	if sampleRate == 0 {
		return nil, ErrSampleRate
	}
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() uint32 {
	return g.sampleRate
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed for subsequent calls.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (Waveform, error) {
	if samples <= 0 {
		return Waveform{}, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / float64(g.sampleRate)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return g.wrap(out), nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (Waveform, error) {
	if samples <= 0 {
		return Waveform{}, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return Waveform{}, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float32, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return g.wrap(out), nil
}

// Constant generates a DC signal.
func (g *Generator) Constant(value float32, samples int) Waveform {
	if samples < 0 {
		samples = 0
	}
	out := make([]float32, samples)
	for i := range out {
		out[i] = value
	}
	return g.wrap(out)
}

// Silence generates samples zeros.
func (g *Generator) Silence(samples int) Waveform {
	return g.Constant(0, samples)
}

// Vibrato generates a sine whose frequency wobbles by depthHz around baseHz
// at rateHz.
func (g *Generator) Vibrato(baseHz, rateHz, depthHz float64, samples int) (Waveform, error) {
	if samples <= 0 {
		return Waveform{}, fmt.Errorf("signal: vibrato samples must be > 0: %d", samples)
	}
	out := make([]float32, samples)
	sr := float64(g.sampleRate)
	for i := range out {
		out[i] = float32(math.Sin(vibratoPhase(float64(i)/sr, baseHz, rateHz, depthHz)))
	}
	return g.wrap(out), nil
}

// VoiceLike generates a steady harmonic tone that resembles a sung vowel.
// Harmonic h has amplitude 1/h. A linear 5% attack and 10% release are applied.
func (g *Generator) VoiceLike(baseHz float64, harmonics, samples int) (Waveform, error) {
	return g.VoiceLikeVibrato(baseHz, 0, 0, harmonics, samples)
}

// VoiceLikeVibrato is [Generator.VoiceLike] with vibrato. The fundamental
// wobbles by depthHz at rateHz and harmonic h by h*depthHz, so the partials
// stay harmonic.
func (g *Generator) VoiceLikeVibrato(baseHz, rateHz, depthHz float64, harmonics, samples int) (Waveform, error) {
	if samples <= 0 {
		return Waveform{}, fmt.Errorf("signal: voice samples must be > 0: %d", samples)
	}
	if harmonics <= 0 {
		return Waveform{}, fmt.Errorf("signal: harmonics must be > 0: %d", harmonics)
	}

	acc := make([]float64, samples)
	sr := float64(g.sampleRate)
	for i := range acc {
		phase := vibratoPhase(float64(i)/sr, baseHz, rateHz, depthHz)
		for h := 1; h <= harmonics; h++ {
			acc[i] += math.Sin(float64(h)*phase) / float64(h)
		}
	}
	applyEnvelope(acc)

	out := make([]float32, samples)
	for i, v := range acc {
		out[i] = float32(v)
	}
	return g.wrap(out), nil
}

// vibratoPhase is the phase at time t of a tone whose instantaneous
// frequency is baseHz + depthHz*sin(2*pi*rateHz*t).
func vibratoPhase(t, baseHz, rateHz, depthHz float64) float64 {
	phase := 2 * math.Pi * baseHz * t
	if rateHz > 0 && depthHz != 0 {
		phase += depthHz / rateHz * (1 - math.Cos(2*math.Pi*rateHz*t))
	}
	return phase
}

// Mix adds b onto a sample by sample. The result has the length of a.
func Mix(a, b Waveform) Waveform {
	out := make([]float32, len(a.Samples))
	copy(out, a.Samples)
	n := min(len(a.Samples), len(b.Samples))
	for i := 0; i < n; i++ {
		out[i] += b.Samples[i]
	}
	return Waveform{Samples: out, SampleRate: a.SampleRate}
}

// Concat joins waveforms that share the sample rate of the first one.
func Concat(parts ...Waveform) (Waveform, error) {
	if len(parts) == 0 {
		return Waveform{}, fmt.Errorf("signal: concat needs at least one part")
	}
	sr := parts[0].SampleRate
	total := 0
	for i, p := range parts {
		if p.SampleRate != sr {
			return Waveform{}, fmt.Errorf("signal: part %d sample rate %d != %d", i, p.SampleRate, sr)
		}
		total += len(p.Samples)
	}
	out := make([]float32, 0, total)
	for _, p := range parts {
		out = append(out, p.Samples...)
	}
	return Waveform{Samples: out, SampleRate: sr}, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float32, targetPeak float64) ([]float32, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(float64(v))
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float32, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = float32(float64(v) * scale)
	}
	return out, nil
}

func (g *Generator) wrap(samples []float32) Waveform {
	return Waveform{Samples: samples, SampleRate: g.sampleRate}
}

func applyEnvelope(x []float64) {
	n := len(x)
	attack := int(0.05 * float64(n))
	release := int(0.1 * float64(n))
	for i := 0; i < attack; i++ {
		x[i] *= float64(i) / float64(attack)
	}
	for i := n - release; i < n; i++ {
		x[i] *= float64(n-i) / float64(release)
	}
}
