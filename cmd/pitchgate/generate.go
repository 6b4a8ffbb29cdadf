package main

import (
	"time"

	"github.com/sirupsen/logrus"

	sig "github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/internal/audioio"
	"github.com/cwbudde/pitchgate/internal/cli"
)

// GenerateCmd writes a synthetic voice-like test tone.
type GenerateCmd struct {
	Out          string        `arg:"" type:"path" help:"16-bit WAV output."`
	Frequency    float64       `default:"220" help:"Fundamental frequency in Hz."`
	Harmonics    int           `default:"8" help:"Number of harmonics, each at 1/h amplitude."`
	VibratoRate  float64       `name:"vibrato-rate" default:"5" help:"Vibrato rate in Hz."`
	VibratoDepth float64       `name:"vibrato-depth" default:"8" help:"Vibrato depth in Hz (0 disables vibrato)."`
	Duration     time.Duration `default:"5s" help:"Length of the tone."`
	SampleRate   uint32        `name:"sample-rate" help:"Sample rate in Hz (default: configured sample rate)."`
	Peak         float64       `default:"0.9" help:"Peak amplitude of the tone, 0 < peak <= 1."`
	NoiseLevel   float64       `name:"noise-level" help:"Amplitude of white noise under the whole file."`
	LeadIn       time.Duration `name:"lead-in" help:"Noise-only lead-in before the tone."`
	Seed         int64         `default:"1" help:"Noise seed."`
}

// Run implements the generate command.
func (gc *GenerateCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if gc.Frequency <= 0 {
		return errorf("frequency must be > 0: %v", gc.Frequency)
	}
	if gc.Peak <= 0 || gc.Peak > 1 {
		return errorf("peak must be in (0, 1]: %v", gc.Peak)
	}
	if gc.NoiseLevel < 0 || gc.LeadIn < 0 {
		return errorf("noise level and lead-in must not be negative")
	}
	rate := gc.SampleRate
	if rate == 0 {
		rate = cfg.SampleRate
	}

	gen, err := sig.NewGenerator(rate, sig.WithSeed(gc.Seed))
	if err != nil {
		return err
	}
	tone, err := gen.VoiceLikeVibrato(gc.Frequency, gc.VibratoRate, gc.VibratoDepth, gc.Harmonics, samplesFor(gc.Duration, rate))
	if err != nil {
		return err
	}
	if tone.Samples, err = sig.Normalize(tone.Samples, gc.Peak); err != nil {
		return err
	}

	out := tone
	if lead := samplesFor(gc.LeadIn, rate); lead > 0 || gc.NoiseLevel > 0 {
		if out, err = sig.Concat(gen.Silence(lead), tone); err != nil {
			return err
		}
		floor, err := gen.WhiteNoise(gc.NoiseLevel, out.Len())
		if err != nil {
			return err
		}
		out = sig.Mix(out, floor)
	}

	if err := audioio.SaveWAV(gc.Out, out); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":      gc.Out,
		"frequency": gc.Frequency,
		"samples":   out.Len(),
	}).Debug("tone written")
	cli.PrintGenerated(g.Out, gc.Out, out, gc.Frequency)
	return nil
}

func samplesFor(d time.Duration, rate uint32) int {
	return int(d.Seconds() * float64(rate))
}
