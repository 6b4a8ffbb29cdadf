package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/pitchgate/dsp/filter"
	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/dsp/noise"
	sig "github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/internal/audioio"
	"github.com/cwbudde/pitchgate/internal/capture"
	"github.com/cwbudde/pitchgate/internal/cli"
	"github.com/cwbudde/pitchgate/internal/config"
	"github.com/cwbudde/pitchgate/pipeline"
	"github.com/cwbudde/pitchgate/pitch"
)

// TrackCmd tracks the pitch of a file.
type TrackCmd struct {
	File     string `arg:"" type:"existingfile" help:"Mono WAV file."`
	Noise    string `type:"existingfile" help:"WAV file containing only background noise."`
	Cleaning string `help:"Cleaning mode: none, gate, bandpass or auto."`
}

// Run implements the track command.
func (t *TrackCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if t.Cleaning != "" {
		cfg.Cleaning = t.Cleaning
	}
	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	w, err := audioio.LoadWAV(t.File)
	if err != nil {
		return err
	}
	if err := installProfile(p, w, t.Noise, log); err != nil {
		return err
	}

	f, err := os.Open(t.File)
	if err != nil {
		return errorf("open %s: %w", t.File, err)
	}
	defer f.Close()
	src, err := audioio.NewFileSource(f, cfg.ChunkSize)
	if err != nil {
		return err
	}

	var results []pipeline.Result
	summary, err := p.Run(context.Background(), src, func(r pipeline.Result) {
		results = append(results, r)
	})
	if err != nil {
		return err
	}
	cli.PrintTrack(g.Out, results)
	cli.PrintSummary(g.Out, summary)
	return nil
}

// CleanCmd gates a file and writes the result.
type CleanCmd struct {
	In    string `arg:"" type:"existingfile" help:"Mono WAV input."`
	Out   string `arg:"" type:"path" help:"16-bit WAV output."`
	Noise string `type:"existingfile" help:"WAV file containing only background noise."`
	Block int    `help:"Gate block size in samples (default: window size)."`
}

// Run implements the clean command.
func (c *CleanCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	pcfg, err := cfg.Pipeline()
	if err != nil {
		return err
	}
	block := c.Block
	if block <= 0 {
		block = pcfg.Frame.WindowSize
	}

	w, err := audioio.LoadWAV(c.In)
	if err != nil {
		return err
	}
	profile, err := loadProfile(w, c.Noise, block)
	if err != nil {
		return err
	}

	var clean func(sig.Waveform) sig.Waveform
	switch {
	case profile != nil:
		gt, err := gate.New(profile, pcfg.Gate)
		if err != nil {
			return err
		}
		clean = func(in sig.Waveform) sig.Waveform {
			return sig.Waveform{Samples: gt.ProcessBlocks(in.Samples, block), SampleRate: in.SampleRate}
		}
		log.WithField("block", block).Info("gating with noise profile")
	case pcfg.Cleaning == pipeline.CleaningBandpass || pcfg.Cleaning == pipeline.CleaningAuto:
		out, err := filter.VocalBandpass(w.Samples, w.SampleRate, pcfg.VocalLowHz, pcfg.VocalHighHz)
		if err != nil {
			return err
		}
		clean = func(in sig.Waveform) sig.Waveform {
			return sig.Waveform{Samples: out, SampleRate: in.SampleRate}
		}
		log.Warn("no quiet segment found, using vocal bandpass")
	default:
		return errorf("no quiet segment found in %s; pass --noise", c.In)
	}

	cmp := gate.Compare(w, clean)
	if err := audioio.SaveWAV(c.Out, cmp.After); err != nil {
		return err
	}
	cli.PrintComparison(g.Out, cmp)
	return nil
}

// ProfileCmd reports the quiet segment of a file.
type ProfileCmd struct {
	File       string  `arg:"" type:"existingfile" help:"Mono WAV file."`
	ZThreshold float64 `name:"z-threshold" default:"-1" help:"Z-score a candidate must fall below."`
}

// Run implements the profile command.
func (pc *ProfileCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	w, err := audioio.LoadWAV(pc.File)
	if err != nil {
		return err
	}
	opt := noise.WithZScoreThreshold(pc.ZThreshold)
	rep := noise.AnalyzeQuietSegment(w, opt)
	if !rep.Found {
		cli.PrintQuietReport(g.Out, rep, w.SampleRate, nil)
		return nil
	}
	profile, err := noise.NewProfile(w.Slice(rep.Start, rep.End))
	if err != nil {
		return err
	}
	desc := profile.Describe()
	cli.PrintQuietReport(g.Out, rep, w.SampleRate, &desc)
	return nil
}

// LiveCmd tracks the pitch of an input device.
type LiveCmd struct {
	Device   string        `help:"Device number or name prefix (default input when empty)."`
	Duration time.Duration `help:"Stop after this long (0 runs until interrupted)."`
	Noise    string        `type:"existingfile" help:"WAV file containing only background noise."`
}

// Run implements the live command.
func (l *LiveCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if l.Device != "" {
		cfg.Device = l.Device
	}
	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}
	if l.Noise != "" {
		profile, err := loadProfile(sig.Waveform{}, l.Noise, p.Config().Frame.WindowSize)
		if err != nil {
			return err
		}
		if err := p.SetNoiseProfile(profile); err != nil {
			return err
		}
	}

	dev, err := capture.OpenDevice(cfg.Device, cfg.SampleRate, cfg.ChunkSize)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.WithFields(logrus.Fields{
		"device":      dev.Name,
		"sample_rate": cfg.SampleRate,
		"chunk":       cfg.ChunkSize,
	}).Info("capturing")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if l.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Duration)
		defer cancel()
	}

	summary, err := p.Run(ctx, dev, func(r pipeline.Result) {
		cli.PrintResult(g.Out, r)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	cli.PrintSummary(g.Out, summary)
	return nil
}

func newPipeline(cfg *config.Config, log *logrus.Entry) (*pipeline.Pipeline, error) {
	pcfg, err := cfg.Pipeline()
	if err != nil {
		return nil, err
	}
	yin, err := pitch.NewYIN(pcfg.Frame.WindowSize)
	if err != nil {
		return nil, err
	}
	return pipeline.New(yin, pcfg, pipeline.WithLogger(log))
}

// installProfile sets the pipeline's noise profile from a noise file, or
// from the quiet segment of w when the cleaning mode can use one.
func installProfile(p *pipeline.Pipeline, w sig.Waveform, noisePath string, log *logrus.Entry) error {
	mode := p.Config().Cleaning
	if noisePath == "" && mode != pipeline.CleaningGate && mode != pipeline.CleaningAuto {
		return nil
	}
	profile, err := loadProfile(w, noisePath, p.Config().Frame.WindowSize)
	if err != nil {
		return err
	}
	if profile == nil {
		log.Info("no quiet segment found, gate disabled")
		return nil
	}
	return p.SetNoiseProfile(profile)
}

// loadProfile builds a profile of at most size samples from the noise file,
// or from the quiet segment of w when noisePath is empty. It returns nil
// without error when w has no quiet segment.
func loadProfile(w sig.Waveform, noisePath string, size int) (*noise.Profile, error) {
	if noisePath == "" {
		profile, _ := pipeline.EstimateNoiseProfile(w, size)
		return profile, nil
	}
	nw, err := audioio.LoadWAV(noisePath)
	if err != nil {
		return nil, err
	}
	if nw.Len() > size {
		nw = nw.Slice(0, size)
	}
	return noise.NewProfile(nw)
}
