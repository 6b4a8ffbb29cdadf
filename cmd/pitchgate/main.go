// Command pitchgate tracks the pitch of a voice through a spectral noise
// gate.
//
// Usage:
//
//	pitchgate track [flags] FILE
//	pitchgate clean [flags] IN OUT
//	pitchgate profile [flags] FILE
//	pitchgate live [flags]
//	pitchgate generate [flags] OUT
//	pitchgate version
//
// Settings come from an optional YAML file (--config), a .env file in the
// working directory and PITCHGATE_* environment variables.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/pitchgate/internal/cli"
	"github.com/cwbudde/pitchgate/internal/config"
)

var version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" help:"Path to a YAML config file."`
	LogLevel string `name:"log-level" help:"Log level (panic, fatal, error, warn, info, debug, trace)."`

	Out io.Writer `kong:"-"`
	Err io.Writer `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Track    TrackCmd    `cmd:"" help:"Track the pitch of a WAV file."`
	Clean    CleanCmd    `cmd:"" help:"Gate the noise out of a WAV file."`
	Profile  ProfileCmd  `cmd:"" help:"Locate the quiet segment of a WAV file and describe its noise."`
	Live     LiveCmd     `cmd:"" help:"Track the pitch of an input device."`
	Generate GenerateCmd `cmd:"" help:"Write a voice-like test tone to a WAV file."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// setup loads the configuration and builds the logger.
func (g *Globals) setup() (*config.Config, *logrus.Entry, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetOutput(g.Err)
	logger.SetLevel(level)
	return cfg, logrus.NewEntry(logger).WithField("component", "cli"), nil
}

func newParser(c *CLI, options ...kong.Option) (*kong.Kong, error) {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}
	options = append([]kong.Option{
		kong.Name("pitchgate"),
		kong.Description("Noise-gated pitch tracking for voice recordings"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	}, options...)
	return kong.New(c, options...)
}

func main() {
	var c CLI
	parser, err := newParser(&c)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&c.Globals); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run implements the version command.
func (v *VersionCmd) Run(g *Globals) error {
	cli.PrintVersion(g.Out, version)
	return nil
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("pitchgate: "+format, args...)
}
