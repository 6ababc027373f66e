// Command lenscomplex calibrates nested tetrahedral lens complexes so that their inner
// vertices, seen from outside, appear at designated virtual positions.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"github.com/lukaszgryglicki/lenscomplex/internal/lenscomplex"
)

// Config is the configuration for the lenscomplex cli.
type Config struct {

	// Inputs are complex description files (.json, .yaml/.yml or .toml).
	// When none are given the Preset is calibrated.
	Inputs []string `posarg:"leftover" required:"-"`

	// Preset is the built-in complex used without inputs.
	Preset string `default:"omnidirectional"`

	// Element overrides the imaging element kind of every complex
	// (ideal-thin-lens or planar-homogeneous).
	Element string `flag:"e,element"`

	// Format is the report format: json, yaml or toml.
	Format string `default:"yaml"`

	// Report is the report output file; "-" writes to standard output.
	Report string `default:"-"`

	// Preview is an optional preview image path (.gif, .png or .webp).
	Preview string

	// Size is the preview width and height in pixels.
	Size int `default:"384"`

	// Frames is the number of GIF frames per full turn.
	Frames int `default:"36"`

	// Tolerance is the relative tolerance of the consistency check.
	Tolerance float64 `default:"1e-9"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `default:"info"`

	// Debug prints event statistics after the run.
	Debug bool
}

func main() {
	opts := cli.DefaultOptions("lenscomplex", "Calibrates nested tetrahedral lens complexes.")
	opts.DefaultFiles = []string{"lenscomplex.toml"}
	cli.Run(opts, &Config{}, Calibrate)
}

// Calibrate loads, calibrates and verifies the requested complexes, then writes
// reports and previews.
func Calibrate(c *Config) error { //cli:cmd -root
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	lenscomplex.Debug = c.Debug || os.Getenv("DEBUG") != ""

	var report io.Writer = os.Stdout
	if c.Report != "" && c.Report != "-" {
		f, err := os.Create(c.Report)
		if err != nil {
			return err
		}
		defer func() { errors.Log(f.Close()) }()
		report = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return errors.Log(lenscomplex.Run(ctx, lenscomplex.RunCfg{
		Inputs:    c.Inputs,
		Preset:    c.Preset,
		Element:   c.Element,
		Tolerance: c.Tolerance,
		Format:    c.Format,
		Report:    report,
		Preview:   c.Preview,
		Opts:      lenscomplex.PreviewOpts{Size: c.Size, Frames: c.Frames},
		Observer:  lenscomplex.SlogObserver{Logger: logger},
		Stats:     os.Stderr,
	}))
}
