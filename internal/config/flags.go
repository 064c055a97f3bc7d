package config

import (
	"flag"
	"strconv"

	"github.com/Faultbox/heightbrush/internal/brush"
)

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config      string
	Debug       bool
	Action      string
	Strength    *float64
	BrushWidth  int
	BrushHeight int
	LogFile     string
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Action, "action", "", "Brush action (raise, lower, flatten, sample, sample_average, smooth)")
	fs.Func("strength", "Brush strength in height units per second", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		f.Strength = &v
		return nil
	})
	fs.IntVar(&f.BrushWidth, "brush-width", 0, "Brush width in samples")
	fs.IntVar(&f.BrushHeight, "brush-height", 0, "Brush height in samples")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file as well")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Action != "" {
		a, err := brush.ParseAction(f.Action)
		if err != nil {
			return err
		}
		cfg.Brush.Action = a
	}
	if f.Strength != nil {
		cfg.Brush.Strength = *f.Strength
	}
	if f.BrushWidth > 0 {
		cfg.Brush.Width = f.BrushWidth
	}
	if f.BrushHeight > 0 {
		cfg.Brush.Height = f.BrushHeight
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	return nil
}
