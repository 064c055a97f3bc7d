// brushtool is a CLI for creating and editing heightfield files with the brush engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/heightbrush/internal/config"
	"github.com/Faultbox/heightbrush/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "new":
		err = cmdNew(args)
	case "info":
		err = cmdInfo(args)
	case "apply":
		err = cmdApply(args)
	case "stroke":
		err = cmdStroke(args)
	case "sample":
		err = cmdSample(args)
	case "render":
		err = cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`brushtool - heightfield brush utility

Usage:
  brushtool <command> [options]

Commands:
  new [options] <out.hfd>                        Create a flat terrain from config
  info <file.hfd>                                Show terrain information
  apply [options] <file.hfd> <script.yaml>       Replay a stroke script
  stroke [options] -x X -z Z <file.hfd>          Apply the configured brush at a point
  sample [options] -x X -z Z <file.hfd>          Print the height under a point
  render [options] <file.hfd> <out.png>          Render a heat map preview

Common options:
  -config <path>  -debug  -log-file <path>
  -action <name>  -strength <v>  -brush-width <n>  -brush-height <n>

Examples:
  brushtool new -save-config heightbrush.yaml island.hfd
  brushtool stroke -action raise -strength 40 -x 500 -z 500 -ticks 60 island.hfd
  brushtool apply island.hfd strokes.yaml
  brushtool render island.hfd island.png`)
}

// setup parses args with the config flags bound and initializes logging.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.Stringer("action", cfg.Brush.Action),
		zap.Int("width", cfg.Brush.Width),
		zap.Int("height", cfg.Brush.Height),
		zap.Float64("strength", cfg.Brush.Strength))
	return cfg, nil
}
