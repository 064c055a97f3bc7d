package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/logger"
	"github.com/Faultbox/heightbrush/internal/preview"
	"github.com/Faultbox/heightbrush/internal/script"
	"github.com/Faultbox/heightbrush/internal/session"
	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

func cmdNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	resolution := fs.Int("resolution", 0, "Samples per side (overrides config)")
	saveConfig := fs.String("save-config", "", "Write the effective config to this path")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: brushtool new [options] <out.hfd>")
	}

	tc := cfg.Terrain
	if *resolution > 0 {
		tc.Resolution = *resolution
	}

	g := terrain.NewSquareGrid(tc.Resolution, tc.Origin, tc.WorldSize)
	g.Fill(tc.BaseHeight)

	if err := terrain.SaveFile(fs.Arg(0), g); err != nil {
		return err
	}
	logger.Info("terrain created",
		zap.String("path", fs.Arg(0)),
		zap.Int("resolution", tc.Resolution))

	if *saveConfig != "" {
		cfg.Terrain = tc
		if err := cfg.SaveTo(*saveConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Debug("config saved", zap.String("path", *saveConfig))
	}
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: brushtool info <file.hfd>")
	}

	g, err := terrain.LoadFile(args[0])
	if err != nil {
		return err
	}
	lo, hi := g.AltitudeRange()

	fmt.Printf("Terrain:    %s\n", args[0])
	fmt.Printf("Samples:    %d x %d\n", g.Cols, g.Rows)
	fmt.Printf("Origin:     %.2f, %.2f, %.2f\n", g.Origin.X, g.Origin.Y, g.Origin.Z)
	fmt.Printf("World size: %.2f x %.2f x %.2f\n", g.Size.X, g.Size.Y, g.Size.Z)
	fmt.Printf("Cell size:  %.4f x %.4f\n", g.Size.X/float64(g.Cols), g.Size.Z/float64(g.Rows))
	fmt.Printf("Heights:    %.4f .. %.4f\n", lo, hi)
	return nil
}

func cmdApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	out := fs.String("o", "", "Write the result here instead of overwriting the input")
	png := fs.String("png", "", "Also render a preview image")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: brushtool apply [options] <file.hfd> <script.yaml>")
	}

	g, err := terrain.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	sc, err := script.ParseFile(fs.Arg(1))
	if err != nil {
		return err
	}

	sess, err := session.New(g, cfg.Brush)
	if err != nil {
		return err
	}
	sum, err := sc.Run(sess)
	if err != nil {
		return err
	}

	logger.Info("script applied",
		zap.Int("ticks", sum.Ticks),
		zap.Int("edits", sum.Edits),
		zap.Int("misses", sum.Misses),
		zap.Int("failed", sum.Failed))
	for i, h := range sum.Samples {
		fmt.Printf("sample %d: %.6f\n", i+1, h)
	}

	dst := fs.Arg(0)
	if *out != "" {
		dst = *out
	}
	if err := terrain.SaveFile(dst, g); err != nil {
		return err
	}

	if *png != "" {
		return render(*png, g, cfg.Preview.SizeCM, regionIf(cfg.Preview.ShowRegion && sum.Edits > 0, sum.LastRegion))
	}
	return nil
}

func cmdStroke(args []string) error {
	fs := flag.NewFlagSet("stroke", flag.ExitOnError)
	x := fs.Float64("x", 0, "World X of the pointer")
	z := fs.Float64("z", 0, "World Z of the pointer")
	ticks := fs.Int("ticks", 1, "Number of ticks to hold the pointer")
	dt := fs.Float64("dt", script.DefaultElapsed, "Seconds per tick")
	target := fs.String("target", "", "Flatten target height (default: average under the brush)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: brushtool stroke [options] -x X -z Z <file.hfd>")
	}

	g, err := terrain.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	sess, err := session.New(g, cfg.Brush)
	if err != nil {
		return err
	}

	point := math.Vec3{X: *x, Z: *z}
	if cfg.Brush.Action == brush.ActionFlatten {
		if err := flattenTarget(sess, *target, point); err != nil {
			return err
		}
	}

	var last brush.Result
	for range max(*ticks, 1) {
		last, err = sess.Tick(session.Input{Active: true, Hit: true, Point: point, Elapsed: *dt})
		if err != nil {
			return err
		}
	}
	if _, err := sess.Tick(session.Input{}); err != nil {
		return err
	}

	if last.Sampled {
		fmt.Printf("%.6f\n", last.Height)
		return nil
	}
	return terrain.SaveFile(fs.Arg(0), g)
}

// flattenTarget stores the flatten height: an explicit value, or the average
// under the brush at point.
func flattenTarget(sess *session.Session, target string, point math.Vec3) error {
	if target != "" {
		h, err := strconv.ParseFloat(target, 64)
		if err != nil {
			return fmt.Errorf("invalid -target %q: %w", target, err)
		}
		sess.SetStoredSample(h)
		return nil
	}

	cfg := sess.Config()
	cfg.Action = brush.ActionSampleAverage
	res, err := brush.Apply(sess.Terrain(), cfg, point, 0, 0)
	if err != nil {
		return err
	}
	sess.SetStoredSample(res.Height)
	return nil
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	x := fs.Float64("x", 0, "World X of the pointer")
	z := fs.Float64("z", 0, "World Z of the pointer")
	average := fs.Bool("average", false, "Average over the brush instead of interpolating")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: brushtool sample [options] -x X -z Z <file.hfd>")
	}

	g, err := terrain.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	bc := cfg.Brush
	bc.Action = brush.ActionSample
	if *average {
		bc.Action = brush.ActionSampleAverage
	}
	res, err := brush.Apply(g, bc, math.Vec3{X: *x, Z: *z}, 0, 0)
	if err != nil {
		return err
	}
	fmt.Printf("%.6f\n", res.Height)
	return nil
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: brushtool render [options] <file.hfd> <out.png>")
	}

	g, err := terrain.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	return render(fs.Arg(1), g, cfg.Preview.SizeCM, nil)
}

func render(path string, g *terrain.Grid, sizeCM float64, region *brush.Region) error {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := preview.RenderFile(path, g, preview.Options{Title: title, SizeCM: sizeCM, Region: region}); err != nil {
		return err
	}
	logger.Info("preview written", zap.String("path", path))
	return nil
}

func regionIf(ok bool, r brush.Region) *brush.Region {
	if !ok {
		return nil
	}
	return &r
}
