// Package preview renders heightfields to images for inspection.
package preview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/terrain"
)

const paletteSize = 255

// Options controls a render.
type Options struct {
	Title  string
	SizeCM float64       // edge length of the square image
	Region *brush.Region // outlined when non-nil and not empty
}

// gridXYZ adapts a terrain.Grid to plotter.GridXYZ. Columns map to X and rows to Y.
type gridXYZ struct {
	g *terrain.Grid
}

func (x gridXYZ) Dims() (c, r int)   { return x.g.Cols, x.g.Rows }
func (x gridXYZ) Z(c, r int) float64 { return x.g.At(c, r) }
func (x gridXYZ) X(c int) float64    { return float64(c) }
func (x gridXYZ) Y(r int) float64    { return float64(r) }

// Plot builds a heat map plot of g.
func Plot(g *terrain.Grid, opts Options) (*plot.Plot, error) {
	if g.Cols < 2 || g.Rows < 2 {
		return nil, fmt.Errorf("preview: %dx%d grid is too small to plot", g.Cols, g.Rows)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	heat := plotter.NewHeatMap(gridXYZ{g}, moreland.SmoothBlueRed().Palette(paletteSize))
	lo, hi := g.AltitudeRange()
	if lo == hi {
		// A flat grid would divide by zero when picking colours.
		hi = lo + 1
	}
	heat.Min, heat.Max = lo, hi
	p.Add(heat)

	if r := opts.Region; r != nil && !r.Empty() {
		x0, y0 := float64(r.X)-0.5, float64(r.Y)-0.5
		x1, y1 := x0+float64(r.Width), y0+float64(r.Height)
		outline, err := plotter.NewLine(plotter.XYs{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
		})
		if err != nil {
			return nil, fmt.Errorf("preview: region outline: %w", err)
		}
		outline.Color = color.Black
		outline.Width = vg.Points(1.5)
		p.Add(outline)
	}

	return p, nil
}

// Render writes g as an image of the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, g *terrain.Grid, format string, opts Options) error {
	p, err := Plot(g, opts)
	if err != nil {
		return err
	}
	size := opts.size()
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// RenderFile renders g to path, choosing the format from the file extension.
// Nothing is written when rendering fails.
func RenderFile(path string, g *terrain.Grid, opts Options) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return fmt.Errorf("preview: %s has no image extension", path)
	}

	var buf bytes.Buffer
	if err := Render(&buf, g, ext, opts); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// size is the image edge length, 15cm unless set.
func (o Options) size() vg.Length {
	if o.SizeCM <= 0 {
		return 15 * vg.Centimeter
	}
	return vg.Length(o.SizeCM) * vg.Centimeter
}
