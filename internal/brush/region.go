package brush

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/heightbrush/pkg/math"
)

// Region is an axis-aligned rectangle of grid samples.
// A region produced by ClampRegion always lies inside the grid.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the region covers no samples.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of samples in the region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// String returns the region as "x,y wxh".
func (r Region) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// ClampRegion centres a width × height brush on pos and clips it to a square
// grid of the given resolution.
//
// The top-left corner is pos - size/2 clamped to [0, resolution] and truncated;
// the size is then cut to what remains before the far edge. A corner clamped
// to resolution yields a zero-area region.
func ClampRegion(pos math.Vec2, width, height, resolution int) Region {
	x, w := clampAxis(pos.X, width, resolution)
	y, h := clampAxis(pos.Y, height, resolution)
	return Region{X: x, Y: y, Width: w, Height: h}
}

func clampAxis(center float64, size, limit int) (origin, clamped int) {
	start := center - float64(size)*0.5
	if gomath.IsNaN(start) {
		start = 0
	}
	start = gomath.Min(gomath.Max(start, 0), float64(limit))
	origin = int(start)
	clamped = max(min(size, limit-origin), 0)
	return origin, clamped
}
