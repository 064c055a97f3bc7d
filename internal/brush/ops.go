package brush

import (
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// Raise adds amount to every sample in r.
func Raise(t terrain.Terrain, r Region, amount float64) {
	offset(t, r, amount)
}

// Lower subtracts amount from every sample in r.
func Lower(t terrain.Terrain, r Region, amount float64) {
	offset(t, r, -amount)
}

func offset(t terrain.Terrain, r Region, delta float64) {
	if r.Empty() {
		return
	}
	heights := t.GetHeights(r.X, r.Y, r.Width, r.Height)
	for _, row := range heights {
		floats.AddConst(delta, row)
	}
	t.SetHeights(r.X, r.Y, heights)
}

// Flatten sets every sample in r to target.
func Flatten(t terrain.Terrain, r Region, target float64) {
	if r.Empty() {
		return
	}
	heights := t.GetHeights(r.X, r.Y, r.Width, r.Height)
	for _, row := range heights {
		for x := range row {
			row[x] = target
		}
	}
	t.SetHeights(r.X, r.Y, heights)
}

// Sample returns the interpolated height under a world point.
func Sample(t terrain.Terrain, s Space, point math.Vec3) float64 {
	pos := s.WorldToGrid(point)
	return terrain.InterpolatedHeight(t, pos.X, pos.Y)
}

// SampleAverage returns the mean height of the samples in r.
func SampleAverage(t terrain.Terrain, r Region) (float64, error) {
	if r.Empty() {
		return 0, ErrEmptyRegion
	}
	heights := t.GetHeights(r.X, r.Y, r.Width, r.Height)
	var sum float64
	for _, row := range heights {
		sum += floats.Sum(row)
	}
	return sum / float64(r.Area()), nil
}

// Smooth replaces every sample in r with the mean of itself and its
// 4-connected neighbours inside r.
func Smooth(t terrain.Terrain, r Region) {
	if r.Empty() {
		return
	}
	heights := t.GetHeights(r.X, r.Y, r.Width, r.Height)
	t.SetHeights(r.X, r.Y, SmoothHeights(heights))
}

// SmoothHeights returns a single box-filter pass over heights. Neighbours
// outside the slice are skipped, so corners average 3 values, edges 4 and
// interior samples 5. The input is left untouched.
func SmoothHeights(heights [][]float64) [][]float64 {
	rows := len(heights)
	smoothed := make([][]float64, rows)
	for y := range rows {
		cols := len(heights[y])
		smoothed[y] = make([]float64, cols)
		for x := range cols {
			sum := heights[y][x]
			count := 1

			if x > 0 {
				sum += heights[y][x-1]
				count++
			}
			if x < cols-1 {
				sum += heights[y][x+1]
				count++
			}
			if y > 0 {
				sum += heights[y-1][x]
				count++
			}
			if y < rows-1 {
				sum += heights[y+1][x]
				count++
			}

			smoothed[y][x] = sum / float64(count)
		}
	}
	return smoothed
}
