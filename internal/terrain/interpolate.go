package terrain

import (
	gomath "math"
)

// InterpolatedHeight returns the bilinearly interpolated height at a real-valued
// grid position. Positions outside the grid are clamped to its edge.
func InterpolatedHeight(t Terrain, gx, gy float64) float64 {
	cols, rows := t.Resolution()
	if cols == 0 || rows == 0 {
		return 0
	}

	gx = clampf(gx, 0, float64(cols-1))
	gy = clampf(gy, 0, float64(rows-1))

	x0, w := cellOrigin(gx, cols)
	y0, h := cellOrigin(gy, rows)

	// Fractional position within the cell (0-1)
	fracX := clampf(gx-float64(x0), 0, 1)
	fracY := clampf(gy-float64(y0), 0, 1)

	cell := t.GetHeights(x0, y0, w, h)
	at := func(col, row int) float64 {
		return cell[min(row, h-1)][min(col, w-1)]
	}

	// Lerp along X on both rows, then along Y
	top := at(0, 0)*(1-fracX) + at(1, 0)*fracX
	bottom := at(0, 1)*(1-fracX) + at(1, 1)*fracX
	return top*(1-fracY) + bottom*fracY
}

// cellOrigin returns the lower sample index of the cell containing v and the
// number of samples (1 or 2) the cell spans.
func cellOrigin(v float64, n int) (int, int) {
	if n == 1 {
		return 0, 1
	}
	i := int(gomath.Floor(v))
	if i >= n-1 {
		i = n - 2
	}
	return i, 2
}

func clampf(v, lo, hi float64) float64 {
	if v < lo || gomath.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
