// Package terrain provides heightfield storage and the contract the brush engine
// uses to read and write it.
package terrain

import (
	"github.com/Faultbox/heightbrush/pkg/math"
)

// Terrain is the host-owned heightfield the brush engine borrows on every call.
// Heights are indexed [row][col]; row follows world Z and col follows world X.
type Terrain interface {
	// GetHeights returns a copy of the rectangle starting at (x, y) with the
	// given width (columns) and height (rows).
	GetHeights(x, y, width, height int) [][]float64

	// SetHeights commits a rectangle of heights with its top-left corner at (x, y).
	SetHeights(x, y int, heights [][]float64)

	// Resolution returns the number of samples along X (cols) and Z (rows).
	Resolution() (cols, rows int)

	// WorldSize returns the terrain extent in world units.
	WorldSize() math.Vec3

	// WorldOrigin returns the world position of sample (0, 0).
	WorldOrigin() math.Vec3
}
