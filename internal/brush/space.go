package brush

import (
	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// Space maps world coordinates onto the sample grid of a terrain.
// One sample spans Size.X/Cols world units along X and Size.Z/Rows along Z.
type Space struct {
	Origin math.Vec3
	Size   math.Vec3
	Cols   int
	Rows   int
}

// NewSpace returns the space of a square terrain.
func NewSpace(origin, size math.Vec3, resolution int) Space {
	return Space{Origin: origin, Size: size, Cols: resolution, Rows: resolution}
}

// SpaceOf reads the geometry of t.
func SpaceOf(t terrain.Terrain) Space {
	cols, rows := t.Resolution()
	return Space{
		Origin: t.WorldOrigin(),
		Size:   t.WorldSize(),
		Cols:   cols,
		Rows:   rows,
	}
}

// WorldToGrid converts a world point to a real-valued grid position
// (X = column, Y = row). The height axis is ignored and the result is not
// clamped, so points off the terrain map outside [0, resolution).
func (s Space) WorldToGrid(p math.Vec3) math.Vec2 {
	local := p.Sub(s.Origin)
	return math.Vec2{
		X: local.X / s.Size.X * float64(s.Cols),
		Y: local.Z / s.Size.Z * float64(s.Rows),
	}
}

// Region returns the clamped brush rectangle centred on a grid position.
func (s Space) Region(pos math.Vec2, width, height int) Region {
	x, w := clampAxis(pos.X, width, s.Cols)
	y, h := clampAxis(pos.Y, height, s.Rows)
	return Region{X: x, Y: y, Width: w, Height: h}
}

// WorldToGrid converts a world point to grid space for a square terrain.
func WorldToGrid(point, origin, size math.Vec3, resolution int) math.Vec2 {
	return NewSpace(origin, size, resolution).WorldToGrid(point)
}
