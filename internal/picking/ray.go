// Package picking turns pointer rays into terrain hits for the brush host.
package picking

import (
	gomath "math"

	"github.com/Faultbox/heightbrush/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: gomath.Min(a.X, b.X), Y: gomath.Min(a.Y, b.Y), Z: gomath.Min(a.Z, b.Z)},
		Max: math.Vec3{X: gomath.Max(a.X, b.X), Y: gomath.Max(a.Y, b.Y), Z: gomath.Max(a.Z, b.Z)},
	}
}

// IntersectAABB returns the distances at which the ray enters and leaves box.
// A ray starting inside the box enters at 0.
func (r Ray) IntersectAABB(box AABB) (enter, exit float64, hit bool) {
	enter = -gomath.MaxFloat64
	exit = gomath.MaxFloat64

	axes := [3][4]float64{
		{r.Origin.X, r.Direction.X, box.Min.X, box.Max.X},
		{r.Origin.Y, r.Direction.Y, box.Min.Y, box.Max.Y},
		{r.Origin.Z, r.Direction.Z, box.Min.Z, box.Max.Z},
	}
	for _, a := range axes {
		origin, dir, lo, hi := a[0], a[1], a[2], a[3]
		if dir == 0 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = gomath.Max(enter, t1)
		exit = gomath.Min(exit, t2)
	}

	if exit < enter || exit < 0 {
		return 0, 0, false
	}
	return gomath.Max(enter, 0), exit, true
}
