package picking

import (
	gomath "math"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

const (
	// bisectSteps refines a bracketed surface crossing.
	bisectSteps = 20
	// maxMarchSteps bounds the march through very tall bounds.
	maxMarchSteps = 1 << 20
)

type altitudeRanger interface {
	AltitudeRange() (min, max float64)
}

// Bounds returns the world-space box enclosing the terrain surface.
// Surface height at a sample is WorldOrigin().Y + height.
func Bounds(t terrain.Terrain) AABB {
	origin := t.WorldOrigin()
	size := t.WorldSize()

	lo, hi := 0.0, size.Y
	if r, ok := t.(altitudeRanger); ok {
		minH, maxH := r.AltitudeRange()
		lo = gomath.Min(lo, minH)
		hi = gomath.Max(hi, maxH)
	}

	return NewAABB(
		math.Vec3{X: origin.X, Y: origin.Y + lo, Z: origin.Z},
		math.Vec3{X: origin.X + size.X, Y: origin.Y + hi, Z: origin.Z + size.Z},
	)
}

// IntersectTerrain returns the first point where the ray meets the terrain
// surface. The ray is marched in half-sample steps through the terrain bounds
// and the crossing is refined by bisection.
func (r Ray) IntersectTerrain(t terrain.Terrain) (math.Vec3, bool) {
	if r.Direction == (math.Vec3{}) {
		return math.Vec3{}, false
	}
	enter, exit, ok := r.IntersectAABB(Bounds(t))
	if !ok {
		return math.Vec3{}, false
	}

	space := brush.SpaceOf(t)
	if space.Cols == 0 || space.Rows == 0 {
		return math.Vec3{}, false
	}
	step := 0.5 * gomath.Min(space.Size.X/float64(space.Cols), space.Size.Z/float64(space.Rows))
	if step <= 0 || gomath.IsNaN(step) || gomath.IsInf(step, 0) {
		return math.Vec3{}, false
	}

	// March from the entry point so distances stay small even when the
	// origin is far from the terrain.
	local := Ray{Origin: r.At(enter), Direction: r.Direction}
	span := exit - enter
	steps := int(gomath.Min(gomath.Ceil(span/step), maxMarchSteps))

	// above reports how far the ray is over the surface at distance d.
	above := func(d float64) float64 {
		p := local.At(d)
		return p.Y - (space.Origin.Y + brush.Sample(t, space, p))
	}

	if above(0) <= 0 {
		return local.surfacePoint(t, space, 0), true
	}
	prev := 0.0
	for i := 1; i <= steps; i++ {
		d := gomath.Min(float64(i)*step, span)
		if above(d) <= 0 {
			lo, hi := prev, d
			for range bisectSteps {
				mid := (lo + hi) / 2
				if above(mid) > 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			return local.surfacePoint(t, space, hi), true
		}
		prev = d
	}
	return math.Vec3{}, false
}

func (r Ray) surfacePoint(t terrain.Terrain, space brush.Space, d float64) math.Vec3 {
	p := r.At(d)
	p.Y = space.Origin.Y + brush.Sample(t, space, p)
	return p
}
