package picking

import (
	"fmt"
	gomath "math"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/heightbrush/pkg/math"
)

// OrbitCamera orbits around a center point. Hosts that only know the pointer's
// screen position use it to build pick rays.
type OrbitCamera struct {
	Center   math.Vec3 `yaml:"center"`
	Distance float64   `yaml:"distance"` // distance from center
	Pitch    float64   `yaml:"pitch"`    // vertical angle, radians
	Yaw      float64   `yaml:"yaw"`      // horizontal angle, radians

	FovY float64 `yaml:"fov_y"` // radians
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`

	Width  float64 `yaml:"width"` // viewport, pixels
	Height float64 `yaml:"height"`
}

// NewOrbitCamera creates an orbit camera looking down at center.
func NewOrbitCamera(center math.Vec3, distance float64) *OrbitCamera {
	return &OrbitCamera{
		Center:   center,
		Distance: distance,
		Pitch:    0.5,
		FovY:     gomath.Pi / 4,
		Near:     1,
		Far:      10000,
		Width:    1280,
		Height:   720,
	}
}

// UnmarshalYAML fills fields missing from the document with the
// NewOrbitCamera defaults.
func (c *OrbitCamera) UnmarshalYAML(value *yaml.Node) error {
	type plain OrbitCamera
	p := plain(*NewOrbitCamera(math.Vec3{}, 100))
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = OrbitCamera(p)
	return nil
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(c.Pitch)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * gomath.Sin(c.Yaw),
		Y: c.Distance * gomath.Sin(c.Pitch),
		Z: c.Distance * cp * gomath.Cos(c.Yaw),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Width/c.Height, c.Near, c.Far)
}

// Validate reports settings that cannot produce a projection.
func (c *OrbitCamera) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("camera viewport %vx%v must be positive", c.Width, c.Height)
	case c.FovY <= 0 || c.FovY >= gomath.Pi:
		return fmt.Errorf("camera fov %v out of range", c.FovY)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("camera clip planes %v..%v invalid", c.Near, c.Far)
	case c.Distance <= 0:
		return fmt.Errorf("camera distance %v must be positive", c.Distance)
	}
	return nil
}

// Ray returns the pick ray through pixel (x, y) of the viewport.
func (c *OrbitCamera) Ray(x, y float64) (Ray, error) {
	if err := c.Validate(); err != nil {
		return Ray{}, err
	}
	inv, err := c.ProjectionMatrix().Mul(c.ViewMatrix()).Inverse()
	if err != nil {
		return Ray{}, fmt.Errorf("inverting view-projection: %w", err)
	}
	return ScreenToRay(x, y, c.Width, c.Height, inv), nil
}

// ScreenToRay converts screen coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return NewRay(near, far.Sub(near))
}
