// Package camera provides the cameras that drive per-frame culling.
package camera

import (
	gomath "math"

	"github.com/Faultbox/splatview/pkg/bounds"
	"github.com/Faultbox/splatview/pkg/math"
)

// Projection defaults.
const (
	DefaultFovY = 2 * gomath.Pi / 5
	DefaultNear = 0.1
	DefaultFar  = 10000.0
)

// fitMargin leaves some room around a fitted box.
const fitMargin = 1.05

// pitchLimit keeps the orbit away from the poles where LookAt degenerates.
const pitchLimit = gomath.Pi/2 - 0.1

// Projection describes an OpenGL perspective projection.
type Projection struct {
	FovY   float64 // vertical field of view, radians
	Aspect float64 // width / height
	Near   float64
	Far    float64
}

// DefaultProjection returns a projection with the default field of view and
// clip distances for the given aspect ratio.
func DefaultProjection(aspect float64) Projection {
	return Projection{FovY: DefaultFovY, Aspect: aspect, Near: DefaultNear, Far: DefaultFar}
}

// Matrix returns the projection matrix.
func (p Projection) Matrix() math.Mat4 {
	return math.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float64 // Distance from center
	Pitch    float64 // Vertical angle, radians
	Yaw      float64 // Horizontal angle, radians

	// Constraints
	MinDistance float64
	MaxDistance float64
}

// NewOrbitCamera creates an orbit camera 45 units out on the +X axis,
// looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    45,
		Yaw:         gomath.Pi / 2,
		MinDistance: 0.5,
		MaxDistance: 5000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosP, sinP := gomath.Cos(c.Pitch), gomath.Sin(c.Pitch)
	offset := math.V3(
		c.Distance*cosP*gomath.Sin(c.Yaw),
		c.Distance*sinP,
		c.Distance*cosP*gomath.Cos(c.Yaw),
	)
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// Orbit rotates the camera around its center. Pitch is clamped short of the
// poles.
func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = gomath.Max(-pitchLimit, gomath.Min(pitchLimit, c.Pitch+deltaPitch))
}

// Zoom scales the distance by factor, within MinDistance and MaxDistance.
func (c *OrbitCamera) Zoom(factor float64) {
	c.Distance = gomath.Max(c.MinDistance, gomath.Min(c.MaxDistance, c.Distance*factor))
}

// FitToBounds centers the camera on box and backs off far enough for the
// box's bounding sphere to fit in a view with the given vertical fov.
func (c *OrbitCamera) FitToBounds(box bounds.AABB, fovY float64) {
	c.Center = box.Center
	radius := box.Extents.Length()
	if radius == 0 {
		return
	}
	c.Distance = fitMargin * radius / gomath.Sin(fovY/2)
	if c.Distance > c.MaxDistance {
		c.MaxDistance = c.Distance
	}
}
