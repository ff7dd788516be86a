package bounds

import (
	gomath "math"

	"github.com/Faultbox/splatview/pkg/math"
)

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float64
}

// SphereFromAABB returns the sphere circumscribing b.
func SphereFromAABB(b AABB) Sphere {
	return Sphere{Center: b.Center, Radius: b.Extents.Length()}
}

// Transform moves the center through m and scales the radius by the largest
// axis scale of m, so the result still encloses the transformed volume.
func (s Sphere) Transform(m math.Mat4) Sphere {
	scale := m.AxisScale()
	maxScale := gomath.Max(scale.X, gomath.Max(scale.Y, scale.Z))
	return Sphere{
		Center: m.TransformPoint(s.Center),
		Radius: s.Radius * maxScale,
	}
}

// IsInFrustum reports whether the sphere is on or in front of every plane.
// Planes must be normalized for the radius comparison to be exact.
func (s Sphere) IsInFrustum(planes [6]math.Vec4) bool {
	for _, plane := range planes {
		if plane.DistancePoint(s.Center) <= -s.Radius {
			return false
		}
	}
	return true
}
