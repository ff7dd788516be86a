// Package bounds provides bounding volumes and their visibility tests against
// a six-plane view frustum.
package bounds

import (
	gomath "math"

	"github.com/Faultbox/splatview/pkg/math"
)

// AABB is an axis-aligned bounding box. Min must not exceed Max on any axis;
// New never repairs inverted input.
type AABB struct {
	Min     math.Vec3
	Max     math.Vec3
	Center  math.Vec3
	Extents math.Vec3
}

// New creates an AABB from its min and max corners.
func New(min, max math.Vec3) AABB {
	center := min.Add(max).Scale(0.5)
	return AABB{
		Min:     min,
		Max:     max,
		Center:  center,
		Extents: max.Sub(center),
	}
}

// FromPoints folds the extrema of points into an AABB. It reports false when
// points is empty.
func FromPoints(points []math.Vec3) (AABB, bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return New(min, max), true
}

// IsValid reports whether Min <= Max on every axis and no component is NaN.
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Size returns Max - Min.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, bounds included.
func (b AABB) Contains(p math.Vec3) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X &&
		b.Min.Y <= p.Y && p.Y <= b.Max.Y &&
		b.Min.Z <= p.Z && p.Z <= b.Max.Z
}

// Union returns the smallest box enclosing both boxes.
func (b AABB) Union(other AABB) AABB {
	return New(b.Min.Min(other.Min), b.Max.Max(other.Max))
}

// Corners returns the eight corners. Corner i takes X from Max when bit 2 of i
// is set, Y when bit 1 is set and Z when bit 0 is set.
func (b AABB) Corners() [8]math.Vec3 {
	var c [8]math.Vec3
	for i := range c {
		c[i] = b.Min
		if i&4 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&1 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// Transform moves all eight corners through m and returns the box around
// them. The result contains the transformed box but is not minimal under
// rotation.
func (b AABB) Transform(m math.Mat4) AABB {
	corners := b.Corners()
	min := math.V3(gomath.Inf(1), gomath.Inf(1), gomath.Inf(1))
	max := math.V3(gomath.Inf(-1), gomath.Inf(-1), gomath.Inf(-1))
	for _, c := range corners {
		p := m.TransformPoint(c)
		min = min.Min(p)
		max = max.Max(p)
	}
	return New(min, max)
}

// IsPartlyInFrustum returns false only when a single plane has all eight
// corners strictly on its negative side. Boxes rejected by no single plane
// pass even if they lie outside the frustum near an edge or corner.
func (b AABB) IsPartlyInFrustum(planes [6]math.Vec4) bool {
	corners := b.Corners()
	for _, plane := range planes {
		outside := 0
		for _, c := range corners {
			if plane.Dot(math.V4(c, 1)) < 0 {
				outside++
			}
		}
		if outside == len(corners) {
			return false
		}
	}
	return true
}

// ShouldRenderForFrustum transforms the box by transform and tests it
// against planes.
func (b AABB) ShouldRenderForFrustum(planes [6]math.Vec4, transform math.Mat4) bool {
	return b.Transform(transform).IsPartlyInFrustum(planes)
}
