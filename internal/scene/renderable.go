// Package scene manages splat renderables and decides each frame which of
// them are visible.
package scene

import (
	"fmt"

	"github.com/Faultbox/splatview/pkg/bounds"
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/splat"
)

// Renderable is one batch of points drawn with a single model matrix.
type Renderable struct {
	Name   string
	Points []splat.Point

	// AABB bounds the points in object space; WorldAABB is AABB moved by
	// the model matrix, updated by SetModelMatrix.
	AABB      bounds.AABB
	WorldAABB bounds.AABB

	// IsStatic renderables are tested against WorldAABB instead of
	// transforming AABB every frame.
	IsStatic bool

	model     math.Mat4
	hasBounds bool
}

// NewRenderable creates a renderable at the origin with its object-space
// bounds computed from points.
func NewRenderable(name string, points []splat.Point) *Renderable {
	r := &Renderable{Name: name, Points: points}
	r.AABB, r.hasBounds = splat.BoundsOf(points)
	r.SetModelMatrix(math.Identity())
	return r
}

// ModelMatrix returns the current model matrix.
func (r *Renderable) ModelMatrix() math.Mat4 {
	return r.model
}

// SetModelMatrix stores m and recomputes the world-space bounds.
func (r *Renderable) SetModelMatrix(m math.Mat4) {
	r.model = m
	if r.hasBounds {
		r.WorldAABB = r.AABB.Transform(m)
	}
}

// Visible reports whether any part of the renderable may be inside the
// frustum described by planes. Renderables without points are never visible.
func (r *Renderable) Visible(planes [6]math.Vec4) bool {
	if !r.hasBounds {
		return false
	}
	if r.IsStatic {
		return r.WorldAABB.IsPartlyInFrustum(planes)
	}
	return r.AABB.ShouldRenderForFrustum(planes, r.model)
}

// Split cuts points into renderables of at most threshold points each, in
// order, so culling can skip parts of a large mesh. A threshold of zero or
// less keeps everything in one renderable.
func Split(name string, points []splat.Point, threshold int) []*Renderable {
	if threshold <= 0 || len(points) <= threshold {
		return []*Renderable{NewRenderable(name, points)}
	}

	var out []*Renderable
	for lo, part := 0, 0; lo < len(points); lo, part = lo+threshold, part+1 {
		hi := min(lo+threshold, len(points))
		out = append(out, NewRenderable(fmt.Sprintf("%s#%d", name, part), points[lo:hi:hi]))
	}
	return out
}
