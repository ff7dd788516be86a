// Package splat converts triangle meshes into sized impostor points.
package splat

import (
	"github.com/Faultbox/splatview/pkg/bounds"
	"github.com/Faultbox/splatview/pkg/math"
)

// Point is one impostor splat. Normal is unit length, Color is RGB in [0, 1]
// and Size is the splat radius.
type Point struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    math.Vec3
	Size     float64
}

// Positions returns the position of every point.
func Positions(points []Point) []math.Vec3 {
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}

// BoundsOf returns the box around all point positions. It reports false for
// an empty slice.
func BoundsOf(points []Point) (bounds.AABB, bool) {
	return bounds.FromPoints(Positions(points))
}
