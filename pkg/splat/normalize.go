package splat

import (
	gomath "math"

	"github.com/Faultbox/splatview/pkg/math"
)

// NormalizedBound is the largest absolute coordinate NormalizeVerticesSize
// scales a vertex set to.
const NormalizedBound = 20.0

// MoveVerticesMeanToOrigin returns a copy of vs translated so its centroid
// sits at the origin.
func MoveVerticesMeanToOrigin(vs []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(vs))
	if len(vs) == 0 {
		return out
	}

	var sum math.Vec3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	mean := sum.Scale(1 / float64(len(vs)))

	for i, v := range vs {
		out[i] = v.Sub(mean)
	}
	return out
}

// NormalizeVerticesSize returns a copy of vs uniformly scaled so the largest
// absolute coordinate over all axes equals NormalizedBound. A degenerate set
// (max 0) or one already at the bound is returned unscaled, so applying it
// twice gives the same result as once.
func NormalizeVerticesSize(vs []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(vs))
	copy(out, vs)

	limit := 0.0
	for _, v := range vs {
		limit = gomath.Max(limit, v.MaxAbs())
	}
	if limit == 0 || gomath.Abs(limit-NormalizedBound) <= NormalizedBound*1e-12 {
		return out
	}

	scale := NormalizedBound / limit
	for i, v := range out {
		out[i] = v.Scale(scale)
	}
	return out
}
