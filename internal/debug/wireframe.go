// Package debug provides debug visualization geometry for culling.
package debug

import (
	"context"

	"github.com/Faultbox/splatview/pkg/bounds"
	"github.com/Faultbox/splatview/pkg/frustum"
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/mesh"
	"github.com/Faultbox/splatview/pkg/splat"
)

// WireframeVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const WireframeVertexCount = 24

// boxEdges lists the 12 edges of a box over corner indices where bit 2 picks
// max X, bit 1 max Y and bit 0 max Z. Both bounds.AABB.Corners and
// frustum.Frustum.Corners use that order.
var boxEdges = [12][2]int{
	// Min Z face (near plane of a frustum)
	{0, 4}, {4, 6}, {6, 2}, {2, 0},
	// Max Z face (far plane)
	{1, 5}, {5, 7}, {7, 3}, {3, 1},
	// Connecting edges
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
}

// BoxWireframe creates line vertices for the box spanned by corners.
// Format: [x, y, z] per vertex, two vertices per edge.
func BoxWireframe(corners [8]math.Vec3) []float32 {
	out := make([]float32, 0, WireframeVertexCount*3)
	for _, e := range boxEdges {
		for _, idx := range e {
			c := corners[idx]
			out = append(out, float32(c.X), float32(c.Y), float32(c.Z))
		}
	}
	return out
}

// AABBWireframe creates line vertices for an AABB expanded by padding on all
// sides.
func AABBWireframe(box bounds.AABB, padding float64) []float32 {
	pad := math.V3(padding, padding, padding)
	return BoxWireframe(bounds.New(box.Min.Sub(pad), box.Max.Add(pad)).Corners())
}

// FrustumWireframe creates line vertices for the edges of a view frustum.
func FrustumWireframe(f frustum.Frustum) []float32 {
	return BoxWireframe(f.Corners)
}

// FrustumMesh returns the frustum hull as a mesh over its corners, ready to
// be sampled into points.
func FrustumMesh(f frustum.Frustum) mesh.Mesh {
	return mesh.Mesh{
		Vertices: f.Corners[:],
		Faces:    f.Triangles(),
	}
}

// FrustumPoints samples the frustum hull into splats that stay in world
// space: recentering and size normalization in opts are ignored.
func FrustumPoints(ctx context.Context, f frustum.Frustum, opts splat.Options) ([]splat.Point, error) {
	opts.MoveMeanToOrigin = false
	opts.NormalizeSize = false

	s, err := splat.New(opts)
	if err != nil {
		return nil, err
	}
	res, err := s.Sample(ctx, FrustumMesh(f))
	if err != nil {
		return nil, err
	}
	return res.Points, nil
}
