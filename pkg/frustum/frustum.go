// Package frustum derives the six view-frustum planes from camera matrices.
//
// The eight NDC cube corners are unprojected to world space and each cube face
// is turned into a plane through one of its two triangles. Planes face inward:
// a point p is inside when n·p + d >= 0 for all six.
package frustum

import (
	"fmt"

	"github.com/Faultbox/splatview/pkg/math"
)

// Plane indices, in the order Extract produces them.
const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
)

// Corner i of the NDC cube has x = +1 when bit 2 is set, y = +1 when bit 1 is
// set and z = +1 when bit 0 is set; otherwise the coordinate is -1.
// With OpenGL projections z = -1 is the near plane.
var ndcCorners = [8]math.Vec4{
	{-1, -1, -1, 1},
	{-1, -1, 1, 1},
	{-1, 1, -1, 1},
	{-1, 1, 1, 1},
	{1, -1, -1, 1},
	{1, -1, 1, 1},
	{1, 1, -1, 1},
	{1, 1, 1, 1},
}

// FaceTriangles splits the six cube faces into twelve triangles over the corner
// indices. Triangles 2k and 2k+1 cover face k (Left, Right, Bottom, Top, Near,
// Far). Winding is outward in NDC, which is inward in world space for
// projections that flip handedness, as OpenGL's do.
var FaceTriangles = [12][3]int{
	{0, 1, 2}, {1, 3, 2}, // left
	{4, 6, 5}, {5, 6, 7}, // right
	{0, 4, 1}, {1, 4, 5}, // bottom
	{2, 3, 6}, {3, 7, 6}, // top
	{0, 2, 4}, {2, 6, 4}, // near
	{1, 5, 3}, {3, 5, 7}, // far
}

// Frustum is the world-space view volume for one frame.
type Frustum struct {
	Corners [8]math.Vec3
	Normals [6]math.Vec3
	Planes  [6]math.Vec4
}

// Extract unprojects the NDC cube through the inverse projection and view
// matrices and builds the six planes. Either matrix being singular is a caller
// error reported as math.ErrSingularMatrix.
func Extract(view, projection math.Mat4) (Frustum, error) {
	invView, err := view.Inverse()
	if err != nil {
		return Frustum{}, fmt.Errorf("inverting view matrix: %w", err)
	}
	invProj, err := projection.Inverse()
	if err != nil {
		return Frustum{}, fmt.Errorf("inverting projection matrix: %w", err)
	}

	var f Frustum
	for i, ndc := range ndcCorners {
		eye := invProj.MulVec4(ndc)
		eye = math.Vec4{eye[0] / eye[3], eye[1] / eye[3], eye[2] / eye[3], 1}
		f.Corners[i] = invView.MulVec4(eye).XYZ()
	}

	centroid := math.Vec3{}
	for _, c := range f.Corners {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Scale(1.0 / float64(len(f.Corners)))

	for face := range f.Planes {
		tri := FaceTriangles[face*2]
		a, b, c := f.Corners[tri[0]], f.Corners[tri[1]], f.Corners[tri[2]]
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		plane := math.V4(normal, -normal.Dot(a))
		// Projections that keep handedness wind the table the other way round.
		if plane.DistancePoint(centroid) < 0 {
			normal = normal.Scale(-1)
			plane = math.V4(normal, -normal.Dot(a))
		}
		f.Normals[face] = normal
		f.Planes[face] = plane
	}
	return f, nil
}

// Triangles returns the corner triangles as a face list, suitable for
// sampling the frustum itself into debug geometry.
func (f Frustum) Triangles() [][3]int {
	out := make([][3]int, len(FaceTriangles))
	copy(out, FaceTriangles[:])
	return out
}

// Contains reports whether p is on the inner side of all six planes.
func (f Frustum) Contains(p math.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistancePoint(p) < 0 {
			return false
		}
	}
	return true
}

// FromViewProjection extracts normalized planes directly from a combined
// projection * view matrix using the Gribb/Hartmann row combinations. The
// order matches Extract.
func FromViewProjection(vp math.Mat4) [6]math.Vec4 {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)
	planes := [6]math.Vec4{
		add(r3, r0), // left
		sub(r3, r0), // right
		add(r3, r1), // bottom
		sub(r3, r1), // top
		add(r3, r2), // near
		sub(r3, r2), // far
	}
	for i, p := range planes {
		if l := p.XYZ().Length(); l > 0 {
			planes[i] = math.Vec4{p[0] / l, p[1] / l, p[2] / l, p[3] / l}
		}
	}
	return planes
}

func add(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}
