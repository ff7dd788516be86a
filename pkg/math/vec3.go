// Package math provides the vector, matrix and quaternion types shared by the
// sampling and culling packages. Vectors are float64 and backed by gonum's r3.
package math

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a 3D vector.
type Vec3 r3.Vec

// Up is the default normal used where none can be derived.
var Up = Vec3{X: 0, Y: 1, Z: 0}

// V3 is shorthand for Vec3{X: x, Y: y, Z: z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(other)))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(other))
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(v), r3.Vec(other)))
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// NormalizeOr returns a unit vector, or fallback if v is (nearly) zero.
func (v Vec3) NormalizeOr(fallback Vec3) Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return fallback
	}
	return v.Scale(1 / l)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Lerp returns v + (other-v)*t.
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// Min returns the componentwise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the componentwise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// MaxAbs returns the largest absolute component.
func (v Vec3) MaxAbs() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// ApproxEqual reports whether every component differs by at most tol.
func (v Vec3) ApproxEqual(other Vec3, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol &&
		math.Abs(v.Y-other.Y) <= tol &&
		math.Abs(v.Z-other.Z) <= tol
}

// Vec4 is a 4-component vector. It doubles as a plane (nx, ny, nz, d).
type Vec4 [4]float64

// V4 builds a Vec4 from a Vec3 and a w component.
func V4(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Dot returns the 4D dot product.
func (v Vec4) Dot(other Vec4) float64 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// DistancePoint evaluates the plane equation n·p + d for the point p.
func (v Vec4) DistancePoint(p Vec3) float64 {
	return v[0]*p.X + v[1]*p.Y + v[2]*p.Z + v[3]
}
