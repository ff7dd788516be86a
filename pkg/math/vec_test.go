package math

import "testing"

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	if want := V3(0, 0, 1); got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	if got := V3(2, 3, 6).Length(); got < 7-1e-12 || got > 7+1e-12 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := V3(3, 4, 12).Normalize().Length()
	if l < 0.999999 || l > 1.000001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
	if got := (Vec3{}).NormalizeOr(Up); got != Up {
		t.Errorf("zero NormalizeOr(Up) = %v, want %v", got, Up)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := V3(0, 0, 0).Lerp(V3(10, 20, 30), 0.5)
	if want := V3(5, 10, 15); got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := V3(1, -5, 3), V3(-2, 4, 3)
	if got := a.Min(b); got != V3(-2, -5, 3) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != V3(1, 4, 3) {
		t.Errorf("Max = %v", got)
	}
	if got := a.MaxAbs(); got != 5 {
		t.Errorf("MaxAbs = %v, want 5", got)
	}
}

func TestVec4Plane(t *testing.T) {
	// Plane y = 2 facing +Y
	p := Vec4{0, 1, 0, -2}
	if got := p.DistancePoint(V3(7, 5, -1)); got != 3 {
		t.Errorf("DistancePoint = %v, want 3", got)
	}
	if got := p.Dot(V4(V3(0, 1, 0), 1)); got != -1 {
		t.Errorf("Dot = %v, want -1", got)
	}
}
