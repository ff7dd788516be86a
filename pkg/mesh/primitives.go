package mesh

import (
	gomath "math"

	"github.com/Faultbox/splatview/pkg/math"
)

// cubeFace describes one side of the unit cube: its outward normal, two
// in-plane axes with u × v = normal, and its color.
type cubeFace struct {
	normal, u, v, color math.Vec3
}

var cubeFaces = [6]cubeFace{
	{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0), math.V3(0, 0, 1)},   // front
	{math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0), math.V3(1, 0, 0)},  // right
	{math.V3(0, 0, -1), math.V3(-1, 0, 0), math.V3(0, 1, 0), math.V3(1, 1, 0)}, // back
	{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0), math.V3(0, 1, 1)},  // left
	{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0)},  // top
	{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1), math.V3(1, 0, 1)},  // bottom
}

// Cube returns the [-1, 1]^3 cube with four vertices per side so each side
// carries its own flat normal and color. Triangles wind counter-clockwise
// seen from outside.
func Cube() Mesh {
	m := Mesh{
		Vertices: make([]math.Vec3, 0, 24),
		Normals:  make([]math.Vec3, 0, 24),
		Colors:   make([]math.Vec3, 0, 24),
		Faces:    make([][3]int, 0, 12),
	}
	quad := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := len(m.Vertices)
		for _, st := range quad {
			m.Vertices = append(m.Vertices, f.normal.Add(f.u.Scale(st[0])).Add(f.v.Scale(st[1])))
			m.Normals = append(m.Normals, f.normal)
			m.Colors = append(m.Colors, f.color)
		}
		m.Faces = append(m.Faces, [3]int{base, base + 1, base + 2}, [3]int{base + 2, base + 3, base})
	}
	return m
}

// UVSphere returns a sphere of the given radius built from sector (longitude)
// and stack (latitude) lines, with the poles on the Z axis. The pole stacks
// use one triangle per sector. sectors is raised to 3 and stacks to 2 if
// smaller.
//
// See https://www.songho.ca/opengl/gl_sphere.html
func UVSphere(radius float64, sectors, stacks int) Mesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	sectorStep := 2 * gomath.Pi / float64(sectors)
	stackStep := gomath.Pi / float64(stacks)

	count := (stacks + 1) * (sectors + 1)
	m := Mesh{
		Vertices: make([]math.Vec3, 0, count),
		Normals:  make([]math.Vec3, 0, count),
		Faces:    make([][3]int, 0, 2*sectors*(stacks-1)),
	}

	for i := 0; i <= stacks; i++ {
		stackAngle := gomath.Pi/2 - float64(i)*stackStep
		xy := radius * gomath.Cos(stackAngle)
		z := radius * gomath.Sin(stackAngle)

		// The seam vertex is duplicated at j == sectors.
		for j := 0; j <= sectors; j++ {
			sectorAngle := float64(j) * sectorStep
			p := math.V3(xy*gomath.Cos(sectorAngle), xy*gomath.Sin(sectorAngle), z)
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, p.NormalizeOr(math.Up))
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := i * (sectors + 1)
		k2 := k1 + sectors + 1
		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				m.Faces = append(m.Faces, [3]int{k1, k2, k1 + 1})
			}
			if i != stacks-1 {
				m.Faces = append(m.Faces, [3]int{k1 + 1, k2, k2 + 1})
			}
		}
	}
	return m
}

// Quad returns the unit square in the XY plane as two triangles sharing the
// (0,0,0)-(1,1,0) diagonal.
func Quad() Mesh {
	n := math.V3(0, 0, 1)
	return Mesh{
		Vertices: []math.Vec3{
			math.V3(0, 0, 0),
			math.V3(1, 0, 0),
			math.V3(1, 1, 0),
			math.V3(0, 1, 0),
		},
		Faces:   [][3]int{{0, 1, 2}, {0, 2, 3}},
		Normals: []math.Vec3{n, n, n, n},
	}
}
