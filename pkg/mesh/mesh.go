// Package mesh holds decoded triangle mesh data ready for point sampling.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/splatview/pkg/math"
)

// ErrAttributeLength is returned when a per-vertex attribute slice does not
// line up with the vertex slice.
var ErrAttributeLength = errors.New("attribute length does not match vertex count")

// Mesh is an indexed triangle mesh. Normals and Colors are optional; when
// present they are aligned index-for-index with Vertices. Colors are RGB in
// [0, 1].
type Mesh struct {
	Vertices []math.Vec3
	Faces    [][3]int
	Normals  []math.Vec3
	Colors   []math.Vec3
}

// Validate checks that optional attributes match the vertex count.
// Faces are not checked here; out-of-range faces are dropped by ValidFaces.
func (m Mesh) Validate() error {
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("normals: got %d, want %d: %w", len(m.Normals), len(m.Vertices), ErrAttributeLength)
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("colors: got %d, want %d: %w", len(m.Colors), len(m.Vertices), ErrAttributeLength)
	}
	return nil
}

// HasNormals reports whether per-vertex normals are present.
func (m Mesh) HasNormals() bool { return len(m.Normals) > 0 }

// HasColors reports whether per-vertex colors are present.
func (m Mesh) HasColors() bool { return len(m.Colors) > 0 }

// ValidFaces returns the faces whose indices are all within the vertex slice,
// and how many were dropped. The original face order is kept.
func (m Mesh) ValidFaces() ([][3]int, int) {
	n := len(m.Vertices)
	faces := make([][3]int, 0, len(m.Faces))
	dropped := 0
	for _, f := range m.Faces {
		if f[0] < 0 || f[0] >= n || f[1] < 0 || f[1] >= n || f[2] < 0 || f[2] >= n {
			dropped++
			continue
		}
		faces = append(faces, f)
	}
	return faces, dropped
}

// WithVertices returns a shallow copy of m using vs as its vertices.
func (m Mesh) WithVertices(vs []math.Vec3) Mesh {
	m.Vertices = vs
	return m
}

// FromFlat builds a mesh from flat xyz positions and triangle indices as they
// come out of a GPU-style buffer. Trailing partial triples are ignored.
func FromFlat(positions []float32, indices []uint32) Mesh {
	vertices := make([]math.Vec3, len(positions)/3)
	for i := range vertices {
		vertices[i] = math.V3(
			float64(positions[i*3]),
			float64(positions[i*3+1]),
			float64(positions[i*3+2]),
		)
	}

	faces := make([][3]int, len(indices)/3)
	for i := range faces {
		faces[i] = [3]int{int(indices[i*3]), int(indices[i*3+1]), int(indices[i*3+2])}
	}

	return Mesh{Vertices: vertices, Faces: faces}
}

// FromFlatColors is FromFlat with per-vertex RGB colors.
func FromFlatColors(positions, colors []float32, indices []uint32) Mesh {
	m := FromFlat(positions, indices)
	m.Colors = make([]math.Vec3, len(colors)/3)
	for i := range m.Colors {
		m.Colors[i] = math.V3(float64(colors[i*3]), float64(colors[i*3+1]), float64(colors[i*3+2]))
	}
	return m
}
