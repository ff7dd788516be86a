package splat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// bufferMagic prefixes the binary form written by Buffers.WriteTo.
var bufferMagic = [4]byte{'S', 'P', 'L', 'T'}

// MaxBufferPoints is the largest point count ReadBuffers accepts.
const MaxBufferPoints = 1 << 28

// readChunk is how many floats ReadBuffers reads at a time.
const readChunk = 1 << 16

// ErrBadBuffer is returned by ReadBuffers for input that is not a point
// buffer dump.
var ErrBadBuffer = errors.New("not a splat buffer")

// Buffers are the four parallel arrays a splat renderer uploads. Positions,
// Colors and Normals hold 3 floats per point and Sizes holds 1.
type Buffers struct {
	Positions []float32
	Colors    []float32
	Normals   []float32
	Sizes     []float32
}

// ToBuffers flattens points into renderer buffers.
func ToBuffers(points []Point) Buffers {
	b := Buffers{
		Positions: make([]float32, 0, len(points)*3),
		Colors:    make([]float32, 0, len(points)*3),
		Normals:   make([]float32, 0, len(points)*3),
		Sizes:     make([]float32, 0, len(points)),
	}
	for _, p := range points {
		b.Positions = append(b.Positions, float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
		b.Colors = append(b.Colors, float32(p.Color.X), float32(p.Color.Y), float32(p.Color.Z))
		b.Normals = append(b.Normals, float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z))
		b.Sizes = append(b.Sizes, float32(p.Size))
	}
	return b
}

// Len returns the number of points in the buffers.
func (b Buffers) Len() int {
	return len(b.Sizes)
}

// WriteTo writes the buffers little-endian: the "SPLT" magic, the point count
// as uint32, then positions, colors, normals and sizes.
func (b Buffers) WriteTo(w io.Writer) (int64, error) {
	n := b.Len()
	if n > MaxBufferPoints {
		return 0, fmt.Errorf("%d points exceeds %d: %w", n, MaxBufferPoints, ErrBadBuffer)
	}
	if len(b.Positions) != n*3 || len(b.Colors) != n*3 || len(b.Normals) != n*3 {
		return 0, fmt.Errorf("buffer lengths disagree with %d points", n)
	}

	cw := &countingWriter{w: w}
	if err := binary.Write(cw, binary.LittleEndian, bufferMagic); err != nil {
		return cw.n, err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint32(n)); err != nil {
		return cw.n, err
	}
	for _, buf := range [][]float32{b.Positions, b.Colors, b.Normals, b.Sizes} {
		if err := binary.Write(cw, binary.LittleEndian, buf); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// ReadBuffers reads buffers written by WriteTo. Counts above MaxBufferPoints
// are rejected, and memory grows with the payload actually read rather than
// with the count the header claims.
func ReadBuffers(r io.Reader) (Buffers, error) {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Buffers{}, fmt.Errorf("reading magic: %w", err)
	}
	if magic != bufferMagic {
		return Buffers{}, fmt.Errorf("magic %q: %w", magic[:], ErrBadBuffer)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return Buffers{}, fmt.Errorf("reading point count: %w", err)
	}

	if count > MaxBufferPoints {
		return Buffers{}, fmt.Errorf("point count %d exceeds %d: %w", count, MaxBufferPoints, ErrBadBuffer)
	}

	n := int(count)
	var b Buffers
	for i, dst := range []*[]float32{&b.Positions, &b.Colors, &b.Normals, &b.Sizes} {
		want := n * 3
		if i == 3 {
			want = n
		}
		buf, err := readFloats(r, want)
		if err != nil {
			return Buffers{}, fmt.Errorf("reading buffer %d: %w", i, err)
		}
		*dst = buf
	}
	return b, nil
}

// readFloats reads n little-endian float32 values in bounded chunks.
func readFloats(r io.Reader, n int) ([]float32, error) {
	out := make([]float32, 0, min(n, readChunk))
	chunk := make([]float32, min(n, readChunk))
	for len(out) < n {
		c := chunk[:min(n-len(out), readChunk)]
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
