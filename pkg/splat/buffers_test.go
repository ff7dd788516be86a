package splat

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/splatview/pkg/math"
)

func testPoints() []Point {
	return []Point{
		{Position: math.V3(1, 2, 3), Normal: math.V3(0, 1, 0), Color: math.V3(1, 0, 0), Size: 0.5},
		{Position: math.V3(-4, 5, -6), Normal: math.V3(0, 0, 1), Color: math.V3(0, 0.5, 1), Size: 2},
	}
}

func TestToBuffers(t *testing.T) {
	b := ToBuffers(testPoints())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []float32{1, 2, 3, -4, 5, -6}, b.Positions)
	assert.Equal(t, []float32{1, 0, 0, 0, 0.5, 1}, b.Colors)
	assert.Equal(t, []float32{0, 1, 0, 0, 0, 1}, b.Normals)
	assert.Equal(t, []float32{0.5, 2}, b.Sizes)

	empty := ToBuffers(nil)
	assert.Zero(t, empty.Len())
}

func TestBuffersWriteRead(t *testing.T) {
	b := ToBuffers(testPoints())

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(8+2*10*4), n)
	assert.Equal(t, []byte("SPLT"), buf.Bytes()[:4])
	assert.Equal(t, []byte{2, 0, 0, 0}, buf.Bytes()[4:8])

	got, err := ReadBuffers(&buf)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBuffersWriteMismatched(t *testing.T) {
	b := ToBuffers(testPoints())
	b.Normals = b.Normals[:3]

	_, err := b.WriteTo(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestReadBuffersErrors(t *testing.T) {
	_, err := ReadBuffers(bytes.NewReader([]byte("PLY\n0000")))
	assert.True(t, errors.Is(err, ErrBadBuffer))

	var buf bytes.Buffer
	_, err = ToBuffers(testPoints()).WriteTo(&buf)
	require.NoError(t, err)
	_, err = ReadBuffers(bytes.NewReader(buf.Bytes()[:20]))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadBuffer))

	// Header only, with a count far beyond anything a sampler emits.
	huge := binary.LittleEndian.AppendUint32([]byte("SPLT"), 0x20000000)
	_, err = ReadBuffers(bytes.NewReader(huge))
	assert.True(t, errors.Is(err, ErrBadBuffer), "got %v", err)

	// A plausible count with no payload fails on the short read.
	empty := binary.LittleEndian.AppendUint32([]byte("SPLT"), DefaultPointCap)
	_, err = ReadBuffers(bytes.NewReader(empty))
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, errors.Is(err, ErrBadBuffer))
}

func TestBuffersReadLarge(t *testing.T) {
	// More floats than one read chunk per buffer.
	points := make([]Point, readChunk/3+7)
	for i := range points {
		points[i] = Point{Position: math.V3(float64(i), 0, -float64(i)), Normal: math.Up, Color: DefaultColor, Size: 1}
	}
	b := ToBuffers(points)

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadBuffers(&buf)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	box, ok := BoundsOf(testPoints())
	require.True(t, ok)
	assert.Equal(t, math.V3(-4, 2, -6), box.Min)
	assert.Equal(t, math.V3(1, 5, 3), box.Max)
}
