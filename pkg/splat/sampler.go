package splat

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/mesh"
)

// ErrInvalidOptions is returned by New for unusable sampler options.
var ErrInvalidOptions = errors.New("invalid sampler options")

const (
	// DefaultMaxTrianglePoints is the default number of steps along each
	// triangle edge.
	DefaultMaxTrianglePoints = 5
	// DefaultPointCap bounds the number of points a single Sample call emits.
	DefaultPointCap = 12_000_000

	// minStep is the smallest edge step; shorter edges collapse to one sample.
	minStep = 0.25
	// sizeFactor scales the step lengths into a gap-free splat radius.
	sizeFactor = 0.725
	// stepEpsilon lets the last step land on the far vertex despite rounding.
	stepEpsilon = 1e-5

	faceChunkSize = 2048
)

// DefaultColor is used for meshes without per-vertex colors.
var DefaultColor = math.V3(1, 1, 1)

// Options configures a Sampler. Zero values are replaced by defaults in New,
// except MaxTrianglePoints, which must be at least 1 once set.
type Options struct {
	MaxTrianglePoints int
	DefaultColor      *math.Vec3
	MoveMeanToOrigin  bool
	NormalizeSize     bool
	PointCap          int
	Workers           int
	Logger            *zap.Logger
}

// DefaultOptions returns the options New falls back to.
func DefaultOptions() Options {
	c := DefaultColor
	return Options{
		MaxTrianglePoints: DefaultMaxTrianglePoints,
		DefaultColor:      &c,
		PointCap:          DefaultPointCap,
		Workers:           runtime.GOMAXPROCS(0),
		Logger:            zap.NewNop(),
	}
}

// Result is the outcome of sampling one mesh.
type Result struct {
	Points []Point
	// Truncated is set when sampling stopped at the point cap.
	Truncated bool
	// DroppedFaces counts faces referencing vertices out of range.
	DroppedFaces int
}

// Sampler turns triangle meshes into point clouds. It is safe for concurrent
// use.
type Sampler struct {
	maxTrianglePoints int
	defaultColor      math.Vec3
	moveMeanToOrigin  bool
	normalizeSize     bool
	pointCap          int
	workers           int
	log               *zap.Logger
}

// New validates opts and returns a Sampler.
func New(opts Options) (*Sampler, error) {
	def := DefaultOptions()
	if opts.MaxTrianglePoints == 0 {
		opts.MaxTrianglePoints = def.MaxTrianglePoints
	}
	if opts.MaxTrianglePoints < 1 {
		return nil, fmt.Errorf("max triangle points %d: %w", opts.MaxTrianglePoints, ErrInvalidOptions)
	}
	if opts.PointCap < 0 {
		return nil, fmt.Errorf("point cap %d: %w", opts.PointCap, ErrInvalidOptions)
	}
	if opts.PointCap == 0 {
		opts.PointCap = def.PointCap
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers %d: %w", opts.Workers, ErrInvalidOptions)
	}
	if opts.Workers == 0 {
		opts.Workers = def.Workers
	}
	if opts.DefaultColor == nil {
		opts.DefaultColor = def.DefaultColor
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}

	return &Sampler{
		maxTrianglePoints: opts.MaxTrianglePoints,
		defaultColor:      *opts.DefaultColor,
		moveMeanToOrigin:  opts.MoveMeanToOrigin,
		normalizeSize:     opts.NormalizeSize,
		pointCap:          opts.PointCap,
		workers:           opts.Workers,
		log:               opts.Logger,
	}, nil
}

// Sample converts m into points. Vertices are recentered and rescaled first
// when the options ask for it; m itself is never modified. A mesh with no
// faces yields one point per vertex.
func (s *Sampler) Sample(ctx context.Context, m mesh.Mesh) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, fmt.Errorf("sampling mesh: %w", err)
	}

	vertices := m.Vertices
	if s.moveMeanToOrigin {
		vertices = MoveVerticesMeanToOrigin(vertices)
	}
	if s.normalizeSize {
		vertices = NormalizeVerticesSize(vertices)
	}
	m = m.WithVertices(vertices)

	if len(m.Faces) == 0 {
		return s.samplePointCloud(m), nil
	}

	faces, dropped := m.ValidFaces()
	if dropped > 0 {
		s.log.Debug("dropped faces with out-of-range indices",
			zap.Int("dropped", dropped),
			zap.Int("faces", len(m.Faces)))
	}

	res, err := s.sampleFaces(ctx, m, faces)
	if err != nil {
		return Result{}, err
	}
	res.DroppedFaces = dropped

	s.log.Debug("sampled mesh",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(faces)),
		zap.Int("points", len(res.Points)),
		zap.Bool("truncated", res.Truncated))
	return res, nil
}

// chunk holds the samples of a run of consecutive faces, with the number of
// points each face produced so the cap can be applied per face.
type chunk struct {
	points []Point
	counts []int
}

func (s *Sampler) sampleFaces(ctx context.Context, m mesh.Mesh, faces [][3]int) (Result, error) {
	var res Result
	numChunks := (len(faces) + faceChunkSize - 1) / faceChunkSize

	// Chunks run in waves of s.workers so scheduling stops once the cap is hit.
	for first := 0; first < numChunks; first += s.workers {
		last := min(first+s.workers, numChunks)
		chunks := make([]chunk, last-first)

		g, gctx := errgroup.WithContext(ctx)
		for c := first; c < last; c++ {
			lo := c * faceChunkSize
			hi := min(lo+faceChunkSize, len(faces))
			out := &chunks[c-first]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				*out = s.sampleChunk(m, faces[lo:hi])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, fmt.Errorf("sampling faces: %w", err)
		}
		// Chunks already running when ctx was cancelled still finish.
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("sampling faces: %w", err)
		}

		for _, ch := range chunks {
			offset := 0
			for _, n := range ch.counts {
				res.Points = append(res.Points, ch.points[offset:offset+n]...)
				offset += n
				if len(res.Points) > s.pointCap {
					res.Truncated = true
					s.log.Warn("point cap reached, stopping",
						zap.Int("cap", s.pointCap),
						zap.Int("points", len(res.Points)))
					return res, nil
				}
			}
		}
	}
	return res, nil
}

func (s *Sampler) sampleChunk(m mesh.Mesh, faces [][3]int) chunk {
	ch := chunk{counts: make([]int, len(faces))}
	for i, f := range faces {
		before := len(ch.points)
		ch.points = s.appendTriangle(ch.points, triangleOf(m, f, s.defaultColor))
		ch.counts[i] = len(ch.points) - before
	}
	return ch
}

func (s *Sampler) samplePointCloud(m mesh.Mesh) Result {
	points := make([]Point, len(m.Vertices))
	for i, v := range m.Vertices {
		p := Point{Position: v, Normal: math.Up, Color: s.defaultColor, Size: 1}
		if m.HasNormals() {
			p.Normal = m.Normals[i].NormalizeOr(math.Up)
		}
		if m.HasColors() {
			p.Color = m.Colors[i]
		}
		points[i] = p
	}
	return Result{Points: points}
}

// Triangle is a single face with its per-corner attributes.
type Triangle struct {
	V       [3]math.Vec3
	Normals [3]math.Vec3
	Colors  [3]math.Vec3
}

// triangleOf gathers face f of m. Missing normals become the flat face normal
// and missing colors become defaultColor.
func triangleOf(m mesh.Mesh, f [3]int, defaultColor math.Vec3) Triangle {
	var t Triangle
	for k, idx := range f {
		t.V[k] = m.Vertices[idx]
	}

	if m.HasNormals() {
		for k, idx := range f {
			t.Normals[k] = m.Normals[idx]
		}
	} else {
		n := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0])).Normalize()
		t.Normals = [3]math.Vec3{n, n, n}
	}

	if m.HasColors() {
		for k, idx := range f {
			t.Colors[k] = m.Colors[idx]
		}
	} else {
		t.Colors = [3]math.Vec3{defaultColor, defaultColor, defaultColor}
	}
	return t
}

// SampleTriangle returns the grid of points covering t.
func (s *Sampler) SampleTriangle(t Triangle) []Point {
	return s.appendTriangle(nil, t)
}

// appendTriangle walks i along v0-v1 and j along v0-v2. Each (i, j) first
// interpolates va between v1 and v0, then the point between v2 and va, which
// covers the triangle with a parallelogram-shaped grid.
func (s *Sampler) appendTriangle(dst []Point, t Triangle) []Point {
	v0, v1, v2 := t.V[0], t.V[1], t.V[2]
	aDist := v1.Distance(v0)
	bDist := v2.Distance(v0)
	aStep := gomath.Max(aDist/float64(s.maxTrianglePoints), minStep)
	bStep := gomath.Max(bDist/float64(s.maxTrianglePoints), minStep)

	size := (aStep + bStep) * sizeFactor
	if aDist < minStep && bDist < minStep {
		size = (aDist + bDist) * sizeFactor
	}

	as := edgeSamples(aDist, aStep)
	bs := edgeSamples(bDist, bStep)
	for _, i := range as {
		ta := edgeParam(i, aDist)
		va := v1.Lerp(v0, ta)
		na := t.Normals[1].Lerp(t.Normals[0], ta)
		ca := t.Colors[1].Lerp(t.Colors[0], ta)
		for _, j := range bs {
			tb := edgeParam(j, bDist)
			dst = append(dst, Point{
				Position: v2.Lerp(va, tb),
				Normal:   t.Normals[2].Lerp(na, tb).NormalizeOr(math.Up),
				Color:    t.Colors[2].Lerp(ca, tb),
				Size:     size,
			})
		}
	}
	return dst
}

// edgeSamples returns the distances along an edge to sample at: multiples of
// step up to dist, or the midpoint alone for edges shorter than minStep.
// Each distance is computed as k*step rather than summed step by step, so
// rounding does not accumulate along long edges with many steps.
func edgeSamples(dist, step float64) []float64 {
	if dist < minStep {
		return []float64{dist / 2}
	}
	var out []float64
	for k := 0; ; k++ {
		d := float64(k) * step
		if d > dist+stepEpsilon {
			break
		}
		out = append(out, d)
	}
	return out
}

func edgeParam(d, dist float64) float64 {
	if dist == 0 {
		return 0
	}
	return d / dist
}
