package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/splatview/internal/debug"
	"github.com/Faultbox/splatview/pkg/frustum"
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/splat"
)

// Config contains scene configuration options.
type Config struct {
	// SplitThreshold is the most points a renderable created by AddPoints
	// or AddNode holds. Zero disables splitting.
	SplitThreshold int
	// Static marks renderables created by AddPoints or AddNode as static.
	Static bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		SplitThreshold: 100_000,
		Static:         true,
	}
}

// Stats counts what one Cull call saw.
type Stats struct {
	Renderables    int
	Visible        int
	Points         int
	RenderedPoints int
}

// Frame is the draw set for one frame.
type Frame struct {
	Frustum frustum.Frustum
	// ViewProjection is projection * view, column-major, ready for upload.
	ViewProjection [16]float32
	Visible        []*Renderable
	Stats          Stats
}

// Scene holds every renderable and culls them per frame.
type Scene struct {
	config      Config
	renderables []*Renderable
	log         *zap.Logger
}

// New creates an empty scene. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{config: cfg, log: log}
}

// Add appends renderables as they are.
func (s *Scene) Add(rs ...*Renderable) {
	s.renderables = append(s.renderables, rs...)
}

// AddPoints splits points per the scene config, places them with model and
// adds them. It returns the new renderables.
func (s *Scene) AddPoints(name string, points []splat.Point, model math.Mat4) []*Renderable {
	rs := Split(name, points, s.config.SplitThreshold)
	for _, r := range rs {
		r.IsStatic = s.config.Static
		r.SetModelMatrix(model)
	}
	s.Add(rs...)
	s.log.Debug("added points",
		zap.String("name", name),
		zap.Int("points", len(points)),
		zap.Int("renderables", len(rs)))
	return rs
}

// AddNode flattens a node hierarchy into the scene.
func (s *Scene) AddNode(root *Node) []*Renderable {
	rs := Flatten(root, math.Identity(), s.config.SplitThreshold)
	for _, r := range rs {
		r.IsStatic = s.config.Static
	}
	s.Add(rs...)
	return rs
}

// Renderables returns every renderable in insertion order.
func (s *Scene) Renderables() []*Renderable {
	return s.renderables
}

// Cull extracts the frustum for view and projection once and collects the
// renderables that may be visible.
func (s *Scene) Cull(view, projection math.Mat4) (Frame, error) {
	f, err := frustum.Extract(view, projection)
	if err != nil {
		return Frame{}, fmt.Errorf("culling scene: %w", err)
	}

	frame := Frame{
		Frustum:        f,
		ViewProjection: projection.Mul(view).Float32(),
	}
	for _, r := range s.renderables {
		frame.Stats.Renderables++
		frame.Stats.Points += len(r.Points)
		if !r.Visible(f.Planes) {
			continue
		}
		frame.Visible = append(frame.Visible, r)
		frame.Stats.Visible++
		frame.Stats.RenderedPoints += len(r.Points)
	}

	s.log.Debug("culled frame",
		zap.Int("renderables", frame.Stats.Renderables),
		zap.Int("visible", frame.Stats.Visible),
		zap.Int("points", frame.Stats.Points),
		zap.Int("rendered", frame.Stats.RenderedPoints))
	return frame, nil
}

// DebugLines returns wireframe line vertices for the frame's frustum followed
// by the world bounds of every visible renderable.
func (s *Scene) DebugLines(frame Frame) []float32 {
	out := debug.FrustumWireframe(frame.Frustum)
	for _, r := range frame.Visible {
		out = append(out, debug.AABBWireframe(r.WorldAABB, 0)...)
	}
	return out
}
