// splatview is a CLI utility for turning meshes into splat point clouds and
// culling them against a camera frustum.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/splatview/internal/config"
	"github.com/Faultbox/splatview/internal/debug"
	"github.com/Faultbox/splatview/internal/logger"
	"github.com/Faultbox/splatview/internal/scene"
	"github.com/Faultbox/splatview/pkg/frustum"
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/mesh"
	"github.com/Faultbox/splatview/pkg/splat"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "sample":
		err = cmdSample(ctx, cfg, args)
	case "inspect":
		err = cmdInspect(args)
	case "frustum":
		err = cmdFrustum(ctx, cfg)
	case "cull":
		err = cmdCull(ctx, cfg, args)
	case "save-config":
		err = cmdSaveConfig(cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`splatview - mesh to splat point cloud utility

Usage:
  splatview [flags] <command> [options]

Commands:
  sample <cube|sphere|quad> [output]  Sample a primitive, optionally dump buffers
  inspect <file.splt>                 Show a buffer dump
  frustum                             Print the camera frustum
  cull [cube|sphere|quad]             Cull a grid of sampled meshes
  save-config                         Write the effective config to the config dir

Examples:
  splatview sample sphere sphere.splt
  splatview -mtp 8 -raw sample cube
  splatview -fov 60 -distance 120 cull sphere`)
}

func primitive(name string) (mesh.Mesh, error) {
	switch name {
	case "cube":
		return mesh.Cube(), nil
	case "sphere":
		return mesh.UVSphere(1, 36, 18), nil
	case "quad":
		return mesh.Quad(), nil
	default:
		return mesh.Mesh{}, fmt.Errorf("unknown primitive %q", name)
	}
}

func sampleMesh(ctx context.Context, cfg *config.Config, m mesh.Mesh) (splat.Result, error) {
	sampler, err := splat.New(cfg.Sampler.Options(logger.Named("sampler")))
	if err != nil {
		return splat.Result{}, err
	}
	return sampler.Sample(ctx, m)
}

func cmdSample(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: splatview sample <cube|sphere|quad> [output]")
	}

	m, err := primitive(args[0])
	if err != nil {
		return err
	}
	res, err := sampleMesh(ctx, cfg, m)
	if err != nil {
		return err
	}

	fmt.Printf("Mesh:      %s (%d vertices, %d faces)\n", args[0], len(m.Vertices), len(m.Faces))
	fmt.Printf("Points:    %d\n", len(res.Points))
	if res.Truncated {
		fmt.Printf("Truncated: yes (cap %d)\n", cfg.Sampler.PointCap)
	}
	if box, ok := splat.BoundsOf(res.Points); ok {
		fmt.Printf("Bounds:    %v .. %v (size %v)\n", box.Min, box.Max, box.Size())
	}

	if len(args) < 2 {
		return nil
	}

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	n, err := splat.ToBuffers(res.Points).WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	logger.Info("wrote buffers", zap.String("path", args[1]), zap.Int64("bytes", n))
	return nil
}

func cmdInspect(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: splatview inspect <file.splt>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := splat.ReadBuffers(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	fmt.Printf("Points: %d\n", b.Len())
	for i := 0; i < min(b.Len(), 5); i++ {
		fmt.Printf("  %4d  pos (%.3f, %.3f, %.3f)  size %.3f\n",
			i, b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2], b.Sizes[i])
	}
	if b.Len() > 5 {
		fmt.Printf("  ... and %d more\n", b.Len()-5)
	}
	return nil
}

func cmdFrustum(ctx context.Context, cfg *config.Config) error {
	cam := cfg.Camera.OrbitCamera()
	f, err := frustum.Extract(cam.ViewMatrix(), cfg.Camera.Projection().Matrix())
	if err != nil {
		return err
	}

	fmt.Printf("Camera: %v\n", cam.Position())
	fmt.Println("Corners:")
	for i, c := range f.Corners {
		fmt.Printf("  %d  %v\n", i, c)
	}
	names := [6]string{"left", "right", "bottom", "top", "near", "far"}
	fmt.Println("Planes:")
	for i, p := range f.Planes {
		fmt.Printf("  %-6s  n=%v d=%.4f\n", names[i], p.XYZ(), p[3])
	}

	points, err := debug.FrustumPoints(ctx, f, cfg.Sampler.Options(logger.Named("sampler")))
	if err != nil {
		return err
	}
	fmt.Printf("Frustum splats: %d\n", len(points))
	return nil
}

func cmdCull(ctx context.Context, cfg *config.Config, args []string) error {
	name := "sphere"
	if len(args) > 0 {
		name = args[0]
	}
	m, err := primitive(name)
	if err != nil {
		return err
	}
	res, err := sampleMesh(ctx, cfg, m)
	if err != nil {
		return err
	}

	// Lay copies out on a grid around the origin, 50 units apart.
	sc := scene.New(cfg.Scene.Config(), logger.Named("scene"))
	const grid = 5
	for x := 0; x < grid; x++ {
		for z := 0; z < grid; z++ {
			model := math.Translate(float64(x-grid/2)*50, 0, float64(z-grid/2)*50)
			sc.AddPoints(fmt.Sprintf("%s_%d_%d", name, x, z), res.Points, model)
		}
	}

	cam := cfg.Camera.OrbitCamera()
	frame, err := sc.Cull(cam.ViewMatrix(), cfg.Camera.Projection().Matrix())
	if err != nil {
		return err
	}

	st := frame.Stats
	fmt.Printf("Renderables: %d visible / %d total\n", st.Visible, st.Renderables)
	fmt.Printf("Points:      %d rendered / %d total\n", st.RenderedPoints, st.Points)
	fmt.Printf("Debug lines: %d vertices\n", len(sc.DebugLines(frame))/3)
	return nil
}

func cmdSaveConfig(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Saved config to %s\n", config.ConfigDir())
	return nil
}
