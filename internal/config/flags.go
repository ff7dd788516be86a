package config

import (
	"flag"
	gomath "math"
)

var (
	flagConfig            = flag.String("config", "", "Path to config file")
	flagDebug             = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile           = flag.String("log-file", "", "Also write logs to this file")
	flagMaxTrianglePoints = flag.Int("mtp", 0, "Samples along each triangle edge")
	flagPointCap          = flag.Int("cap", 0, "Maximum points per mesh")
	flagWorkers           = flag.Int("workers", -1, "Sampler goroutines (0 = one per CPU)")
	flagRaw               = flag.Bool("raw", false, "Keep vertices as given (no recentering or normalization)")
	flagSplit             = flag.Int("split", -1, "Points per renderable (0 = no split)")
	flagDynamic           = flag.Bool("dynamic", false, "Treat renderables as dynamic")
	flagFov               = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagAspect            = flag.Float64("aspect", 0, "Viewport width / height")
	flagDistance          = flag.Float64("distance", 0, "Camera distance from the target")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMaxTrianglePoints > 0 {
		cfg.Sampler.MaxTrianglePoints = *flagMaxTrianglePoints
	}
	if *flagPointCap > 0 {
		cfg.Sampler.PointCap = *flagPointCap
	}
	if *flagWorkers >= 0 {
		cfg.Sampler.Workers = *flagWorkers
	}
	if *flagRaw {
		cfg.Sampler.MoveMeanToOrigin = false
		cfg.Sampler.NormalizeSize = false
	}
	if *flagSplit >= 0 {
		cfg.Scene.SplitThreshold = *flagSplit
	}
	if *flagDynamic {
		cfg.Scene.Static = false
	}
	if *flagFov > 0 {
		cfg.Camera.FovY = *flagFov * gomath.Pi / 180
	}
	if *flagAspect > 0 {
		cfg.Camera.Aspect = *flagAspect
	}
	if *flagDistance > 0 {
		cfg.Camera.Distance = *flagDistance
	}
}
