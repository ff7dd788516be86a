// Package config handles splatview configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/splatview/internal/camera"
	"github.com/Faultbox/splatview/pkg/splat"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all splatview settings.
type Config struct {
	Sampler SamplerConfig `yaml:"sampler"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// SamplerConfig holds mesh to point conversion settings.
type SamplerConfig struct {
	MaxTrianglePoints int        `yaml:"max_triangle_points"`
	DefaultColor      [3]float64 `yaml:"default_color"`
	MoveMeanToOrigin  bool       `yaml:"move_mean_to_origin"`
	NormalizeSize     bool       `yaml:"normalize_size"`
	PointCap          int        `yaml:"point_cap"`
	Workers           int        `yaml:"workers"` // 0 = one per CPU
}

// CameraConfig holds the orbit camera and projection settings.
type CameraConfig struct {
	FovY     float64 `yaml:"fov_y"` // radians
	Aspect   float64 `yaml:"aspect"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
	Pitch    float64 `yaml:"pitch"`
	Yaw      float64 `yaml:"yaw"`
}

// SceneConfig holds renderable settings.
type SceneConfig struct {
	SplitThreshold int  `yaml:"split_threshold"`
	Static         bool `yaml:"static"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sampler: SamplerConfig{
			MaxTrianglePoints: splat.DefaultMaxTrianglePoints,
			DefaultColor:      [3]float64{1, 1, 1},
			MoveMeanToOrigin:  true,
			NormalizeSize:     true,
			PointCap:          splat.DefaultPointCap,
			Workers:           0,
		},
		Camera: CameraConfig{
			FovY:     camera.DefaultFovY,
			Aspect:   16.0 / 9.0,
			Near:     camera.DefaultNear,
			Far:      camera.DefaultFar,
			Distance: 45,
			Pitch:    0,
			Yaw:      gomath.Pi / 2,
		},
		Scene: SceneConfig{
			SplitThreshold: 100_000,
			Static:         true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	s := c.Sampler
	switch {
	case s.MaxTrianglePoints < 1:
		return fmt.Errorf("%w: sampler.max_triangle_points must be at least 1, got %d", ErrInvalid, s.MaxTrianglePoints)
	case s.PointCap < 1:
		return fmt.Errorf("%w: sampler.point_cap must be at least 1, got %d", ErrInvalid, s.PointCap)
	case s.Workers < 0:
		return fmt.Errorf("%w: sampler.workers must not be negative, got %d", ErrInvalid, s.Workers)
	}
	for _, ch := range s.DefaultColor {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("%w: sampler.default_color channels must be in [0, 1], got %v", ErrInvalid, s.DefaultColor)
		}
	}

	cam := c.Camera
	switch {
	case cam.FovY <= 0 || cam.FovY >= gomath.Pi:
		return fmt.Errorf("%w: camera.fov_y must be in (0, pi), got %v", ErrInvalid, cam.FovY)
	case cam.Aspect <= 0:
		return fmt.Errorf("%w: camera.aspect must be positive, got %v", ErrInvalid, cam.Aspect)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("%w: camera needs 0 < near < far, got near %v far %v", ErrInvalid, cam.Near, cam.Far)
	case cam.Distance <= 0:
		return fmt.Errorf("%w: camera.distance must be positive, got %v", ErrInvalid, cam.Distance)
	}

	if c.Scene.SplitThreshold < 0 {
		return fmt.Errorf("%w: scene.split_threshold must not be negative, got %d", ErrInvalid, c.Scene.SplitThreshold)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
