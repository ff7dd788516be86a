package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/splatview/internal/camera"
	"github.com/Faultbox/splatview/internal/scene"
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/splat"
)

// Options returns sampler options for these settings.
func (s SamplerConfig) Options(log *zap.Logger) splat.Options {
	color := math.V3(s.DefaultColor[0], s.DefaultColor[1], s.DefaultColor[2])
	return splat.Options{
		MaxTrianglePoints: s.MaxTrianglePoints,
		DefaultColor:      &color,
		MoveMeanToOrigin:  s.MoveMeanToOrigin,
		NormalizeSize:     s.NormalizeSize,
		PointCap:          s.PointCap,
		Workers:           s.Workers,
		Logger:            log,
	}
}

// Projection returns the perspective projection for these settings.
func (c CameraConfig) Projection() camera.Projection {
	return camera.Projection{FovY: c.FovY, Aspect: c.Aspect, Near: c.Near, Far: c.Far}
}

// OrbitCamera returns an orbit camera around the origin.
func (c CameraConfig) OrbitCamera() *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.Distance = c.Distance
	cam.Orbit(c.Yaw-cam.Yaw, c.Pitch-cam.Pitch)
	return cam
}

// SceneConfig returns the scene package configuration.
func (s SceneConfig) Config() scene.Config {
	return scene.Config{SplitThreshold: s.SplitThreshold, Static: s.Static}
}
