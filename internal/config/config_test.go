package config

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/splat"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test sampler defaults
	if cfg.Sampler.MaxTrianglePoints != 5 {
		t.Errorf("expected max triangle points 5, got %d", cfg.Sampler.MaxTrianglePoints)
	}
	if cfg.Sampler.PointCap != 12_000_000 {
		t.Errorf("expected point cap 12000000, got %d", cfg.Sampler.PointCap)
	}
	if !cfg.Sampler.MoveMeanToOrigin || !cfg.Sampler.NormalizeSize {
		t.Error("expected recentering and normalization to be on by default")
	}

	// Test camera defaults
	if cfg.Camera.FovY != 2*gomath.Pi/5 {
		t.Errorf("expected fov 2pi/5, got %v", cfg.Camera.FovY)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 10000 {
		t.Errorf("expected near 0.1 far 10000, got %v %v", cfg.Camera.Near, cfg.Camera.Far)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "splatview.yaml")

	yamlContent := `
sampler:
  max_triangle_points: 2
  default_color: [0.5, 0.25, 1]
  normalize_size: false
  workers: 4

camera:
  fov_y: 0.8
  far: 500

scene:
  split_threshold: 5000
  static: false

logging:
  level: "debug"
  log_file: "splatview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Sampler.MaxTrianglePoints != 2 {
		t.Errorf("expected max triangle points 2, got %d", cfg.Sampler.MaxTrianglePoints)
	}
	if cfg.Sampler.DefaultColor != [3]float64{0.5, 0.25, 1} {
		t.Errorf("expected default color [0.5 0.25 1], got %v", cfg.Sampler.DefaultColor)
	}
	if cfg.Sampler.NormalizeSize {
		t.Error("expected normalize_size to be false")
	}
	if !cfg.Sampler.MoveMeanToOrigin {
		t.Error("expected move_mean_to_origin to keep its default")
	}
	if cfg.Sampler.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Sampler.Workers)
	}

	if cfg.Camera.FovY != 0.8 || cfg.Camera.Far != 500 {
		t.Errorf("expected fov 0.8 far 500, got %v %v", cfg.Camera.FovY, cfg.Camera.Far)
	}
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected near to keep its default, got %v", cfg.Camera.Near)
	}

	if cfg.Scene.SplitThreshold != 5000 || cfg.Scene.Static {
		t.Errorf("expected split 5000 dynamic, got %d static=%v", cfg.Scene.SplitThreshold, cfg.Scene.Static)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "splatview.log" {
		t.Errorf("expected log file 'splatview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
sampler:
  max_triangle_points: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "splatview.yaml")
	if err := os.WriteFile(configPath, []byte("sampler:\n  max_triangle_pts: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "splatview.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("expected empty file to load, got %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults to survive an empty file, got %+v", cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/splatview.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero triangle points", func(c *Config) { c.Sampler.MaxTrianglePoints = 0 }},
		{"zero point cap", func(c *Config) { c.Sampler.PointCap = 0 }},
		{"negative workers", func(c *Config) { c.Sampler.Workers = -1 }},
		{"color out of range", func(c *Config) { c.Sampler.DefaultColor = [3]float64{1, 2, 0} }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = gomath.Pi }},
		{"zero aspect", func(c *Config) { c.Camera.Aspect = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"zero distance", func(c *Config) { c.Camera.Distance = 0 }},
		{"negative split", func(c *Config) { c.Scene.SplitThreshold = -1 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's config directory out of the lookup
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create splatview.yaml in current directory
	if err := os.WriteFile(fileName, []byte("sampler:\n  max_triangle_points: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find splatview.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "sampler flags",
			setup: func() {
				*flagMaxTrianglePoints = 3
				*flagPointCap = 1000
				*flagWorkers = 0
			},
			verify: func(cfg *Config) {
				if cfg.Sampler.MaxTrianglePoints != 3 {
					t.Errorf("expected max triangle points 3, got %d", cfg.Sampler.MaxTrianglePoints)
				}
				if cfg.Sampler.PointCap != 1000 {
					t.Errorf("expected point cap 1000, got %d", cfg.Sampler.PointCap)
				}
				if cfg.Sampler.Workers != 0 {
					t.Errorf("expected workers 0, got %d", cfg.Sampler.Workers)
				}
			},
			teardown: func() {
				*flagMaxTrianglePoints = 0
				*flagPointCap = 0
				*flagWorkers = -1
			},
		},
		{
			name: "raw flag",
			setup: func() {
				*flagRaw = true
			},
			verify: func(cfg *Config) {
				if cfg.Sampler.MoveMeanToOrigin || cfg.Sampler.NormalizeSize {
					t.Error("expected raw flag to disable recentering and normalization")
				}
			},
			teardown: func() {
				*flagRaw = false
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagSplit = 0
				*flagDynamic = true
			},
			verify: func(cfg *Config) {
				if cfg.Scene.SplitThreshold != 0 {
					t.Errorf("expected split 0, got %d", cfg.Scene.SplitThreshold)
				}
				if cfg.Scene.Static {
					t.Error("expected dynamic flag to clear static")
				}
			},
			teardown: func() {
				*flagSplit = -1
				*flagDynamic = false
			},
		},
		{
			name: "camera flags",
			setup: func() {
				*flagFov = 90
				*flagAspect = 2
				*flagDistance = 12
			},
			verify: func(cfg *Config) {
				if gomath.Abs(cfg.Camera.FovY-gomath.Pi/2) > 1e-12 {
					t.Errorf("expected fov pi/2, got %v", cfg.Camera.FovY)
				}
				if cfg.Camera.Aspect != 2 || cfg.Camera.Distance != 12 {
					t.Errorf("expected aspect 2 distance 12, got %v %v", cfg.Camera.Aspect, cfg.Camera.Distance)
				}
			},
			teardown: func() {
				*flagFov = 0
				*flagAspect = 0
				*flagDistance = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "splatview.yaml")

	yamlContent := `
sampler:
  max_triangle_points: 8
  point_cap: 5000
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagMaxTrianglePoints = 2
	defer func() {
		*flagConfig = ""
		*flagMaxTrianglePoints = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Triangle points should be from flag (2), not file (8)
	if cfg.Sampler.MaxTrianglePoints != 2 {
		t.Errorf("expected max triangle points 2 from flag, got %d", cfg.Sampler.MaxTrianglePoints)
	}

	// Point cap should be from file (5000) since no flag override
	if cfg.Sampler.PointCap != 5000 {
		t.Errorf("expected point cap 5000 from file, got %d", cfg.Sampler.PointCap)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "splatview.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  near: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "splatview.yaml")

	cfg := Default()
	cfg.Sampler.MaxTrianglePoints = 7
	cfg.Logging.LogFile = "out.log"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip: got %+v, want %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)

	cfg := Default()
	cfg.Scene.SplitThreshold = 42
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, filepath.Join(ConfigDir(), fileName)); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Scene.SplitThreshold != 42 {
		t.Errorf("expected split threshold 42, got %d", loaded.Scene.SplitThreshold)
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splatview.yaml")

	cfg := Default()
	cfg.Camera.Near = 0
	if err := cfg.SaveTo(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file written, got %v", err)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Sampler.DefaultColor = [3]float64{0.2, 0.4, 0.6}

	opts := cfg.Sampler.Options(nil)
	if opts.DefaultColor == nil || *opts.DefaultColor != math.V3(0.2, 0.4, 0.6) {
		t.Errorf("DefaultColor: got %v", opts.DefaultColor)
	}
	if _, err := splat.New(opts); err != nil {
		t.Errorf("splat.New with default config: %v", err)
	}

	if p := cfg.Camera.Projection(); p.FovY != cfg.Camera.FovY || p.Far != cfg.Camera.Far {
		t.Errorf("Projection: got %+v", p)
	}

	cfg.Camera.Pitch = 0.3
	cfg.Camera.Yaw = 1.1
	cam := cfg.Camera.OrbitCamera()
	if gomath.Abs(cam.Pitch-0.3) > 1e-12 || gomath.Abs(cam.Yaw-1.1) > 1e-12 || cam.Distance != cfg.Camera.Distance {
		t.Errorf("OrbitCamera: got pitch %v yaw %v distance %v", cam.Pitch, cam.Yaw, cam.Distance)
	}

	if sc := cfg.Scene.Config(); sc.SplitThreshold != cfg.Scene.SplitThreshold || sc.Static != cfg.Scene.Static {
		t.Errorf("Scene.Config: got %+v", sc)
	}
}
