package config

import (
	"errors"
	"fmt"
	"os"

	"cod3rgl/internal/graphics"
	"cod3rgl/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the demo looks for its configuration file
const DefaultPath = "cod3rgl.yml"

// Config is the whole file configuration. Every field has a default; the
// file only needs to name what it overrides.
type Config struct {
	Window   WindowConfig `yaml:"window"`
	Render   RenderConfig `yaml:"render"`
	Shaders  ShaderConfig `yaml:"shaders"`
	Camera   CameraConfig `yaml:"camera"`
	FPSLimit int          `yaml:"fps_limit"`
	LogLevel string       `yaml:"log_level"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	Samples int    `yaml:"samples"`
	VSync   bool   `yaml:"vsync"`
}

type RenderConfig struct {
	// BufferCapacity is the element capacity of each position, color and
	// index buffer of a target
	BufferCapacity int    `yaml:"buffer_capacity"`
	MaxTargets     int    `yaml:"max_targets"`
	Rebase         string `yaml:"rebase"`
	ClearColor     Color  `yaml:"clear_color"`
}

type ShaderConfig struct {
	Vertex    string `yaml:"vertex"`
	Fragment  string `yaml:"fragment"`
	HotReload bool   `yaml:"hot_reload"`
}

type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Up          mgl32.Vec3 `yaml:"up"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:   1280,
			Height:  720,
			Title:   "CGame - Learn OpenGL",
			Samples: 8,
			VSync:   true,
		},
		Render: RenderConfig{
			BufferCapacity: graphics.DefaultBufferCapacity,
			MaxTargets:     graphics.DefaultMaxTargets,
			Rebase:         "vertices",
			ClearColor:     Color{0, 0, 0, 1},
		},
		Shaders: ShaderConfig{
			Vertex:    "assets/shaders/default.vert",
			Fragment:  "assets/shaders/default.frag",
			HotReload: true,
		},
		Camera: CameraConfig{
			Position:    mgl32.Vec3{0, 0, 10},
			Up:          mgl32.Vec3{0, 1, 0},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			FOV:         45,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error and
// yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Logger().Info("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	logging.Logger().Info("loaded config", "path", path)
	return cfg, nil
}

// Validate rejects settings the renderer cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("window samples must not be negative, got %d", c.Window.Samples))
	}
	if c.Render.BufferCapacity <= 0 {
		errs = append(errs, fmt.Errorf("render buffer_capacity must be positive, got %d", c.Render.BufferCapacity))
	}
	if c.Render.MaxTargets <= 0 {
		errs = append(errs, fmt.Errorf("render max_targets must be positive, got %d", c.Render.MaxTargets))
	}
	if _, err := graphics.ParseRebaseMode(c.Render.Rebase); err != nil {
		errs = append(errs, err)
	}
	if c.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit must not be negative, got %d", c.FPSLimit))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.FOV))
	}
	return errors.Join(errs...)
}

// RegistryOptions converts the render section for the target registry.
// Call Validate first; an unknown rebase name falls back to vertex counts.
func (c Config) RegistryOptions() graphics.RegistryOptions {
	mode, _ := graphics.ParseRebaseMode(c.Render.Rebase)
	return graphics.RegistryOptions{
		MaxTargets:     c.Render.MaxTargets,
		BufferCapacity: c.Render.BufferCapacity,
		Rebase:         mode,
	}
}
