package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cube-showcase/internal/bloom"
	"cube-showcase/internal/camera"
	"cube-showcase/internal/fonts"
	"cube-showcase/internal/input"
	"cube-showcase/internal/orbit"
)

// DefaultPath is the config file location, relative to the process working directory.
const DefaultPath = "config/showcase.yaml"

// Prefs holds every tunable of the showcase. Zero-valued fields in a loaded file are
// not filled from defaults; Load starts from Default and overlays the file.
type Prefs struct {
	Scene   SceneConfig       `yaml:"scene"`
	Camera  CameraConfig      `yaml:"camera"`
	Orbit   OrbitConfig       `yaml:"orbit"`
	Bloom   BloomConfig       `yaml:"bloom"`
	Assets  AssetsConfig      `yaml:"assets"`
	Catalog string            `yaml:"catalog,omitempty"`
	Window  WindowConfig      `yaml:"window"`
	UI      UIConfig          `yaml:"ui"`
	Debug   DebugConfig       `yaml:"debug"`
	Log     LogConfig         `yaml:"log"`
	Keys    map[string]string `yaml:"keys,omitempty"`
}

// SceneConfig controls the object field.
type SceneConfig struct {
	ObjectCount  int     `yaml:"object_count"`
	Radius       float32 `yaml:"radius"`
	RotationRate float32 `yaml:"rotation_rate"` // radians per second
	Seed         int64   `yaml:"seed"`          // 0 picks a time-based seed
	FogDensity   float32 `yaml:"fog_density"`
}

// CameraConfig mirrors camera.Config.
type CameraConfig struct {
	FOV          float32 `yaml:"fov"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	StartZ       float32 `yaml:"start_z"`
	IntroTargetZ float32 `yaml:"intro_target_z"`
	IntroStep    float32 `yaml:"intro_step"`
	MoveSpeed    float32 `yaml:"move_speed"`
	MinDistance  float32 `yaml:"min_distance"`
}

// OrbitConfig controls pointer orbiting.
type OrbitConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Frequency   float64 `yaml:"frequency"`
	Damping     float64 `yaml:"damping"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	MaxDistance float32 `yaml:"max_distance"`
}

// BloomConfig holds the starting bloom parameters and the key step.
type BloomConfig struct {
	Step      float32 `yaml:"step"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
}

// AssetsConfig lists the textures to load. Relative paths resolve against Dir; http(s)
// URLs are downloaded into CacheDir first.
type AssetsConfig struct {
	Dir         string   `yaml:"dir"`
	CacheDir    string   `yaml:"cache_dir"`
	Textures    []string `yaml:"textures"`
	TextureSize int      `yaml:"texture_size"`
}

// WindowConfig controls the window backend.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Fullscreen bool   `yaml:"fullscreen"`
	StartGate  bool   `yaml:"start_gate"`
}

// UIConfig selects the overlay look. An empty Stylesheet uses the built-in one; Font is a
// file path or a family name looked up under FontDir.
type UIConfig struct {
	Stylesheet string `yaml:"stylesheet,omitempty"`
	Font       string `yaml:"font,omitempty"`
	FontDir    string `yaml:"font_dir"`
}

// DebugConfig toggles the HUD lines.
type DebugConfig struct {
	ShowFPS   bool `yaml:"show_fps"`
	ShowBloom bool `yaml:"show_bloom"`
	ShowMem   bool `yaml:"show_mem"`
}

// LogConfig controls the log file and level (debug, info, warn, error).
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the reference configuration.
func Default() Prefs {
	cam := camera.DefaultConfig()
	orb := orbit.DefaultConfig()
	return Prefs{
		Scene: SceneConfig{
			ObjectCount:  1000,
			Radius:       45,
			RotationRate: 0.1,
			FogDensity:   0.035,
		},
		Camera: CameraConfig{
			FOV:          cam.FOV,
			Near:         cam.Near,
			Far:          cam.Far,
			StartZ:       cam.StartZ,
			IntroTargetZ: cam.IntroTargetZ,
			IntroStep:    cam.IntroStep,
			MoveSpeed:    cam.MoveSpeed,
			MinDistance:  cam.MinDistance,
		},
		Orbit: OrbitConfig{
			Enabled:     true,
			Frequency:   orb.Frequency,
			Damping:     orb.Damping,
			RotateSpeed: orb.RotateSpeed,
			ZoomSpeed:   orb.ZoomSpeed,
			MaxDistance: orb.MaxDistance,
		},
		Bloom: BloomConfig{Step: bloom.DefaultStep},
		Assets: AssetsConfig{
			Dir:      "assets/img",
			CacheDir: "assets/img/downloaded",
			Textures: []string{
				"cpp_logo.png",
				"java_logo.png",
				"rust_logo.png",
				"go_logo.png",
				"python_logo.png",
				"js_logo.png",
				"react_logo.png",
				"heka_logo.png",
				"audiokinetic_logo.png",
				"dormakaba_logo.png",
			},
			TextureSize: 256,
		},
		Window: WindowConfig{
			Title:     "showcase",
			Width:     1280,
			Height:    720,
			FPS:       60,
			StartGate: true,
		},
		UI:  UIConfig{FontDir: fonts.DefaultDir},
		Log: LogConfig{Path: "logs/showcase.txt", Level: "info"},
	}
}

// Load reads prefs from path over Default. A missing file yields Default and no error;
// a file that does not parse is an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return p, nil
}

// Save writes prefs to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the scene cannot run with.
func (p Prefs) Validate() error {
	switch {
	case p.Scene.ObjectCount < 0:
		return fmt.Errorf("scene.object_count must not be negative")
	case p.Scene.Radius <= 0:
		return fmt.Errorf("scene.radius must be positive")
	case p.Camera.Near <= 0 || p.Camera.Far <= p.Camera.Near:
		return fmt.Errorf("camera.near/far must satisfy 0 < near < far")
	case p.Camera.MinDistance < 0:
		return fmt.Errorf("camera.min_distance must not be negative")
	case p.Camera.IntroStep <= 0:
		return fmt.Errorf("camera.intro_step must be positive")
	case p.Camera.MoveSpeed < 0:
		return fmt.Errorf("camera.move_speed must not be negative")
	case p.Bloom.Step < 0:
		return fmt.Errorf("bloom.step must not be negative")
	case p.Bloom.Strength < 0 || p.Bloom.Radius < 0 || p.Bloom.Threshold < 0:
		return fmt.Errorf("bloom.strength, bloom.radius and bloom.threshold must not be negative")
	}
	if _, err := input.ParseBindings(p.Keys); err != nil {
		return err
	}
	return nil
}

// CameraRig returns the camera constants.
func (p Prefs) CameraRig() camera.Config {
	c := p.Camera
	return camera.Config{
		FOV:          c.FOV,
		Near:         c.Near,
		Far:          c.Far,
		StartZ:       c.StartZ,
		IntroTargetZ: c.IntroTargetZ,
		IntroStep:    c.IntroStep,
		MoveSpeed:    c.MoveSpeed,
		MinDistance:  c.MinDistance,
	}
}

// OrbitControls returns the orbit settings for the window frame rate.
func (p Prefs) OrbitControls() orbit.Config {
	o := orbit.DefaultConfig()
	o.FPS = p.Window.FPS
	o.Frequency = p.Orbit.Frequency
	o.Damping = p.Orbit.Damping
	o.RotateSpeed = p.Orbit.RotateSpeed
	o.ZoomSpeed = p.Orbit.ZoomSpeed
	o.MinDistance = p.Camera.MinDistance
	o.MaxDistance = p.Orbit.MaxDistance
	return o
}

// InitialBloom returns the starting bloom parameters.
func (p Prefs) InitialBloom() bloom.Params {
	return bloom.Params{Strength: p.Bloom.Strength, Radius: p.Bloom.Radius, Threshold: p.Bloom.Threshold}
}

// Bindings returns the key bindings, defaults when none are configured.
func (p Prefs) Bindings() input.Bindings {
	b, err := input.ParseBindings(p.Keys)
	if err != nil || len(b) == 0 {
		return input.DefaultBindings()
	}
	return b
}
