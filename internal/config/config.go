package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the viewer config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// ErrUnknownTheme is returned when the selected theme is not defined.
var ErrUnknownTheme = errors.New("config: unknown theme")

// Viewer is the complete viewer configuration. Zero sections are filled from Default on Load.
type Viewer struct {
	Window      Window      `yaml:"window"`
	Camera      Camera      `yaml:"camera"`
	Controls    Controls    `yaml:"controls"`
	Animation   Animation   `yaml:"animation"`
	Interaction Interaction `yaml:"interaction"`
	Lighting    Lighting    `yaml:"lighting"`
	UI          UI          `yaml:"ui"`
	Debug       Debug       `yaml:"debug"`
	LogLevel    string      `yaml:"log_level"`
	// Theme names the entry in Themes used to build the chair.
	Theme  string           `yaml:"theme"`
	Themes map[string]Theme `yaml:"themes"`
}

// Window holds the initial window geometry and frame pacing.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	MSAA      bool   `yaml:"msaa"`
}

// Camera is the initial perspective camera.
type Camera struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// Controls configures orbit controls.
type Controls struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	// AutoRotateSpeed 1.0 is one full orbit per minute.
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// Animation configures the auto-rotate camera bob and FOV oscillation.
type Animation struct {
	AutoRotate bool    `yaml:"auto_rotate"`
	FOVMin     float32 `yaml:"fov_min"`
	FOVMax     float32 `yaml:"fov_max"`
	// FOVRate is in degrees per second.
	FOVRate      float32 `yaml:"fov_rate"`
	BobAmplitude float32 `yaml:"bob_amplitude"`
	// BobFrequency multiplies wall-clock milliseconds.
	BobFrequency float32 `yaml:"bob_frequency"`
}

// Interaction configures hover highlight and click pulse.
type Interaction struct {
	HighlightColor string        `yaml:"highlight_color"`
	PulseScale     float32       `yaml:"pulse_scale"`
	PulseDuration  time.Duration `yaml:"pulse_duration"`
}

// Light is one light of the rig. Kind is "ambient" or "directional".
type Light struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Color      string     `yaml:"color"`
	Intensity  float32    `yaml:"intensity"`
	Position   [3]float32 `yaml:"position"`
	CastShadow bool       `yaml:"cast_shadow"`
}

// Lighting holds the light rig and scene-level shading options.
type Lighting struct {
	Background string  `yaml:"background"`
	Shadows    bool    `yaml:"shadows"`
	Grid       bool    `yaml:"grid"`
	Lights     []Light `yaml:"lights"`
}

// UI configures overlay widgets.
type UI struct {
	// Stylesheet is a CSS file replacing the embedded one; empty keeps the default.
	Stylesheet string `yaml:"stylesheet"`
	// Font is an embedded font name, a TTF path or a family under assets/fonts.
	Font         string        `yaml:"font"`
	LoadingDelay time.Duration `yaml:"loading_delay"`
	FontSize     int           `yaml:"font_size"`
}

// Debug mirrors the debug HUD toggles.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
}

// Default returns the stock viewer configuration.
func Default() Viewer {
	return Viewer{
		Window: Window{
			Title:     "Product Viewer",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			MSAA:      true,
		},
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 3, 5},
		},
		Controls: Controls{
			EnableDamping:   true,
			DampingFactor:   0.05,
			MinDistance:     2,
			MaxDistance:     10,
			RotateSpeed:     1,
			ZoomSpeed:       1,
			AutoRotateSpeed: 1,
		},
		Animation: Animation{
			AutoRotate:   true,
			FOVMin:       50,
			FOVMax:       70,
			FOVRate:      0.1,
			BobAmplitude: 0.0005,
			BobFrequency: 0.001,
		},
		Interaction: Interaction{
			HighlightColor: "#00ff00",
			PulseScale:     1.1,
			PulseDuration:  200 * time.Millisecond,
		},
		Lighting: Lighting{
			Background: "#f0f0f0",
			Shadows:    true,
			Grid:       true,
			Lights: []Light{
				{Name: "ambient", Kind: "ambient", Color: "#ffffff", Intensity: 0.7},
				{Name: "key", Kind: "directional", Color: "#fff4e6", Intensity: 1.2, Position: [3]float32{5, 10, 7}, CastShadow: true},
				{Name: "fill", Kind: "directional", Color: "#667788", Intensity: 0.5, Position: [3]float32{-5, 5, -5}},
			},
		},
		UI: UI{
			LoadingDelay: 1500 * time.Millisecond,
			FontSize:     20,
		},
		LogLevel: "info",
		Theme:    "modern",
		Themes:   DefaultThemes(),
	}
}

// Load reads the config at path. A missing file yields Default(); a malformed one is an error.
// Sections absent from the file keep their default values.
func Load(path string) (Viewer, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	// Keep built-in themes available next to user-defined ones.
	for name, th := range DefaultThemes() {
		if _, ok := cfg.Themes[name]; !ok {
			if cfg.Themes == nil {
				cfg.Themes = map[string]Theme{}
			}
			cfg.Themes[name] = th
		}
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Viewer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Encode writes cfg to w as YAML with two-space indentation.
func Encode(w io.Writer, cfg Viewer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

// Clone returns a deep copy, so callers can tweak a config without aliasing slices or maps.
func (c Viewer) Clone() Viewer {
	var out Viewer
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		return c
	}
	return out
}

// Env variables read by ApplyEnv.
const (
	EnvTheme    = "VIEWER_THEME"
	EnvFPS      = "VIEWER_FPS"
	EnvLogLevel = "VIEWER_LOG_LEVEL"
	EnvWidth    = "VIEWER_WIDTH"
	EnvHeight   = "VIEWER_HEIGHT"
)

// ApplyEnv overrides fields from VIEWER_* environment variables. lookup is usually os.LookupEnv.
func (c *Viewer) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTheme); ok && strings.TrimSpace(v) != "" {
		c.Theme = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvFPS, &c.Window.TargetFPS},
		{EnvWidth, &c.Window.Width},
		{EnvHeight, &c.Window.Height},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", e.key, v, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c Viewer) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TargetFPS <= 0:
		return fmt.Errorf("config: target_fps %d must be positive", c.Window.TargetFPS)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("config: camera fov %.1f out of (0, 180)", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("config: camera near/far %.3f/%.3f invalid", c.Camera.Near, c.Camera.Far)
	case c.Controls.MinDistance <= 0 || c.Controls.MaxDistance < c.Controls.MinDistance:
		return fmt.Errorf("config: distance clamp [%.2f, %.2f] invalid", c.Controls.MinDistance, c.Controls.MaxDistance)
	case c.Controls.DampingFactor < 0 || c.Controls.DampingFactor >= 1:
		return fmt.Errorf("config: damping_factor %.3f out of [0, 1)", c.Controls.DampingFactor)
	case c.Animation.FOVMin <= 0 || c.Animation.FOVMax <= c.Animation.FOVMin:
		return fmt.Errorf("config: fov bounds [%.1f, %.1f] invalid", c.Animation.FOVMin, c.Animation.FOVMax)
	case c.Interaction.PulseScale <= 0:
		return fmt.Errorf("config: pulse_scale %.2f must be positive", c.Interaction.PulseScale)
	case c.Interaction.PulseDuration <= 0:
		return fmt.Errorf("config: pulse_duration %s must be positive", c.Interaction.PulseDuration)
	}
	if _, err := ParseColor(c.Interaction.HighlightColor); err != nil {
		return fmt.Errorf("config: highlight_color: %w", err)
	}
	if _, err := ParseColor(c.Lighting.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	for _, l := range c.Lighting.Lights {
		if l.Kind != "ambient" && l.Kind != "directional" {
			return fmt.Errorf("config: light %q: unknown kind %q", l.Name, l.Kind)
		}
		if _, err := ParseColor(l.Color); err != nil {
			return fmt.Errorf("config: light %q: %w", l.Name, err)
		}
	}
	if _, err := c.Appearance(); err != nil {
		return err
	}
	return nil
}
