package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"product-viewer/internal/model"
)

// MaterialSpec is the YAML form of a model.Material.
type MaterialSpec struct {
	Color             string  `yaml:"color"`
	Roughness         float32 `yaml:"roughness"`
	Metalness         float32 `yaml:"metalness"`
	Emissive          string  `yaml:"emissive,omitempty"`
	EmissiveIntensity float32 `yaml:"emissive_intensity,omitempty"`
	Surface           string  `yaml:"surface,omitempty"`
	BumpScale         float32 `yaml:"bump_scale,omitempty"`
}

// Theme is a named chair appearance.
type Theme struct {
	Legs        MaterialSpec `yaml:"legs"`
	Wood        MaterialSpec `yaml:"wood"`
	SeatContour float32      `yaml:"seat_contour"`
	BackCurve   float32      `yaml:"back_curve"`
	BackTilt    float32      `yaml:"back_tilt"`
}

// DefaultThemes returns the built-in themes. "modern" matches model.DefaultAppearance.
func DefaultThemes() map[string]Theme {
	return map[string]Theme{
		"modern": {
			Legs: MaterialSpec{Color: "#3e2723", Roughness: 0.7, Metalness: 0.5,
				Emissive: "#1a0033", EmissiveIntensity: 0.1, Surface: model.SurfaceBrushed, BumpScale: 0.05},
			Wood:        MaterialSpec{Color: "#a0522d", Roughness: 0.7, Metalness: 0.1, Surface: model.SurfaceGrain, BumpScale: 0.1},
			SeatContour: 0.1,
			BackCurve:   0.2,
			BackTilt:    0.12,
		},
		"classic": {
			Legs:        MaterialSpec{Color: "#5d4037", Roughness: 0.8, Surface: model.SurfaceGrain, BumpScale: 0.08},
			Wood:        MaterialSpec{Color: "#8b5a2b", Roughness: 0.8, Metalness: 0.05, Surface: model.SurfaceGrain, BumpScale: 0.15},
			SeatContour: 0.1,
			BackCurve:   0.2,
			BackTilt:    0.12,
		},
		"studio": {
			Legs:        MaterialSpec{Color: "#b0bec5", Roughness: 0.3, Metalness: 0.9, Surface: model.SurfaceBrushed, BumpScale: 0.04},
			Wood:        MaterialSpec{Color: "#eceff1", Roughness: 0.5, Metalness: 0},
			SeatContour: 0.08,
			BackCurve:   0.15,
			BackTilt:    0.1,
		},
	}
}

// ThemeNames returns the configured theme names, sorted.
func (c Viewer) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for n := range c.Themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Appearance resolves the selected theme into a chair appearance.
func (c Viewer) Appearance() (model.Appearance, error) {
	th, ok := c.Themes[c.Theme]
	if !ok {
		return model.Appearance{}, fmt.Errorf("%w %q (have %s)", ErrUnknownTheme, c.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	legs, err := th.Legs.material()
	if err != nil {
		return model.Appearance{}, fmt.Errorf("config: theme %q legs: %w", c.Theme, err)
	}
	wood, err := th.Wood.material()
	if err != nil {
		return model.Appearance{}, fmt.Errorf("config: theme %q wood: %w", c.Theme, err)
	}
	return model.Appearance{
		Name:        c.Theme,
		Legs:        legs,
		Wood:        wood,
		SeatContour: th.SeatContour,
		BackCurve:   th.BackCurve,
		BackTilt:    th.BackTilt,
	}, nil
}

func (s MaterialSpec) material() (model.Material, error) {
	col, err := ParseColor(s.Color)
	if err != nil {
		return model.Material{}, err
	}
	m := model.Material{
		Color:             col,
		Roughness:         s.Roughness,
		Metalness:         s.Metalness,
		EmissiveIntensity: s.EmissiveIntensity,
		Surface:           s.Surface,
		BumpScale:         s.BumpScale,
	}
	if s.Emissive != "" {
		if m.Emissive, err = ParseColor(s.Emissive); err != nil {
			return model.Material{}, err
		}
	}
	return m, nil
}

// ParseColor parses "#rrggbb", "#rgb" or "0xrrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	default:
		return color.RGBA{}, fmt.Errorf("color %q: missing # or 0x prefix", s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return model.Hex(uint32(v)), nil
}

// ColorOr parses s, falling back when it is not a valid color.
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
