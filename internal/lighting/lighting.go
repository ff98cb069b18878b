// Package lighting builds the light rig that illuminates the product: a soft ambient
// term, a warm key light that casts shadows and a cool fill light from the opposite side.
package lighting

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/config"
	"product-viewer/internal/model"
)

// Kind is the light type.
type Kind int

const (
	Ambient Kind = iota
	Directional
)

func (k Kind) String() string {
	if k == Directional {
		return "directional"
	}
	return "ambient"
}

// Names of the default rig's lights.
const (
	AmbientName = "ambient"
	KeyName     = "key"
	FillName    = "fill"
)

// Light is one light of the rig. Position is only meaningful for directional lights,
// which shine from Position toward the origin.
type Light struct {
	Name       string
	Kind       Kind
	Color      color.RGBA
	Intensity  float32
	Position   mgl32.Vec3
	CastShadow bool
}

// Direction returns the unit vector a directional light travels along.
func (l Light) Direction() mgl32.Vec3 {
	if l.Kind != Directional || l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}

// Radiance returns the light color scaled by intensity, as linear RGB.
func (l Light) Radiance() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(l.Color.R) / 255 * l.Intensity,
		float32(l.Color.G) / 255 * l.Intensity,
		float32(l.Color.B) / 255 * l.Intensity,
	}
}

// Sink receives lights. Implementations key lights by Name, so setting a light whose
// name is already present replaces it.
type Sink interface {
	SetLight(Light)
}

// Default returns the stock three-light rig.
func Default() []Light {
	return []Light{
		{Name: AmbientName, Kind: Ambient, Color: model.Hex(0xffffff), Intensity: 0.7},
		{Name: KeyName, Kind: Directional, Color: model.Hex(0xfff4e6), Intensity: 1.2,
			Position: mgl32.Vec3{5, 10, 7}, CastShadow: true},
		{Name: FillName, Kind: Directional, Color: model.Hex(0x667788), Intensity: 0.5,
			Position: mgl32.Vec3{-5, 5, -5}},
	}
}

// ApplyLighting adds the default rig to target.
func ApplyLighting(target Sink) {
	Apply(target, Default())
}

// Apply adds every light of rig to target, in order.
func Apply(target Sink, rig []Light) {
	for _, l := range rig {
		target.SetLight(l)
	}
}

// Rig converts the configured lights. An empty list yields Default().
func Rig(cfg config.Lighting) ([]Light, error) {
	if len(cfg.Lights) == 0 {
		return Default(), nil
	}
	rig := make([]Light, 0, len(cfg.Lights))
	for _, cl := range cfg.Lights {
		col, err := config.ParseColor(cl.Color)
		if err != nil {
			return nil, fmt.Errorf("lighting: %q: %w", cl.Name, err)
		}
		l := Light{
			Name:       cl.Name,
			Color:      col,
			Intensity:  cl.Intensity,
			Position:   mgl32.Vec3(cl.Position),
			CastShadow: cl.CastShadow,
		}
		switch cl.Kind {
		case "ambient":
			l.Kind = Ambient
		case "directional":
			l.Kind = Directional
		default:
			return nil, fmt.Errorf("lighting: %q: unknown kind %q", cl.Name, cl.Kind)
		}
		rig = append(rig, l)
	}
	return rig, nil
}
