// Package scene holds what is drawn each frame (products, lights, background and the
// floor grid) and bootstraps the stage: camera, renderer and orbit controls bound to a
// drawing surface.
package scene

import (
	"image/color"

	"product-viewer/internal/lighting"
	"product-viewer/internal/model"
)

// DefaultBackground is the light grey clear color.
var DefaultBackground = model.Hex(0xf0f0f0)

// Scene is the render list. Lights are keyed by name: setting a light with a known name
// replaces it in place.
type Scene struct {
	Background  color.RGBA
	GridVisible bool
	Shadows     bool

	products []*model.Product
	lights   []lighting.Light
}

// New returns an empty scene with the default background. Grid is visible by default.
func New() *Scene {
	return &Scene{Background: DefaultBackground, GridVisible: true}
}

// Add puts a product in the scene. Adding the same product twice is a no-op.
func (s *Scene) Add(p *model.Product) {
	for _, q := range s.products {
		if q == p {
			return
		}
	}
	s.products = append(s.products, p)
}

// Products returns the products in insertion order.
func (s *Scene) Products() []*model.Product { return s.products }

// SetLight adds l or replaces the light with the same name.
func (s *Scene) SetLight(l lighting.Light) {
	for i := range s.lights {
		if s.lights[i].Name == l.Name {
			s.lights[i] = l
			return
		}
	}
	s.lights = append(s.lights, l)
}

// Lights returns the lights in insertion order.
func (s *Scene) Lights() []lighting.Light { return s.lights }

// Light returns the light called name.
func (s *Scene) Light(name string) (lighting.Light, bool) {
	for _, l := range s.lights {
		if l.Name == name {
			return l, true
		}
	}
	return lighting.Light{}, false
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Walk visits every part of every product.
func (s *Scene) Walk(fn func(*model.Part) bool) {
	for _, p := range s.products {
		cont := true
		p.Walk(func(part *model.Part) bool {
			cont = fn(part)
			return cont
		})
		if !cont {
			return
		}
	}
}
