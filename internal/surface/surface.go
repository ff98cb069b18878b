// Package surface generates the grayscale detail maps that give materials their wood
// grain or brushed-metal streaks. The renderer multiplies a part's base color by them.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/noise"
	"github.com/anthonynsimon/bild/transform"

	"product-viewer/internal/model"
)

// DefaultSize is the edge length in pixels of generated maps.
const DefaultSize = 256

// detailGain maps a material's BumpScale to detail contrast: 0.25 and above is full contrast.
const detailGain = 4

// Generate returns a size x size detail map for kind at the given strength, or nil when
// there is nothing to draw (plain surface or zero strength).
func Generate(kind string, strength float32, size int) (*image.RGBA, error) {
	if kind == model.SurfacePlain || strength <= 0 {
		return nil, nil
	}
	if size < 16 {
		return nil, fmt.Errorf("surface: size %d too small", size)
	}
	var img *image.RGBA
	switch kind {
	case model.SurfaceGrain:
		// Few coarse columns stretched across the width give long bands; blur softens them.
		src := noise.Generate(4, size/4, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
		img = blur.Gaussian(transform.Resize(src, size, size, transform.Linear), 1.5)
	case model.SurfaceBrushed:
		src := noise.Generate(8, size, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
		img = transform.Resize(src, size, size, transform.Linear)
	default:
		return nil, fmt.Errorf("surface: unknown kind %q", kind)
	}
	amount := strength * detailGain
	if amount > 1 {
		amount = 1
	}
	fade(img, amount)
	return img, nil
}

// fade pulls every pixel toward white so that amount 0 is flat white and 1 is the raw noise.
func fade(img *image.RGBA, amount float32) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.RGBAAt(x, y).R
			g := uint8(255 - amount*float32(255-v))
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
}

type key struct {
	kind     string
	strength float32
}

// Library caches generated maps by surface kind and strength, so parts sharing a
// material share a map.
type Library struct {
	size int
	mu   sync.Mutex
	maps map[key]*image.RGBA
}

// NewLibrary returns an empty cache producing size x size maps.
func NewLibrary(size int) *Library {
	if size <= 0 {
		size = DefaultSize
	}
	return &Library{size: size, maps: make(map[key]*image.RGBA)}
}

// For returns the detail map of m, generating it on first use. Plain materials yield nil.
func (l *Library) For(m model.Material) (*image.RGBA, error) {
	k := key{m.Surface, m.BumpScale}
	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.maps[k]; ok {
		return img, nil
	}
	img, err := Generate(m.Surface, m.BumpScale, l.size)
	if err != nil {
		return nil, err
	}
	l.maps[k] = img
	return img, nil
}

// Len returns the number of cached maps.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.maps)
}
