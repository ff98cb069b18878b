package render

import (
	"image/color"

	"fortio.org/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/fonts"
	"product-viewer/internal/ui"
)

const (
	// fontBaseSize is the rasterization size of the loaded font; text at other sizes
	// is scaled from it.
	fontBaseSize = 48
	textSpacing  = 1
)

// Canvas implements ui.Canvas on the raylib window.
type Canvas struct {
	font   rl.Font
	loaded bool
}

// NewCanvas loads the named font (see fonts.Load) for UI text. When the font cannot be
// loaded the canvas falls back to raylib's built-in font. Requires a live GL context.
func NewCanvas(fontName string) *Canvas {
	c := &Canvas{font: rl.GetFontDefault()}
	if fontName == "" {
		fontName = fonts.Regular
	}
	data, source, err := fonts.Load(fontName)
	if err != nil {
		log.Warnf("render: font %q: %v, using default", fontName, err)
		return c
	}
	f := rl.LoadFontFromMemory(".ttf", data, fontBaseSize, nil)
	if !rl.IsFontValid(f) {
		log.Warnf("render: font %q from %s did not load, using default", fontName, source)
		return c
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	c.font, c.loaded = f, true
	log.Infof("render: UI font %s", source)
	return c
}

var _ ui.Canvas = (*Canvas)(nil)

// Size returns the current screen size.
func (c *Canvas) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// FillRect fills r.
func (c *Canvas) FillRect(r ui.Rect, col color.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(r.X, r.Y, r.Width, r.Height), col)
}

// StrokeRect outlines r with a one-pixel line.
func (c *Canvas) StrokeRect(r ui.Rect, col color.RGBA) {
	rl.DrawRectangleLinesEx(rl.NewRectangle(r.X, r.Y, r.Width, r.Height), 1, col)
}

// DrawText draws text with its top-left corner at (x, y).
func (c *Canvas) DrawText(text string, x, y, size float32, col color.RGBA) {
	rl.DrawTextEx(c.font, text, rl.NewVector2(x, y), size, textSpacing, col)
}

// MeasureText returns the width of text at size.
func (c *Canvas) MeasureText(text string, size float32) float32 {
	return rl.MeasureTextEx(c.font, text, size, textSpacing).X
}

// Close unloads the font when it was loaded from TTF data.
func (c *Canvas) Close() {
	if c.loaded {
		rl.UnloadFont(c.font)
		c.loaded = false
	}
}
