package debug

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-viewer/internal/ui"
)

type textCanvas struct {
	texts []string
	xs    []float32
}

func (c *textCanvas) Size() (int, int)                       { return 800, 600 }
func (c *textCanvas) FillRect(ui.Rect, color.RGBA)            {}
func (c *textCanvas) StrokeRect(ui.Rect, color.RGBA)          {}
func (c *textCanvas) MeasureText(s string, _ float32) float32 { return float32(len(s)) * 10 }
func (c *textCanvas) DrawText(s string, x, _, _ float32, _ color.RGBA) {
	c.texts = append(c.texts, s)
	c.xs = append(c.xs, x)
}

func TestHiddenByDefault(t *testing.T) {
	d := New(func() int { return 60 }, nil)
	c := &textCanvas{}
	d.Draw(c)
	assert.Empty(t, c.texts)
	assert.False(t, d.Visible())
}

func TestToggleShowsFpsAndMem(t *testing.T) {
	d := New(func() int { return 58 }, func() []string { return []string{"[12:00:00] ready"} })
	require.True(t, d.Toggle())
	c := &textCanvas{}
	d.Draw(c)
	require.Len(t, c.texts, 3)
	assert.Equal(t, "FPS: 58", c.texts[0])
	assert.True(t, strings.HasPrefix(c.texts[1], "Mem: "))
	assert.Equal(t, "[12:00:00] ready", c.texts[2])
	assert.Equal(t, float32(800-70-fpsPadding), c.xs[0], "right aligned")

	assert.False(t, d.Toggle())
	assert.Empty(t, d.Text())
}

func TestFpsTextRefreshesOnInterval(t *testing.T) {
	fps := 30
	d := New(func() int { return fps }, nil)
	d.SetShowFPS(true)
	c := &textCanvas{}
	d.Draw(c)
	fps = 60
	d.Draw(c)
	assert.Equal(t, []string{"FPS: 30"}, d.Text())
	for i := 0; i < updateInterval; i++ {
		d.Draw(c)
	}
	assert.Equal(t, []string{"FPS: 60"}, d.Text())
}
