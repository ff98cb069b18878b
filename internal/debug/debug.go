package debug

import (
	"fmt"
	"image/color"
	"runtime"

	"product-viewer/internal/ui"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	logFontSize   = 14
	logLineHeight = logFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	hudGreen = color.RGBA{R: 0, G: 158, B: 47, A: 255}
	hudGrey  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// Debug holds runtime debugging overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool
	fps          func() int
	lines        func() []string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden. fps reports the current frame
// rate; lines, which may be nil, supplies recent log lines.
func New(fps func() int, lines func() []string) *Debug {
	return &Debug{fps: fps, lines: lines}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Visible reports whether any overlay is on.
func (d *Debug) Visible() bool { return d.ShowFPS || d.ShowMemAlloc || d.ShowLog }

// Toggle shows every overlay when all are off and hides them all otherwise.
func (d *Debug) Toggle() bool {
	on := !d.Visible()
	d.ShowFPS, d.ShowMemAlloc, d.ShowLog = on, on, on
	return on
}

// Text returns the FPS and memory lines as they would be drawn now.
func (d *Debug) Text() []string {
	var out []string
	if d.ShowFPS && d.lastFpsText != "" {
		out = append(out, d.lastFpsText)
	}
	if d.ShowMemAlloc && d.lastMemText != "" {
		out = append(out, d.lastMemText)
	}
	return out
}

// Draw renders any enabled debug overlays right-aligned at the top of the canvas, with
// recent log lines at the bottom-left. Text is only recomputed every updateInterval
// frames to limit allocations.
func (d *Debug) Draw(c ui.Canvas) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if update {
		d.refresh()
	}

	screenW, screenH := c.Size()
	y := float32(fpsPadding)
	for _, text := range d.Text() {
		x := float32(screenW) - c.MeasureText(text, fpsFontSize) - fpsPadding
		c.DrawText(text, x, y, fpsFontSize, hudGreen)
		y += fpsLineHeight
	}

	if d.ShowLog && d.lines != nil {
		lines := d.lines()
		y := float32(screenH) - fpsPadding - float32(len(lines))*logLineHeight
		for _, line := range lines {
			c.DrawText(line, fpsPadding, y, logFontSize, hudGrey)
			y += logLineHeight
		}
	}
}

func (d *Debug) refresh() {
	if d.ShowFPS && d.fps != nil {
		d.lastFpsText = fmt.Sprintf("FPS: %d", d.fps())
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.lastMemStats)
		mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
		d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
	}
}
