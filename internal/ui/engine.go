package ui

import (
	_ "embed"
	"image/color"
	"os"
)

const defaultFontSize = 20

//go:embed default.css
var defaultCSS string

// DefaultStylesheet returns the embedded viewer stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		return &Stylesheet{}
	}
	return sheet
}

// Canvas is the 2D drawing surface the engine paints on.
type Canvas interface {
	Size() (width, height int)
	FillRect(r Rect, c color.RGBA)
	StrokeRect(r Rect, c color.RGBA)
	DrawText(text string, x, y, size float32, c color.RGBA)
	MeasureText(text string, size float32) float32
}

// Engine holds the current stylesheet and nodes and draws them on a Canvas.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when the sheet, the nodes or the
// screen size change.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	screenW      int
	screenH      int
	fontSize     int32
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{fontSize: defaultFontSize}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// SetFontSize sets the text size used when a style has no font-size.
func (e *Engine) SetFontSize(size int) {
	if size > 0 {
		e.fontSize = int32(size)
	}
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.cacheValid = false
}

// AddNodes appends several nodes.
func (e *Engine) AddNodes(nodes ...*Node) {
	e.nodes = append(e.nodes, nodes...)
	e.cacheValid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Nodes returns the nodes in draw order.
func (e *Engine) Nodes() []*Node { return e.nodes }

// Invalidate forces styles to be re-resolved, e.g. after a class change.
func (e *Engine) Invalidate() { e.cacheValid = false }

// resolveProps returns merged properties for a node (all matching rules; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		if Matches(rule.Selector, n) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style returns the resolved style of n after Layout.
func (e *Engine) Style(n *Node) (ComputedStyle, bool) {
	for i, m := range e.nodes {
		if m == n && i < len(e.cachedStyles) {
			return e.cachedStyles[i], true
		}
	}
	return ComputedStyle{}, false
}

// Layout resolves styles and node bounds for a screen of width x height.
func (e *Engine) Layout(width, height int) {
	if e.cacheValid && width == e.screenW && height == e.screenH {
		return
	}
	e.screenW, e.screenH = width, height
	e.cachedStyles = make([]ComputedStyle, len(e.nodes))
	for i, n := range e.nodes {
		style := ResolveProps(e.resolveProps(n))
		e.cachedStyles[i] = style
		n.Bounds = place(style, int32(width), int32(height))
	}
	e.cacheValid = true
}

// place computes bounds from style: size, then pixel or percentage position, then margins.
func place(style ComputedStyle, screenW, screenH int32) Rect {
	w, h := style.Width, style.Height
	if style.WidthPct >= 0 {
		w = screenW * style.WidthPct / 100
	}
	if style.HeightPct >= 0 {
		h = screenH * style.HeightPct / 100
	}
	x, y := style.Left, style.Top
	if style.LeftPct >= 0 {
		x = (screenW - w) * style.LeftPct / 100
	}
	if style.TopPct >= 0 {
		y = (screenH - h) * style.TopPct / 100
	}
	x += style.MarginLeft
	y += style.MarginTop
	return Rect{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

// Draw lays out and draws every visible node: background, border, then text.
func (e *Engine) Draw(c Canvas) {
	e.Layout(c.Size())
	for i, n := range e.nodes {
		if n.Hidden {
			continue
		}
		style := e.cachedStyles[i]
		b := n.Bounds
		if style.Background.A > 0 && b.Width > 0 && b.Height > 0 {
			c.FillRect(b, style.Background)
		}
		// Border (1px)
		if style.HasBorder && b.Width > 0 && b.Height > 0 {
			c.StrokeRect(b, style.Border)
		}
		if n.Text == "" {
			continue
		}
		size := float32(e.fontSize)
		if style.FontSize > 0 {
			size = float32(style.FontSize)
		}
		pad := float32(style.Padding)
		if pad <= 0 {
			pad = 4
		}
		x, y := b.X+pad, b.Y+pad
		if style.Center && b.Width > 0 {
			x = b.X + (b.Width-c.MeasureText(n.Text, size))/2
			if b.Height > 0 {
				y = b.Y + (b.Height-size)/2
			}
		}
		c.DrawText(n.Text, x, y, size, style.Color)
	}
}

// HitTest returns the topmost visible node at (x, y) that takes pointer input: a click
// target or a modal node. Layout must have run.
func (e *Engine) HitTest(x, y float32) (*Node, bool) {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Hidden || (n.OnClick == nil && !n.Modal) {
			continue
		}
		if n.Modal || n.Bounds.Contains(x, y) {
			return n, true
		}
	}
	return nil, false
}

// Click runs the click handler of the node under (x, y). It reports whether the UI
// consumed the click.
func (e *Engine) Click(x, y float32) bool {
	n, ok := e.HitTest(x, y)
	if !ok {
		return false
	}
	if n.OnClick != nil {
		n.OnClick()
	}
	return true
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
