package ui

import (
	"image/color"
	"strconv"
	"strings"

	"product-viewer/internal/config"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel", "#menu", "button.active"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Matches reports whether a compound selector (type, .class and #id parts, no
// combinators) applies to n.
func Matches(sel string, n *Node) bool {
	sel = strings.TrimSpace(sel)
	if sel == "" || strings.ContainsAny(sel, " >+~:[") {
		return false
	}
	i := strings.IndexAny(sel, ".#")
	if i < 0 {
		return sel == "*" || sel == n.Type
	}
	if typ := sel[:i]; typ != "" && typ != "*" && typ != n.Type {
		return false
	}
	rest := sel[i:]
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return false
		}
		if kind == '.' && !n.HasClass(name) {
			return false
		}
		if kind == '#' && n.ID != name {
			return false
		}
	}
	return true
}

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0-100 place the node at that fraction of the free space; -1 means use
// Left/Top as pixels. WidthPct/HeightPct size it relative to the screen.
// MarginLeft/MarginTop shift the node after positioning.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	WidthPct   int32 // -1 = not set
	HeightPct  int32 // -1 = not set
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	MarginLeft int32
	MarginTop  int32
	Padding    int32 // text offset from node bounds (default 4)
	FontSize   int32 // 0 = engine default
	Center     bool  // text-align: center
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: color.RGBA{},
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Border:     color.RGBA{A: 255},
		WidthPct:   -1,
		HeightPct:  -1,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or rgba(r, g, b, a) into a color. Returns black
// and false on parse error. Hex forms share config.ParseColor with the YAML config.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{A: 255}, false
	}
	c, err := config.ParseColor(s)
	if err != nil {
		return color.RGBA{A: 255}, false
	}
	return c, true
}

// parseRGBFunc handles rgb(r, g, b) and rgba(r, g, b, a) with alpha in [0, 1].
func parseRGBFunc(s string) (color.RGBA, bool) {
	black := color.RGBA{A: 255}
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return black, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return black, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return black, false
		}
		ch[i] = uint8(n)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 32)
		if err != nil || a < 0 || a > 1 {
			return black, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0-100).
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			// "1px solid #000" keeps only the color.
			fields := strings.Fields(v)
			if len(fields) > 0 {
				if c, ok := ParseHexColor(fields[len(fields)-1]); ok {
					out.Border = c
					out.HasBorder = true
				}
			}
		case "width":
			if pct, ok := ParsePct(v); ok {
				out.WidthPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if pct, ok := ParsePct(v); ok {
				out.HeightPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "margin-left":
			if n, ok := ParsePx(v); ok {
				out.MarginLeft = n
			}
		case "margin-top":
			if n, ok := ParsePx(v); ok {
				out.MarginTop = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "text-align":
			out.Center = v == "center"
		}
	}
	return out
}
