package ui

import "strings"

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label, button. It has optional classes and id for
// CSS matching, bounds (resolved from style on layout) and optional text.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // space separated, e.g. "button active"
	ID     string // e.g. "reset-view" for #reset-view
	Bounds Rect
	Text   string
	Hidden bool
	// OnClick makes the node a click target.
	OnClick func()
	// Modal nodes swallow pointer input while visible.
	Modal bool
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// HasClass reports whether c is one of the node's classes.
func (n *Node) HasClass(c string) bool {
	for _, have := range strings.Fields(n.Class) {
		if have == c {
			return true
		}
	}
	return false
}

// SetClass adds or removes class c.
func (n *Node) SetClass(c string, on bool) {
	if n.HasClass(c) == on {
		return
	}
	if on {
		n.Class = strings.TrimSpace(n.Class + " " + c)
		return
	}
	var keep []string
	for _, have := range strings.Fields(n.Class) {
		if have != c {
			keep = append(keep, have)
		}
	}
	n.Class = strings.Join(keep, " ")
}
