package event

// DefaultDragThreshold is how far, in pixels, the pointer may travel with the button
// held before the press stops counting as a click.
const DefaultDragThreshold = 4

// Gesture turns raw pointer samples into events. Every motion is a PointerMove, so hover
// tracking continues while the button is held. Motion past the threshold with the
// button held also yields a PointerDrag, and a release that never dragged becomes a
// PointerClick.
type Gesture struct {
	Threshold float32

	down     bool
	dragging bool
	startX   float32
	startY   float32
	lastX    float32
	lastY    float32
	seen     bool
}

// Press records the primary button going down at (x, y).
func (g *Gesture) Press(x, y float32) {
	g.down, g.dragging = true, false
	g.startX, g.startY = x, y
	g.lastX, g.lastY, g.seen = x, y, true
}

// Move reports pointer motion to (x, y). It returns nil when the pointer did not move,
// otherwise a PointerMove followed by a PointerDrag when the press has become a drag.
func (g *Gesture) Move(x, y float32) []Event {
	if g.seen && x == g.lastX && y == g.lastY {
		return nil
	}
	dx, dy := x-g.lastX, y-g.lastY
	g.lastX, g.lastY, g.seen = x, y, true
	events := []Event{PointerMove{X: x, Y: y}}
	if !g.down {
		return events
	}
	if !g.dragging {
		ox, oy := x-g.startX, y-g.startY
		if ox*ox+oy*oy <= g.Threshold*g.Threshold {
			return events
		}
		g.dragging = true
		dx, dy = ox, oy
	}
	return append(events, PointerDrag{DX: dx, DY: dy})
}

// Release records the button going up at (x, y) and returns the click, if any.
func (g *Gesture) Release(x, y float32) Event {
	if !g.down {
		return nil
	}
	g.down = false
	if g.dragging {
		g.dragging = false
		return nil
	}
	return PointerClick{X: x, Y: y}
}

// Dragging reports whether the current press has turned into a drag.
func (g *Gesture) Dragging() bool { return g.dragging }
