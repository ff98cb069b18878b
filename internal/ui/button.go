package ui

// Button is a clickable labelled node. Active buttons carry the "active" class.
type Button struct {
	node   *Node
	engine *Engine
}

// NewButton creates a button with id and label that calls onClick when pressed.
func NewButton(e *Engine, id, label string, onClick func()) *Button {
	n := NewNode("button", "button", id, label)
	n.OnClick = onClick
	return &Button{node: n, engine: e}
}

// Node returns the button's node.
func (b *Button) Node() *Node { return b.node }

// Active reports whether the button shows its active state.
func (b *Button) Active() bool { return b.node.HasClass("active") }

// SetActive toggles the active state.
func (b *Button) SetActive(on bool) {
	if b.Active() == on {
		return
	}
	b.node.SetClass("active", on)
	if b.engine != nil {
		b.engine.Invalidate()
	}
}

// Label returns the button text.
func (b *Button) Label() string { return b.node.Text }
