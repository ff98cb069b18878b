package ui

// Part panel hint shown until a part is clicked.
const (
	PanelHintName        = "Select a part"
	PanelHintDescription = "Hover to highlight, click to inspect."
)

// PartPanel is the top-left card showing the inspected part's name and description.
// It owns its nodes and updates their text on Show.
type PartPanel struct {
	panel       *Node
	title       *Node
	name        *Node
	description *Node
}

// NewPartPanel creates the panel with nodes styled by .part-panel, .part-title,
// #part-name and #part-description. It starts with the hint text.
func NewPartPanel() *PartPanel {
	return &PartPanel{
		panel:       NewNode("panel", "part-panel", "part-info", ""),
		title:       NewNode("label", "part-title", "", "Part Details"),
		name:        NewNode("label", "part-name", "part-name", PanelHintName),
		description: NewNode("label", "part-description", "part-description", PanelHintDescription),
	}
}

// Show replaces the displayed name and description.
func (p *PartPanel) Show(name, description string) {
	p.name.Text = name
	p.description.Text = description
}

// Name returns the displayed part name.
func (p *PartPanel) Name() string { return p.name.Text }

// Description returns the displayed description.
func (p *PartPanel) Description() string { return p.description.Text }

// Nodes returns the panel nodes in draw order.
func (p *PartPanel) Nodes() []*Node {
	return []*Node{p.panel, p.title, p.name, p.description}
}

// Overlay is the full-screen loading cover. While visible it swallows pointer input.
type Overlay struct {
	cover *Node
	label *Node
}

// NewOverlay returns a visible overlay with the given message.
func NewOverlay(message string) *Overlay {
	cover := NewNode("panel", "overlay", "loading-overlay", "")
	cover.Modal = true
	return &Overlay{cover: cover, label: NewNode("label", "overlay-text", "loading-text", message)}
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool { return !o.cover.Hidden }

// Hide removes the overlay.
func (o *Overlay) Hide() {
	o.cover.Hidden = true
	o.label.Hidden = true
}

// Nodes returns the overlay nodes in draw order.
func (o *Overlay) Nodes() []*Node { return []*Node{o.cover, o.label} }
