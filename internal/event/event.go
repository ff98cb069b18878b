// Package event carries typed input and timer events from producers (window polling,
// one-shot timers) to handlers that run on the single loop goroutine.
package event

// Kind identifies an event type for handler dispatch.
type Kind int

const (
	KindPointerMove Kind = iota + 1
	KindPointerClick
	KindKeyPress
	KindResize
	KindPulseExpired
	KindOverlayTimeout
	KindPointerDrag
	KindWheel
)

func (k Kind) String() string {
	switch k {
	case KindPointerMove:
		return "pointer-move"
	case KindPointerClick:
		return "pointer-click"
	case KindKeyPress:
		return "key-press"
	case KindResize:
		return "resize"
	case KindPulseExpired:
		return "pulse-expired"
	case KindOverlayTimeout:
		return "overlay-timeout"
	case KindPointerDrag:
		return "pointer-drag"
	case KindWheel:
		return "wheel"
	}
	return "unknown"
}

// Event is any typed payload that can travel on a Bus.
type Event interface {
	Kind() Kind
}

// PointerMove is the pointer position in window pixels.
type PointerMove struct{ X, Y float32 }

// PointerClick is a primary-button click at window pixels.
type PointerClick struct{ X, Y float32 }

// PointerDrag is pointer motion in pixels while the primary button is held past the
// click threshold.
type PointerDrag struct{ DX, DY float32 }

// Wheel is a scroll of Delta notches; positive scrolls away from the user.
type Wheel struct{ Delta float32 }

// KeyPress carries the lower-case character of a pressed key.
type KeyPress struct{ Key rune }

// Resize is the new drawable size in pixels.
type Resize struct{ Width, Height int }

// PulseExpired asks for a part's pulse to end. Seq identifies the pulse it belongs to.
type PulseExpired struct {
	PartID int
	Seq    uint64
}

// OverlayTimeout hides the loading overlay.
type OverlayTimeout struct{}

func (PointerMove) Kind() Kind    { return KindPointerMove }
func (PointerClick) Kind() Kind   { return KindPointerClick }
func (KeyPress) Kind() Kind       { return KindKeyPress }
func (Resize) Kind() Kind         { return KindResize }
func (PulseExpired) Kind() Kind   { return KindPulseExpired }
func (OverlayTimeout) Kind() Kind { return KindOverlayTimeout }
func (PointerDrag) Kind() Kind    { return KindPointerDrag }
func (Wheel) Kind() Kind          { return KindWheel }
