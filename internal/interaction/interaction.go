// Package interaction maps pointer events to part picking: hover highlight, click to
// inspect and a short scale pulse on the clicked part.
package interaction

import (
	"fmt"
	"image/color"
	"time"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/event"
	"product-viewer/internal/model"
)

// State is the hover state of the controller.
type State int

const (
	Idle State = iota
	Highlighted
)

func (s State) String() string {
	if s == Highlighted {
		return "highlighted"
	}
	return "idle"
}

// Scheduler runs keyed one-shot tasks; *event.Scheduler implements it.
type Scheduler interface {
	After(key string, d time.Duration, e event.Event)
	Cancel(key string) bool
}

// SelectFunc receives the name and description of a clicked part.
type SelectFunc func(name, description string)

// Options configures the highlight and pulse.
type Options struct {
	HighlightColor color.RGBA
	PulseScale     float32
	PulseDuration  time.Duration
}

// DefaultOptions returns a green highlight and a 10% pulse lasting 200ms.
func DefaultOptions() Options {
	return Options{
		HighlightColor: model.Hex(0x00ff00),
		PulseScale:     1.1,
		PulseDuration:  200 * time.Millisecond,
	}
}

type pulse struct {
	base mgl32.Vec3
	seq  uint64
}

// Controller is the hover/click state machine. All methods run on the loop goroutine.
type Controller struct {
	cam     *camera.Camera
	product *model.Product
	caster  Raycaster
	sched   Scheduler
	opts    Options

	// OnSelect is called once per click that hits a part.
	OnSelect SelectFunc

	current *model.Part
	pulses  map[int]pulse
	seq     uint64
}

// New returns an idle controller picking parts of product through cam.
func New(cam *camera.Camera, product *model.Product, caster Raycaster, sched Scheduler, opts Options) *Controller {
	return &Controller{
		cam:     cam,
		product: product,
		caster:  caster,
		sched:   sched,
		opts:    opts,
		pulses:  make(map[int]pulse),
	}
}

// State returns the hover state.
func (c *Controller) State() State {
	if c.current == nil {
		return Idle
	}
	return Highlighted
}

// Current returns the highlighted part, or nil when idle.
func (c *Controller) Current() *model.Part { return c.current }

// Pick returns the nearest part under window pixel (x, y).
func (c *Controller) Pick(x, y float32) (Hit, bool) {
	ray, err := c.cam.ScreenRay(x, y)
	if err != nil {
		return Hit{}, false
	}
	return Nearest(c.caster, ray, c.product)
}

// PointerMove restores the previously highlighted part and highlights the part under
// the pointer, if any. The highlight is reapplied even when the part is unchanged.
func (c *Controller) PointerMove(x, y float32) {
	c.Leave()
	hit, ok := c.Pick(x, y)
	if !ok {
		return
	}
	hit.Part.SetColor(c.opts.HighlightColor)
	c.current = hit.Part
}

// Leave restores the highlighted part, e.g. when the pointer moves onto the UI.
func (c *Controller) Leave() {
	if c.current != nil {
		c.current.RestoreColor()
		c.current = nil
	}
}

// PointerClick reports the part under the pointer to OnSelect and pulses it.
func (c *Controller) PointerClick(x, y float32) {
	hit, ok := c.Pick(x, y)
	if !ok {
		return
	}
	p := hit.Part
	log.Debugf("interaction: clicked %q at %.2f", p.Name, hit.Distance)
	if c.OnSelect != nil {
		c.OnSelect(p.Name, p.Description)
	}
	c.startPulse(p)
}

// startPulse scales p up and schedules the restore. A pulse already running on p keeps
// its original base scale so repeated clicks do not compound.
func (c *Controller) startPulse(p *model.Part) {
	base := p.Transform.Scale
	if running, ok := c.pulses[p.ID]; ok {
		base = running.base
	}
	c.seq++
	c.pulses[p.ID] = pulse{base: base, seq: c.seq}
	p.Transform.Scale = base.Mul(c.opts.PulseScale)
	if c.sched != nil {
		c.sched.After(pulseKey(p.ID), c.opts.PulseDuration, event.PulseExpired{PartID: p.ID, Seq: c.seq})
	}
}

// Pulsing reports whether a pulse is running on the part with id.
func (c *Controller) Pulsing(id int) bool {
	_, ok := c.pulses[id]
	return ok
}

// HandlePulseExpired restores the pulsed part's scale. Stale events and parts that are
// no longer attached are ignored.
func (c *Controller) HandlePulseExpired(e event.PulseExpired) {
	running, ok := c.pulses[e.PartID]
	if !ok || running.seq != e.Seq {
		return
	}
	delete(c.pulses, e.PartID)
	p, ok := c.product.Lookup(e.PartID)
	if !ok {
		return
	}
	p.Transform.Scale = running.base
}

// Reset restores every highlighted or pulsing part and cancels pending pulse restores.
func (c *Controller) Reset() {
	c.Leave()
	for id, running := range c.pulses {
		if c.sched != nil {
			c.sched.Cancel(pulseKey(id))
		}
		if p, ok := c.product.Lookup(id); ok {
			p.Transform.Scale = running.base
		}
		delete(c.pulses, id)
	}
}

func pulseKey(id int) string { return fmt.Sprintf("pulse/%d", id) }
