package interaction

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-viewer/internal/camera"
	"product-viewer/internal/event"
	"product-viewer/internal/model"
)

// stubCaster hits the parts named in under, at the given distances, whatever the ray.
type stubCaster struct {
	under map[string]float32
	calls int
}

func (s *stubCaster) IntersectPart(_ camera.Ray, p *model.Part) (float32, bool) {
	s.calls++
	d, ok := s.under[p.Name]
	return d, ok
}

func (s *stubCaster) hover(names ...string) {
	s.under = map[string]float32{}
	for i, n := range names {
		s.under[n] = float32(i + 1)
	}
}

type fixture struct {
	ctrl    *Controller
	product *model.Product
	caster  *stubCaster
	bus     *event.Bus
	clock   *event.ManualTimers
	sched   *event.Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cam := camera.NewPerspective(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 3, 5}
	cam.SetViewport(800, 600)

	f := &fixture{product: model.BuildChair(), caster: &stubCaster{}, bus: event.NewBus(), clock: &event.ManualTimers{}}
	f.sched = event.NewSchedulerWith(f.bus, f.clock.AfterFunc)
	f.ctrl = New(cam, f.product, f.caster, f.sched, DefaultOptions())
	event.On(f.bus, f.ctrl.HandlePulseExpired)
	return f
}

func (f *fixture) part(t *testing.T, name string) *model.Part {
	t.Helper()
	p, ok := f.product.PartByName(name)
	require.True(t, ok, name)
	return p
}

// assertColors checks that only want (if any) holds the highlight and everything else
// has its original color.
func (f *fixture) assertColors(t *testing.T, want *model.Part) {
	t.Helper()
	highlighted := 0
	for _, p := range f.product.Parts() {
		if p == want {
			assert.Equal(t, DefaultOptions().HighlightColor, p.Material.Color, p.Name)
			highlighted++
			continue
		}
		assert.Equal(t, p.OriginalColor, p.Material.Color, p.Name)
	}
	if want != nil {
		assert.Equal(t, 1, highlighted)
	}
}

func TestHoverHighlightsNearest(t *testing.T) {
	f := newFixture(t)
	f.caster.hover("Seat", "Backrest")
	f.ctrl.PointerMove(400, 300)

	seat := f.part(t, "Seat")
	assert.Equal(t, Highlighted, f.ctrl.State())
	assert.Same(t, seat, f.ctrl.Current())
	f.assertColors(t, seat)
	assert.Equal(t, 6, f.caster.calls, "every part of the hierarchy is tested")
}

func TestHoverAwayRestoresOriginal(t *testing.T) {
	f := newFixture(t)
	f.caster.hover("Chair Leg 3")
	f.ctrl.PointerMove(1, 1)
	f.caster.hover()
	f.ctrl.PointerMove(2, 2)
	assert.Equal(t, Idle, f.ctrl.State())
	assert.Nil(t, f.ctrl.Current())
	f.assertColors(t, nil)

	f.ctrl.PointerMove(3, 3)
	assert.Equal(t, Idle, f.ctrl.State())
}

func TestHighlightNeverDrifts(t *testing.T) {
	f := newFixture(t)
	names := []string{"Seat", "Chair Leg 1", "", "Backrest", "Backrest", "Chair Leg 4", "", "Seat"}
	for round := 0; round < 50; round++ {
		for _, n := range names {
			if n == "" {
				f.caster.hover()
			} else {
				f.caster.hover(n)
			}
			f.ctrl.PointerMove(10, 10)
			if n == "" {
				f.assertColors(t, nil)
			} else {
				f.assertColors(t, f.part(t, n))
			}
		}
	}
}

func TestRehoverSamePartReappliesHighlight(t *testing.T) {
	f := newFixture(t)
	a := f.part(t, "Backrest")

	f.caster.hover("Backrest")
	f.ctrl.PointerMove(1, 1)
	first := a.Material.Color

	f.caster.hover()
	f.ctrl.PointerMove(1, 1)
	assert.Equal(t, a.OriginalColor, a.Material.Color)

	f.caster.hover("Backrest")
	f.ctrl.PointerMove(1, 1)
	assert.Equal(t, first, a.Material.Color)

	// Moving while staying on the same part keeps exactly one highlight.
	f.ctrl.PointerMove(2, 2)
	f.assertColors(t, a)
}

func TestClickSelectsAndPulses(t *testing.T) {
	f := newFixture(t)
	var got [][2]string
	f.ctrl.OnSelect = func(name, desc string) { got = append(got, [2]string{name, desc}) }

	seat := f.part(t, "Seat")
	base := seat.Transform.Scale
	f.caster.hover("Seat")
	f.ctrl.PointerClick(400, 300)

	require.Len(t, got, 1)
	assert.Equal(t, [2]string{"Seat", "Contoured hardwood seat for comfort"}, got[0])
	assert.True(t, seat.Transform.Scale.ApproxEqual(base.Mul(1.1)))
	assert.True(t, f.ctrl.Pulsing(seat.ID))

	f.clock.Advance(199 * time.Millisecond)
	f.bus.Drain()
	assert.True(t, seat.Transform.Scale.ApproxEqual(base.Mul(1.1)), "still pulsing before the delay")

	f.clock.Advance(time.Millisecond)
	f.bus.Drain()
	assert.Equal(t, base, seat.Transform.Scale)
	assert.False(t, f.ctrl.Pulsing(seat.ID))
}

func TestClickMissDoesNothing(t *testing.T) {
	f := newFixture(t)
	called := false
	f.ctrl.OnSelect = func(string, string) { called = true }
	f.caster.hover()
	f.ctrl.PointerClick(1, 1)
	assert.False(t, called)
	assert.False(t, f.sched.Pending("pulse/1"))
}

func TestRepeatClickDoesNotCompound(t *testing.T) {
	f := newFixture(t)
	leg := f.part(t, "Chair Leg 2")
	base := leg.Transform.Scale
	count := 0
	f.ctrl.OnSelect = func(string, string) { count++ }

	f.caster.hover("Chair Leg 2")
	f.ctrl.PointerClick(1, 1)
	f.clock.Advance(100 * time.Millisecond)
	f.ctrl.PointerClick(1, 1)
	assert.Equal(t, 2, count)
	assert.True(t, leg.Transform.Scale.ApproxEqual(base.Mul(1.1)))

	// The first restore was replaced; the part stays pulsed until the second delay ends.
	f.clock.Advance(150 * time.Millisecond)
	f.bus.Drain()
	assert.True(t, leg.Transform.Scale.ApproxEqual(base.Mul(1.1)))

	f.clock.Advance(50 * time.Millisecond)
	f.bus.Drain()
	assert.Equal(t, base, leg.Transform.Scale)
}

func TestPulseRestoreOnRemovedPartIsNoop(t *testing.T) {
	f := newFixture(t)
	back := f.part(t, "Backrest")
	f.caster.hover("Backrest")
	f.ctrl.PointerClick(1, 1)
	pulsed := back.Transform.Scale

	require.True(t, f.product.Remove(back.ID))
	assert.NotPanics(t, func() {
		f.clock.Advance(time.Second)
		f.bus.Drain()
	})
	assert.Equal(t, pulsed, back.Transform.Scale, "detached part is left alone")
	assert.False(t, f.ctrl.Pulsing(back.ID))
}

func TestStalePulseEventIgnored(t *testing.T) {
	f := newFixture(t)
	seat := f.part(t, "Seat")
	f.caster.hover("Seat")
	f.ctrl.PointerClick(1, 1)
	f.ctrl.HandlePulseExpired(event.PulseExpired{PartID: seat.ID, Seq: 999})
	assert.True(t, f.ctrl.Pulsing(seat.ID))
	f.ctrl.HandlePulseExpired(event.PulseExpired{PartID: 12345, Seq: 1})
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	seat := f.part(t, "Seat")
	base := seat.Transform.Scale
	f.caster.hover("Seat")
	f.ctrl.PointerMove(1, 1)
	f.ctrl.PointerClick(1, 1)

	f.ctrl.Reset()
	assert.Equal(t, Idle, f.ctrl.State())
	f.assertColors(t, nil)
	assert.Equal(t, base, seat.Transform.Scale)
	assert.False(t, f.sched.Pending(pulseKey(seat.ID)))
	f.clock.Advance(time.Second)
	assert.Equal(t, 0, f.bus.Pending())
}

func TestPickWithoutViewportMisses(t *testing.T) {
	cam := camera.NewPerspective(75, 1, 0.1, 1000)
	caster := &stubCaster{}
	caster.hover("Seat")
	c := New(cam, model.BuildChair(), caster, nil, DefaultOptions())
	c.PointerMove(1, 1)
	assert.Equal(t, Idle, c.State())
}

func TestLeaveRestores(t *testing.T) {
	f := newFixture(t)
	seat := f.part(t, "Seat")
	f.caster.hover("Seat")
	f.ctrl.PointerMove(400, 300)
	require.Equal(t, Highlighted, f.ctrl.State())

	f.ctrl.Leave()
	assert.Equal(t, Idle, f.ctrl.State())
	assert.Equal(t, seat.OriginalColor, seat.Material.Color)
	f.ctrl.Leave()
	assert.Equal(t, Idle, f.ctrl.State())
}
