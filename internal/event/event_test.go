package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInOrderOnDrain(t *testing.T) {
	bus := NewBus()
	var got []Event
	bus.Subscribe(KindPointerMove, func(e Event) { got = append(got, e) })
	On(bus, func(r Resize) { got = append(got, r) })

	bus.Post(PointerMove{X: 1, Y: 2})
	bus.Post(Resize{Width: 640, Height: 480})
	bus.Post(KeyPress{Key: 'r'}) // no handler
	assert.Empty(t, got, "nothing runs before Drain")

	assert.Equal(t, 3, bus.Drain())
	assert.Equal(t, []Event{PointerMove{X: 1, Y: 2}, Resize{Width: 640, Height: 480}}, got)
	assert.Equal(t, 0, bus.Pending())
}

func TestBusPostFromHandlerWaitsForNextDrain(t *testing.T) {
	bus := NewBus()
	count := 0
	On(bus, func(KeyPress) {
		count++
		if count == 1 {
			bus.Post(KeyPress{Key: 'x'})
		}
	})
	bus.Post(KeyPress{Key: 'r'})
	bus.Drain()
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, bus.Pending())
	bus.Drain()
	assert.Equal(t, 2, count)
}

func TestBusConcurrentPost(t *testing.T) {
	bus := NewBus()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Post(OverlayTimeout{})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, bus.Drain())
}

func TestSchedulerPostsWhenDue(t *testing.T) {
	bus := NewBus()
	clock := &ManualTimers{}
	s := NewSchedulerWith(bus, clock.AfterFunc)

	s.After("pulse/1", 200*time.Millisecond, PulseExpired{PartID: 1, Seq: 1})
	assert.True(t, s.Pending("pulse/1"))

	clock.Advance(199 * time.Millisecond)
	assert.Equal(t, 0, bus.Pending())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, bus.Pending())
	assert.False(t, s.Pending("pulse/1"))
}

func TestSchedulerReplaceAndCancel(t *testing.T) {
	bus := NewBus()
	clock := &ManualTimers{}
	s := NewSchedulerWith(bus, clock.AfterFunc)
	var got []PulseExpired
	On(bus, func(e PulseExpired) { got = append(got, e) })

	s.After("pulse/1", 100*time.Millisecond, PulseExpired{PartID: 1, Seq: 1})
	clock.Advance(50 * time.Millisecond)
	s.After("pulse/1", 100*time.Millisecond, PulseExpired{PartID: 1, Seq: 2})
	clock.Advance(60 * time.Millisecond)
	bus.Drain()
	assert.Empty(t, got, "replaced task must not fire")

	clock.Advance(40 * time.Millisecond)
	bus.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].Seq)

	s.After("overlay", time.Second, OverlayTimeout{})
	assert.True(t, s.Cancel("overlay"))
	assert.False(t, s.Cancel("overlay"))
	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, bus.Pending())
}

func TestSchedulerStop(t *testing.T) {
	bus := NewBus()
	clock := &ManualTimers{}
	s := NewSchedulerWith(bus, clock.AfterFunc)
	s.After("a", time.Millisecond, OverlayTimeout{})
	s.After("b", time.Millisecond, OverlayTimeout{})
	s.Stop()
	clock.Advance(time.Second)
	assert.Equal(t, 0, bus.Pending())
}

func TestSchedulerRealTimers(t *testing.T) {
	bus := NewBus()
	s := NewScheduler(bus)
	s.After("overlay", 5*time.Millisecond, OverlayTimeout{})
	require.Eventually(t, func() bool { return bus.Pending() == 1 }, time.Second, time.Millisecond)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "pointer-drag", PointerDrag{}.Kind().String())
	assert.Equal(t, "wheel", Wheel{}.Kind().String())
	assert.Equal(t, "unknown", Kind(0).String())
}
