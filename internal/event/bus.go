package event

import "sync"

// Handler consumes one event. Handlers run on the goroutine that calls Drain.
type Handler func(Event)

// Bus queues events from any goroutine and delivers them, in posting order, when the
// owner calls Drain. Handlers never run concurrently with each other.
type Bus struct {
	mu       sync.Mutex
	queue    []Event
	handlers map[Kind][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for events of kind k. Register handlers before the loop starts.
func (b *Bus) Subscribe(k Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[k] = append(b.handlers[k], h)
}

// On registers a handler for the concrete event type T.
func On[T Event](b *Bus, fn func(T)) {
	var zero T
	b.Subscribe(zero.Kind(), func(e Event) {
		if v, ok := e.(T); ok {
			fn(v)
		}
	})
}

// Post enqueues e. Safe to call from timers and other goroutines.
func (b *Bus) Post(e Event) {
	b.mu.Lock()
	b.queue = append(b.queue, e)
	b.mu.Unlock()
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Drain delivers every event queued so far and returns how many were delivered.
// Events posted by handlers during Drain are delivered on the next call.
func (b *Bus) Drain() int {
	b.mu.Lock()
	batch := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, e := range batch {
		b.Dispatch(e)
	}
	return len(batch)
}

// Dispatch delivers e immediately to its handlers on the calling goroutine.
func (b *Bus) Dispatch(e Event) {
	b.mu.Lock()
	hs := b.handlers[e.Kind()]
	b.mu.Unlock()
	for _, h := range hs {
		h(e)
	}
}
