package event

import (
	"sort"
	"sync"
	"time"
)

// Poster accepts events; *Bus implements it.
type Poster interface {
	Post(Event)
}

// Timer is the part of *time.Timer the scheduler uses.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a one-shot timer that calls f after d.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc uses time.AfterFunc.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type task struct {
	timer Timer
	gen   uint64
}

// Scheduler runs keyed one-shot tasks. When a task comes due it posts its event instead
// of calling back directly, so the work happens on the loop goroutine. Scheduling a key
// that is already pending replaces the earlier task.
type Scheduler struct {
	mu        sync.Mutex
	poster    Poster
	afterFunc AfterFunc
	tasks     map[string]*task
	gen       uint64
}

// NewScheduler posts due events to p using real timers.
func NewScheduler(p Poster) *Scheduler {
	return NewSchedulerWith(p, RealAfterFunc)
}

// NewSchedulerWith is NewScheduler with a custom timer source.
func NewSchedulerWith(p Poster, after AfterFunc) *Scheduler {
	return &Scheduler{poster: p, afterFunc: after, tasks: make(map[string]*task)}
}

// After schedules e to be posted after d under key, cancelling any pending task with
// the same key.
func (s *Scheduler) After(key string, d time.Duration, e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.tasks[key]; ok {
		old.timer.Stop()
	}
	s.gen++
	gen := s.gen
	t := &task{gen: gen}
	s.tasks[key] = t
	t.timer = s.afterFunc(d, func() { s.fire(key, gen, e) })
}

func (s *Scheduler) fire(key string, gen uint64, e Event) {
	s.mu.Lock()
	t, ok := s.tasks[key]
	if !ok || t.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, key)
	s.mu.Unlock()
	s.poster.Post(e)
}

// Cancel drops the pending task for key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

// Pending reports whether a task is scheduled under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
}

// ManualTimers is a deterministic timer source: timers only fire from Advance.
type ManualTimers struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	owner   *ManualTimers
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// AfterFunc satisfies the AfterFunc signature.
func (m *ManualTimers) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, at: m.now + d, fn: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and fires due timers in deadline order.
func (m *ManualTimers) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, keep []*manualTimer
	for _, t := range m.pending {
		switch {
		case t.stopped:
		case t.at <= m.now:
			t.fired = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	m.pending = keep
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}
