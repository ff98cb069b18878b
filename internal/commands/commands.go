// Package commands maps named viewer actions to handlers so that buttons and keyboard
// shortcuts go through one dispatch path.
package commands

import (
	"errors"
	"fmt"
	"unicode"

	"fortio.org/log"

	"product-viewer/internal/event"
)

// ErrUnknownAction is returned for names that were never registered.
var ErrUnknownAction = errors.New("commands: unknown action")

// Action is a named operation. Run errors are reported to the caller, never fatal.
type Action struct {
	Name        string
	Description string
	Run         func() error
}

// Registry holds actions by name and the keys bound to them.
type Registry struct {
	actions map[string]*Action
	order   []string
	keys    map[rune]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]*Action), keys: make(map[rune]string)}
}

// Register adds or replaces the action called name.
func (r *Registry) Register(name, description string, run func() error) {
	if _, ok := r.actions[name]; !ok {
		r.order = append(r.order, name)
	}
	r.actions[name] = &Action{Name: name, Description: description, Run: run}
}

// Bind makes key trigger the action called name. Keys are case-insensitive.
func (r *Registry) Bind(key rune, name string) error {
	if _, ok := r.actions[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	r.keys[unicode.ToLower(key)] = name
	return nil
}

// Lookup returns the action called name.
func (r *Registry) Lookup(name string) (*Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Actions returns the registered actions in registration order.
func (r *Registry) Actions() []*Action {
	out := make([]*Action, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.actions[n])
	}
	return out
}

// KeyFor returns the key bound to name, if any.
func (r *Registry) KeyFor(name string) (rune, bool) {
	for k, n := range r.keys {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Execute runs the action called name.
func (r *Registry) Execute(name string) error {
	a, ok := r.actions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if err := a.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// HandleKey runs the action bound to key. handled is false when nothing is bound.
func (r *Registry) HandleKey(key rune) (handled bool, err error) {
	name, ok := r.keys[unicode.ToLower(key)]
	if !ok {
		return false, nil
	}
	return true, r.Execute(name)
}

// Subscribe runs bound actions on key presses. Failures are logged and the loop goes on.
func (r *Registry) Subscribe(bus *event.Bus) {
	event.On(bus, func(e event.KeyPress) {
		if _, err := r.HandleKey(e.Key); err != nil {
			log.Warnf("commands: key %q: %v", e.Key, err)
		}
	})
}
