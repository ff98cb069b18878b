package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-viewer/internal/event"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	n := 0
	r.Register("reset-view", "Reset the camera", func() error { n++; return nil })

	require.NoError(t, r.Execute("reset-view"))
	assert.Equal(t, 1, n)

	err := r.Execute("explode")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestExecuteWrapsActionError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("denied")
	r.Register("fullscreen", "", func() error { return boom })
	err := r.Execute("fullscreen")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "fullscreen")
}

func TestBindAndHandleKey(t *testing.T) {
	r := NewRegistry()
	n := 0
	r.Register("reset-view", "", func() error { n++; return nil })
	require.NoError(t, r.Bind('r', "reset-view"))
	assert.ErrorIs(t, r.Bind('x', "missing"), ErrUnknownAction)

	handled, err := r.HandleKey('R')
	require.NoError(t, err)
	assert.True(t, handled)
	handled, err = r.HandleKey('q')
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, 1, n)

	k, ok := r.KeyFor("reset-view")
	assert.True(t, ok)
	assert.Equal(t, 'r', k)
}

func TestRegisterKeepsOrder(t *testing.T) {
	r := NewRegistry()
	noop := func() error { return nil }
	r.Register("b", "", noop)
	r.Register("a", "", noop)
	r.Register("b", "second", noop)

	var names []string
	for _, a := range r.Actions() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
	a, ok := r.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "second", a.Description)
}

func TestSubscribeKeepsGoingOnError(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Register("fullscreen", "", func() error { calls++; return errors.New("nope") })
	require.NoError(t, r.Bind('f', "fullscreen"))

	bus := event.NewBus()
	r.Subscribe(bus)
	bus.Post(event.KeyPress{Key: 'f'})
	bus.Post(event.KeyPress{Key: 'f'})
	bus.Post(event.KeyPress{Key: 'z'})
	assert.Equal(t, 3, bus.Drain())
	assert.Equal(t, 2, calls)
}
