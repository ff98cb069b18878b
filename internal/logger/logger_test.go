package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() func() time.Time {
	ts := time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local)
	return func() time.Time { return ts }
}

func TestLogStampsAndKeepsOrder(t *testing.T) {
	l := New(4)
	l.now = fixedClock()
	l.Log("first")
	l.Logf("second %d", 2)
	l.Warnf("third")

	assert.Equal(t, []string{
		"[09:30:15] first",
		"[09:30:15] second 2",
		"[09:30:15] warning: third",
	}, l.Lines())
}

func TestLogDropsOldestBeyondCapacity(t *testing.T) {
	l := New(3)
	l.now = fixedClock()
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		l.Log(s)
	}
	assert.Equal(t, []string{"[09:30:15] c", "[09:30:15] d", "[09:30:15] e"}, l.Lines())
	assert.Equal(t, []string{"[09:30:15] d", "[09:30:15] e"}, l.Tail(2))
	assert.Len(t, l.Tail(10), 3)
}

func TestTailNonPositive(t *testing.T) {
	l := New(0)
	l.Log("x")
	assert.Nil(t, l.Tail(0))
	assert.Nil(t, l.Tail(-3))
}

func TestLinesReturnsCopy(t *testing.T) {
	l := New(0)
	l.Log("x")
	lines := l.Lines()
	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}

func TestSetLevel(t *testing.T) {
	assert.NoError(t, SetLevel(""))
	assert.NoError(t, SetLevel("info"))
	assert.Error(t, SetLevel("loudest"))
}
