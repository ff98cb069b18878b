package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestureHoverMoves(t *testing.T) {
	g := &Gesture{Threshold: DefaultDragThreshold}
	assert.Equal(t, []Event{PointerMove{X: 10, Y: 20}}, g.Move(10, 20))
	assert.Nil(t, g.Move(10, 20), "no motion, no event")
	assert.Equal(t, []Event{PointerMove{X: 11, Y: 20}}, g.Move(11, 20))
}

func TestGestureClickWithinThreshold(t *testing.T) {
	g := &Gesture{Threshold: DefaultDragThreshold}
	g.Press(100, 100)
	assert.Equal(t, []Event{PointerMove{X: 102, Y: 101}}, g.Move(102, 101), "jitter under the threshold only hovers")
	assert.Equal(t, PointerClick{X: 102, Y: 101}, g.Release(102, 101))
	assert.Nil(t, g.Release(102, 101), "release without press")
}

func TestGestureDragSuppressesClick(t *testing.T) {
	g := &Gesture{Threshold: DefaultDragThreshold}
	g.Press(100, 100)
	assert.Equal(t, []Event{PointerMove{X: 110, Y: 100}, PointerDrag{DX: 10, DY: 0}}, g.Move(110, 100),
		"first drag carries the whole offset")
	assert.True(t, g.Dragging())
	assert.Equal(t, []Event{PointerMove{X: 115, Y: 97}, PointerDrag{DX: 5, DY: -3}}, g.Move(115, 97))
	assert.Nil(t, g.Release(115, 97))
	assert.False(t, g.Dragging())
	assert.Equal(t, []Event{PointerMove{X: 120, Y: 97}}, g.Move(120, 97))
}

func TestGestureHoverContinuesWhileDragging(t *testing.T) {
	g := &Gesture{Threshold: DefaultDragThreshold}
	g.Press(0, 0)
	var moves, drags int
	for x := float32(1); x <= 20; x++ {
		for _, e := range g.Move(x, 0) {
			switch e.(type) {
			case PointerMove:
				moves++
			case PointerDrag:
				drags++
			}
		}
	}
	assert.Equal(t, 20, moves, "every sample hovers")
	assert.Equal(t, 16, drags, "samples past the threshold drag")
}
