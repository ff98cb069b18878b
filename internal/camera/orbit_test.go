package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const frame = float32(1.0 / 60)

func TestOrbitUpdateWithoutInputKeepsPose(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c, WithDamping(0.05), WithDistanceLimits(2, 10))
	start := c.Position
	assert.False(t, o.Update(frame))
	assert.True(t, c.Position.ApproxEqualThreshold(start, 1e-4), "%v", c.Position)
}

func TestOrbitDistanceClamp(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c, WithDistanceLimits(2, 10))

	for i := 0; i < 200; i++ {
		o.Zoom(-5)
		o.Update(frame)
	}
	assert.InDelta(t, 10, c.Distance(), 1e-3)

	for i := 0; i < 200; i++ {
		o.Zoom(5)
		o.Update(frame)
	}
	assert.InDelta(t, 2, c.Distance(), 1e-3)
}

func TestOrbitRotateWithoutDampingIsImmediate(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c)
	radius := c.Distance()

	o.Rotate(-mgl32.DegToRad(90), 0)
	assert.True(t, o.Update(frame))
	assert.InDelta(t, radius, c.Distance(), 1e-4)
	assert.InDelta(t, 3, c.Position.Y(), 1e-4, "azimuth orbit keeps height")
	assert.InDelta(t, 0, c.Position.Z(), 1e-3)
	assert.InDelta(t, 5, c.Position.X(), 1e-3)
	assert.True(t, o.Settled())
}

func TestOrbitDampingEasesOut(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c, WithDamping(0.05))

	o.Rotate(-mgl32.DegToRad(90), 0)
	o.Update(frame)
	first := c.Position
	assert.Greater(t, first.X(), float32(0), "moves toward the goal")
	assert.Less(t, first.X(), float32(4.9), "but not all at once")

	for i := 0; i < 600; i++ {
		o.Update(frame)
	}
	assert.InDelta(t, 5, c.Position.X(), 1e-2)
	assert.InDelta(t, 0, c.Position.Z(), 1e-2)
	assert.True(t, o.Settled())
}

func TestOrbitPolarClamp(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c)
	o.Rotate(0, 10)
	o.Update(frame)
	assert.Less(t, c.Position.Y(), c.Distance(), "never reaches the pole")
	assert.Greater(t, c.Position.Y(), float32(0))
}

func TestOrbitAutoRotate(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c, WithAutoRotate(true, 1))
	o.Update(1)
	// One orbit per minute: one second is six degrees.
	angle := mgl32.RadToDeg(angleXZ(c.Position))
	assert.InDelta(t, -6, angle, 0.05)

	o.AutoRotate = false
	pos := c.Position
	o.Update(1)
	assert.True(t, c.Position.ApproxEqualThreshold(pos, 1e-5))
}

func TestOrbitReset(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c, WithDamping(0.05), WithDistanceLimits(2, 10))
	start := c.Position
	rev := c.Revision()

	o.Rotate(1, 0.3)
	o.Zoom(3)
	for i := 0; i < 30; i++ {
		o.Update(frame)
	}
	assert.False(t, c.Position.ApproxEqualThreshold(start, 1e-3))

	o.Reset()
	assert.Equal(t, start, c.Position)
	assert.Equal(t, mgl32.Vec3{}, c.Target)
	assert.True(t, o.Settled())
	assert.Greater(t, c.Revision(), rev)

	o.Update(frame)
	assert.True(t, c.Position.ApproxEqualThreshold(start, 1e-4))
}

func TestOrbitDrag(t *testing.T) {
	c := newTestCamera()
	o := NewOrbitControls(c)
	_, h := c.Viewport()
	o.Drag(float32(h)/4, 0)
	o.Update(frame)
	// A quarter-height drag is a quarter turn to the left.
	assert.InDelta(t, -90, mgl32.RadToDeg(angleXZ(c.Position)), 0.1)
}

func angleXZ(p mgl32.Vec3) float32 {
	return math32.Atan2(p.X(), p.Z())
}
