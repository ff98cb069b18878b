package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() *Camera {
	c := NewPerspective(75, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 3, 5}
	c.LookAt(mgl32.Vec3{})
	c.SetViewport(800, 600)
	return c
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	c := newTestCamera()
	rev := c.Revision()
	c.SetViewport(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect, 1e-6)
	assert.Equal(t, rev+1, c.Revision())
	w, h := c.Viewport()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestUpdateProjectionTracksFov(t *testing.T) {
	c := newTestCamera()
	before := c.Projection()
	c.FovY = 50
	assert.Equal(t, before, c.Projection(), "projection is cached until UpdateProjection")
	c.UpdateProjection()
	assert.NotEqual(t, before, c.Projection())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(50), c.Aspect, c.Near, c.Far), c.Projection())
}

func TestScreenRayThroughCenterHitsTarget(t *testing.T) {
	c := newTestCamera()
	ray, err := c.ScreenRay(400, 300)
	require.NoError(t, err)

	want := c.Target.Sub(c.Position).Normalize()
	assert.True(t, ray.Direction.ApproxEqualThreshold(want, 1e-3), "got %v want %v", ray.Direction, want)
	assert.Equal(t, c.Position, ray.Origin)
	assert.InDelta(t, 1, ray.Direction.Len(), 1e-5)
}

func TestScreenRayOrientation(t *testing.T) {
	c := NewPerspective(60, 1, 0.1, 100)
	c.Position = mgl32.Vec3{0, 0, 5}
	c.SetViewport(100, 100)

	left, err := c.ScreenRay(0, 50)
	require.NoError(t, err)
	assert.Less(t, left.Direction.X(), float32(0))

	top, err := c.ScreenRay(50, 0)
	require.NoError(t, err)
	assert.Greater(t, top.Direction.Y(), float32(0), "pixel row 0 is the top of the window")
}

func TestScreenRayWithoutViewport(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	_, err := c.ScreenRay(1, 1)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestNDC(t *testing.T) {
	c := newTestCamera()
	x, y := c.NDC(0, 0)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)
	x, y = c.NDC(800, 600)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
}
