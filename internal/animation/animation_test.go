package animation

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-viewer/internal/camera"
	"product-viewer/internal/config"
)

type fakeClock struct{ t time.Time }

func newClock() *fakeClock { return &fakeClock{t: time.Unix(1700000000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newCamera() *camera.Camera {
	c := camera.NewPerspective(75, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 3, 5}
	c.LookAt(mgl32.Vec3{})
	c.SetViewport(800, 600)
	return c
}

func TestTickKeepsFovInBoundsAndFlips(t *testing.T) {
	cam := newCamera()
	cfg := config.Default().Animation
	cfg.FOVRate = 10
	clock := newClock()
	a := New(cam, nil, cfg, WithClock(clock.Now))

	// Starts above the upper bound: clamped on the first tick and turned around.
	require.True(t, a.Tick(0.1))
	assert.Equal(t, float32(70), cam.FovY)
	assert.Equal(t, float32(-1), a.Direction())

	flips := 0
	prev := a.Direction()
	for i := 0; i < 2000; i++ {
		clock.Advance(16 * time.Millisecond)
		a.Tick(0.1)
		assert.GreaterOrEqual(t, cam.FovY, cfg.FOVMin)
		assert.LessOrEqual(t, cam.FovY, cfg.FOVMax)
		if a.Direction() != prev {
			flips++
			prev = a.Direction()
			assert.True(t, cam.FovY == cfg.FOVMin || cam.FovY == cfg.FOVMax, "flip only at a bound, fov %v", cam.FovY)
		}
	}
	assert.GreaterOrEqual(t, flips, 10)
}

func TestTickUpdatesProjection(t *testing.T) {
	cam := newCamera()
	a := New(cam, nil, config.Default().Animation, WithClock(newClock().Now))
	rev := cam.Revision()
	before := cam.Projection()
	a.Tick(1.0 / 60)
	assert.Equal(t, rev+1, cam.Revision())
	assert.NotEqual(t, before, cam.Projection())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(cam.FovY), cam.Aspect, cam.Near, cam.Far), cam.Projection())
}

func TestTickBobFollowsWallClock(t *testing.T) {
	cam := newCamera()
	cfg := config.Default().Animation
	clock := newClock()
	a := New(cam, nil, cfg, WithClock(clock.Now))

	clock.Advance(1500 * time.Millisecond)
	y := cam.Position.Y()
	a.Tick(1.0 / 60)
	want := math32.Sin(1500*cfg.BobFrequency) * cfg.BobAmplitude
	assert.InDelta(t, want, cam.Position.Y()-y, 1e-6)
	assert.LessOrEqual(t, math32.Abs(cam.Position.Y()-y), cfg.BobAmplitude)
}

func TestTickIsNoopWhenOff(t *testing.T) {
	cam := newCamera()
	cfg := config.Default().Animation
	cfg.AutoRotate = false
	clock := newClock()
	a := New(cam, nil, cfg, WithClock(clock.Now))

	pos, fov, rev := cam.Position, cam.FovY, cam.Revision()
	clock.Advance(time.Second)
	assert.False(t, a.Tick(0.5))
	assert.Equal(t, pos, cam.Position)
	assert.Equal(t, fov, cam.FovY)
	assert.Equal(t, rev, cam.Revision())
}

func TestToggleMirrorsControls(t *testing.T) {
	cam := newCamera()
	controls := camera.NewOrbitControls(cam, camera.WithAutoRotate(false, 1))
	a := New(cam, controls, config.Default().Animation)
	assert.True(t, a.AutoRotate())
	assert.True(t, controls.AutoRotate)

	assert.False(t, a.ToggleAutoRotate())
	assert.False(t, controls.AutoRotate)
	assert.True(t, a.ToggleAutoRotate())
	assert.True(t, controls.AutoRotate)
	assert.Equal(t, a.AutoRotate(), controls.AutoRotate)
}
