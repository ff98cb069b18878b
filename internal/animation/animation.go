// Package animation drives the idle camera motion shown while auto-rotate is on: a
// slow vertical bob and a field-of-view sweep between two bounds.
package animation

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/config"
)

// Animator owns the auto-rotate flag and the FOV sweep direction.
type Animator struct {
	cam      *camera.Camera
	controls *camera.OrbitControls
	cfg      config.Animation

	autoRotate bool
	direction  float32

	now   func() time.Time
	epoch time.Time
}

// Option configures an Animator.
type Option func(*Animator)

// WithClock replaces the wall clock used for the bob phase.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) { a.now = now }
}

// New returns an animator for cam. Auto-rotate starts as cfg.AutoRotate and is mirrored
// into controls, which may be nil.
func New(cam *camera.Camera, controls *camera.OrbitControls, cfg config.Animation, opts ...Option) *Animator {
	a := &Animator{
		cam:       cam,
		controls:  controls,
		cfg:       cfg,
		direction: 1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.epoch = a.now()
	a.SetAutoRotate(cfg.AutoRotate)
	return a
}

// AutoRotate reports whether auto-rotate is on.
func (a *Animator) AutoRotate() bool { return a.autoRotate }

// Direction is +1 while the FOV widens and -1 while it narrows.
func (a *Animator) Direction() float32 { return a.direction }

// SetAutoRotate sets the flag on the animator and the orbit controls together.
func (a *Animator) SetAutoRotate(on bool) {
	a.autoRotate = on
	if a.controls != nil {
		a.controls.AutoRotate = on
	}
}

// ToggleAutoRotate flips auto-rotate and returns the new state.
func (a *Animator) ToggleAutoRotate() bool {
	a.SetAutoRotate(!a.autoRotate)
	return a.autoRotate
}

// Tick advances the animation by dt seconds. It does nothing while auto-rotate is off.
func (a *Animator) Tick(dt float32) bool {
	if !a.autoRotate {
		return false
	}
	ms := float32(a.now().Sub(a.epoch).Milliseconds())
	a.cam.Position[1] += math32.Sin(ms*a.cfg.BobFrequency) * a.cfg.BobAmplitude

	a.cam.FovY = mgl32.Clamp(a.cam.FovY+a.cfg.FOVRate*dt*a.direction, a.cfg.FOVMin, a.cfg.FOVMax)
	if a.cam.FovY <= a.cfg.FOVMin || a.cam.FovY >= a.cfg.FOVMax {
		a.direction = -a.direction
	}
	a.cam.UpdateProjection()
	return true
}
