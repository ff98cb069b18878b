package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// referenceFPS is the frame rate a damping factor is defined against: each frame at
	// this rate keeps (1 - factor) of the remaining motion.
	referenceFPS = 60
	// polarEpsilon keeps the camera off the poles where the up vector degenerates.
	polarEpsilon = 1e-3
	// autoRotatePeriod is the orbit time in seconds at AutoRotateSpeed 1.
	autoRotatePeriod = 60
)

// OrbitControls orbits a camera around a target in spherical coordinates. User input
// accumulates as pending rotation and zoom; Update applies it, either at once or eased
// out through a critically damped spring when damping is enabled.
type OrbitControls struct {
	cam *Camera

	Target          mgl32.Vec3
	EnableDamping   bool
	DampingFactor   float32
	MinDistance     float32
	MaxDistance     float32
	RotateSpeed     float32
	ZoomSpeed       float32
	AutoRotate      bool
	AutoRotateSpeed float32

	pendingTheta, pendingPhi float64
	velTheta, velPhi         float64
	pendingScale             float32

	position0, target0 mgl32.Vec3
}

// Option configures OrbitControls.
type Option func(*OrbitControls)

// WithDamping enables damping with the given factor in (0, 1).
func WithDamping(factor float32) Option {
	return func(o *OrbitControls) {
		o.EnableDamping = factor > 0
		o.DampingFactor = factor
	}
}

// WithDistanceLimits clamps the camera-to-target distance.
func WithDistanceLimits(lo, hi float32) Option {
	return func(o *OrbitControls) {
		o.MinDistance, o.MaxDistance = lo, hi
	}
}

// WithAutoRotate sets the auto-rotate flag and speed.
func WithAutoRotate(enabled bool, speed float32) Option {
	return func(o *OrbitControls) {
		o.AutoRotate, o.AutoRotateSpeed = enabled, speed
	}
}

// WithSpeeds scales user rotate and zoom input.
func WithSpeeds(rotate, zoom float32) Option {
	return func(o *OrbitControls) {
		o.RotateSpeed, o.ZoomSpeed = rotate, zoom
	}
}

// NewOrbitControls attaches controls to cam, orbiting cam.Target, and saves the
// current pose as the reset pose.
func NewOrbitControls(cam *Camera, opts ...Option) *OrbitControls {
	o := &OrbitControls{
		cam:             cam,
		Target:          cam.Target,
		MinDistance:     0,
		MaxDistance:     float32(math.Inf(1)),
		RotateSpeed:     1,
		ZoomSpeed:       1,
		AutoRotateSpeed: 1,
		pendingScale:    1,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.SaveState()
	return o
}

// Camera returns the controlled camera.
func (o *OrbitControls) Camera() *Camera { return o.cam }

// Rotate queues an orbit of dAzimuth radians around the up axis and dPolar radians
// toward the pole. Positive dAzimuth orbits to the left.
func (o *OrbitControls) Rotate(dAzimuth, dPolar float32) {
	o.pendingTheta -= float64(dAzimuth * o.RotateSpeed)
	o.pendingPhi -= float64(dPolar * o.RotateSpeed)
}

// Drag queues a rotation from a pointer drag of (dx, dy) pixels; a drag across the
// full viewport height turns a full circle.
func (o *OrbitControls) Drag(dx, dy float32) {
	_, h := o.cam.Viewport()
	if h <= 0 {
		return
	}
	o.Rotate(2*math32.Pi*dx/float32(h), 2*math32.Pi*dy/float32(h))
}

// Zoom queues a dolly from wheel steps: positive moves closer.
func (o *OrbitControls) Zoom(steps float32) {
	if steps == 0 {
		return
	}
	scale := math32.Pow(0.95, o.ZoomSpeed*math32.Abs(steps))
	if steps > 0 {
		o.pendingScale *= scale
	} else {
		o.pendingScale /= scale
	}
}

// Update applies pending input and auto-rotation for a frame of dt seconds, writes the
// new camera position and reports whether the camera moved.
func (o *OrbitControls) Update(dt float32) bool {
	before := o.cam.Position

	offset := o.cam.Position.Sub(o.Target)
	radius := offset.Len()
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))
	}

	if o.AutoRotate && dt > 0 {
		o.pendingTheta -= float64(2 * math32.Pi / autoRotatePeriod * o.AutoRotateSpeed * dt)
	}

	var dTheta, dPhi float64
	if o.EnableDamping && dt > 0 {
		spring := harmonica.NewSpring(float64(dt), o.dampingFrequency(), 1)
		var rest float64
		rest, o.velTheta = spring.Update(o.pendingTheta, o.velTheta, 0)
		dTheta, o.pendingTheta = o.pendingTheta-rest, rest
		rest, o.velPhi = spring.Update(o.pendingPhi, o.velPhi, 0)
		dPhi, o.pendingPhi = o.pendingPhi-rest, rest
	} else {
		dTheta, dPhi = o.pendingTheta, o.pendingPhi
		o.pendingTheta, o.pendingPhi, o.velTheta, o.velPhi = 0, 0, 0, 0
	}

	theta += float32(dTheta)
	phi = mgl32.Clamp(phi+float32(dPhi), polarEpsilon, math32.Pi-polarEpsilon)
	radius = mgl32.Clamp(radius*o.pendingScale, o.MinDistance, o.MaxDistance)
	o.pendingScale = 1

	sinPhi := math32.Sin(phi)
	o.cam.Position = o.Target.Add(mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	})
	o.cam.Target = o.Target
	return !o.cam.Position.ApproxEqualThreshold(before, 1e-5)
}

// dampingFrequency converts DampingFactor into a spring angular frequency whose settle
// time matches the per-frame decay at referenceFPS.
func (o *OrbitControls) dampingFrequency() float64 {
	f := float64(o.DampingFactor)
	if f <= 0 || f >= 1 {
		return referenceFPS
	}
	return -math.Log(1-f) * referenceFPS * 2
}

// SaveState records the current camera position and target as the reset pose.
func (o *OrbitControls) SaveState() {
	o.position0 = o.cam.Position
	o.target0 = o.Target
}

// Reset returns the camera to the saved pose and drops pending motion.
func (o *OrbitControls) Reset() {
	o.Target = o.target0
	o.cam.Position = o.position0
	o.cam.Target = o.target0
	o.pendingTheta, o.pendingPhi, o.velTheta, o.velPhi = 0, 0, 0, 0
	o.pendingScale = 1
	o.cam.UpdateProjection()
}

// Settled reports whether no user motion is pending.
func (o *OrbitControls) Settled() bool {
	const tiny = 1e-6
	return math.Abs(o.pendingTheta) < tiny && math.Abs(o.pendingPhi) < tiny &&
		math.Abs(o.velTheta) < tiny && math.Abs(o.velPhi) < tiny && o.pendingScale == 1
}
