package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerate is returned when the view or projection cannot be inverted.
var ErrDegenerate = errors.New("camera: degenerate view or projection")

// Camera is a perspective camera. FovY is in degrees; the projection matrix is cached
// and only refreshed by UpdateProjection, so callers that change FovY, Aspect, Near or
// Far must call it.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32
	Aspect   float32
	Near     float32
	Far      float32

	width, height int
	projection    mgl32.Mat4
	revision      int
}

// NewPerspective returns a camera at the origin looking down -Z with the projection computed.
func NewPerspective(fovY, aspect, near, far float32) *Camera {
	c := &Camera{
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjection()
	return c
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// UpdateProjection recomputes the projection matrix from FovY, Aspect, Near and Far.
func (c *Camera) UpdateProjection() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
	c.revision++
}

// Projection returns the cached projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// Revision counts UpdateProjection calls.
func (c *Camera) Revision() int { return c.revision }

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// SetViewport records the drawable size and sets Aspect to width/height.
func (c *Camera) SetViewport(width, height int) {
	c.width, c.height = width, height
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
	c.UpdateProjection()
}

// Viewport returns the size last passed to SetViewport.
func (c *Camera) Viewport() (width, height int) { return c.width, c.height }

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 { return c.Position.Sub(c.Target).Len() }

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 { return r.Origin.Add(r.Direction.Mul(t)) }

// NDC converts window pixel coordinates (origin top-left) into normalized device
// coordinates in [-1, 1] with +Y up.
func (c *Camera) NDC(x, y float32) (float32, float32) {
	if c.width <= 0 || c.height <= 0 {
		return 0, 0
	}
	return x/float32(c.width)*2 - 1, -(y/float32(c.height))*2 + 1
}

// ScreenRay returns the ray from the camera through window pixel (x, y).
func (c *Camera) ScreenRay(x, y float32) (Ray, error) {
	if c.width <= 0 || c.height <= 0 {
		return Ray{}, ErrDegenerate
	}
	// OpenGL window coordinates have their origin at the bottom-left.
	wy := float32(c.height) - y
	mid, err := mgl32.UnProject(mgl32.Vec3{x, wy, 0.5}, c.View(), c.projection, 0, 0, c.width, c.height)
	if err != nil {
		return Ray{}, ErrDegenerate
	}
	dir := mid.Sub(c.Position)
	if dir.Len() == 0 {
		return Ray{}, ErrDegenerate
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}, nil
}
