package scene

import (
	"errors"
	"fmt"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/config"
	"product-viewer/internal/event"
)

// ErrNoSurface is returned by Init when there is no ready drawing surface.
var ErrNoSurface = errors.New("scene: drawing surface missing or not ready")

// Surface is the window area the renderer draws into.
type Surface interface {
	Ready() bool
	Size() (width, height int)
}

// Renderer draws a scene through a camera onto its surface.
type Renderer interface {
	SetSize(width, height int)
	EnableShadows(on bool)
	Render(s *Scene, cam *camera.Camera)
	Close() error
}

// RendererFactory binds a renderer to a surface.
type RendererFactory func(Surface) (Renderer, error)

// Stage is a bootstrapped scene with its camera, renderer and orbit controls.
type Stage struct {
	Scene    *Scene
	Camera   *camera.Camera
	Renderer Renderer
	Controls *camera.OrbitControls

	surface Surface
}

// Init builds the stage on surface. It fails with ErrNoSurface, and builds nothing, when
// surface is nil or not ready.
func Init(surface Surface, newRenderer RendererFactory, cfg config.Viewer) (*Stage, error) {
	if surface == nil || !surface.Ready() {
		return nil, ErrNoSurface
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrNoSurface, w, h)
	}

	sc := New()
	sc.Background = config.ColorOr(cfg.Lighting.Background, DefaultBackground)
	sc.GridVisible = cfg.Lighting.Grid
	sc.Shadows = cfg.Lighting.Shadows

	cc := cfg.Camera
	cam := camera.NewPerspective(cc.FOV, float32(w)/float32(h), cc.Near, cc.Far)
	cam.Position = mgl32.Vec3(cc.Position)
	cam.LookAt(mgl32.Vec3(cc.Target))
	cam.SetViewport(w, h)

	r, err := newRenderer(surface)
	if err != nil {
		return nil, fmt.Errorf("scene: renderer: %w", err)
	}
	r.SetSize(w, h)
	r.EnableShadows(sc.Shadows)

	ctl := cfg.Controls
	opts := []camera.Option{
		camera.WithDistanceLimits(ctl.MinDistance, ctl.MaxDistance),
		camera.WithSpeeds(ctl.RotateSpeed, ctl.ZoomSpeed),
		camera.WithAutoRotate(cfg.Animation.AutoRotate, ctl.AutoRotateSpeed),
	}
	if ctl.EnableDamping {
		opts = append(opts, camera.WithDamping(ctl.DampingFactor))
	}
	controls := camera.NewOrbitControls(cam, opts...)

	log.Infof("scene: stage %dx%d, fov %.0f, camera at %v", w, h, cam.FovY, cam.Position)
	return &Stage{Scene: sc, Camera: cam, Renderer: r, Controls: controls, surface: surface}, nil
}

// Resize keeps the camera aspect and renderer size in step with the surface.
func (st *Stage) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	st.Camera.SetViewport(width, height)
	st.Renderer.SetSize(width, height)
}

// Subscribe resizes the stage on every event.Resize.
func (st *Stage) Subscribe(bus *event.Bus) {
	event.On(bus, func(e event.Resize) { st.Resize(e.Width, e.Height) })
}

// Render draws the scene once.
func (st *Stage) Render() {
	st.Renderer.Render(st.Scene, st.Camera)
}

// Close releases the renderer.
func (st *Stage) Close() error {
	return st.Renderer.Close()
}
