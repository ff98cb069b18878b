// Package app is the viewer's context object: it builds the stage, the chair, the
// lights, the interaction and animation controllers and the UI, wires them to one event
// bus and runs the frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fortio.org/log"

	"product-viewer/internal/animation"
	"product-viewer/internal/commands"
	"product-viewer/internal/config"
	"product-viewer/internal/debug"
	"product-viewer/internal/event"
	"product-viewer/internal/interaction"
	"product-viewer/internal/lighting"
	"product-viewer/internal/logger"
	"product-viewer/internal/model"
	"product-viewer/internal/scene"
	"product-viewer/internal/ui"
)

// Action names registered on the command registry.
const (
	ActionToggleRotate = "toggle-rotate"
	ActionResetView    = "reset-view"
	ActionFullscreen   = "fullscreen"
	ActionToggleHUD    = "toggle-hud"
)

const (
	overlayKey     = "overlay"
	loadingMessage = "Loading..."
	hudLogLines    = 8
)

// Platform is the window the viewer draws into.
type Platform interface {
	scene.Surface
	ToggleFullscreen() error
	FPS() int
	Run(ctx context.Context, frame func(dt float32)) error
}

// Deps are the collaborators New does not build itself. Platform and NewRenderer are
// required; the rest default to production implementations.
type Deps struct {
	Platform    Platform
	NewRenderer scene.RendererFactory
	// Bus defaults to a new bus. The platform should post its input events here.
	Bus *event.Bus
	// Canvas receives the UI each frame; nil skips UI drawing.
	Canvas ui.Canvas
	// Caster picks parts; defaults to the renderer when it is an interaction.Raycaster,
	// then to interaction.MeshRaycaster.
	Caster interaction.Raycaster
	// AfterFunc backs the scheduler; defaults to real timers.
	AfterFunc event.AfterFunc
	// Clock drives the camera bob; defaults to time.Now.
	Clock func() time.Time
	Log   *logger.Logger
}

// App holds every component of a running viewer.
type App struct {
	cfg      config.Viewer
	platform Platform
	canvas   ui.Canvas
	bus      *event.Bus
	sched    *event.Scheduler
	log      *logger.Logger

	Stage       *scene.Stage
	Product     *model.Product
	Interaction *interaction.Controller
	Animator    *animation.Animator
	Commands    *commands.Registry
	UI          *ui.Engine
	Panel       *ui.PartPanel
	Overlay     *ui.Overlay
	Debug       *debug.Debug
	Buttons     map[string]*ui.Button
}

// New builds the viewer in dependency order: stage, chair, lights, interaction,
// animation, UI. It fails without building anything when the platform has no ready
// surface (scene.ErrNoSurface).
func New(cfg config.Viewer, deps Deps) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if deps.NewRenderer == nil {
		return nil, errors.New("app: no renderer factory")
	}
	a := &App{cfg: cfg, platform: deps.Platform, canvas: deps.Canvas, bus: deps.Bus, log: deps.Log}
	if a.bus == nil {
		a.bus = event.NewBus()
	}
	if a.log == nil {
		a.log = logger.New(logger.DefaultCapacity)
	}
	after := deps.AfterFunc
	if after == nil {
		after = event.RealAfterFunc
	}

	var surface scene.Surface
	if deps.Platform != nil {
		surface = deps.Platform
	}
	stage, err := scene.Init(surface, deps.NewRenderer, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.Stage = stage
	a.sched = event.NewSchedulerWith(a.bus, after)

	appearance, err := cfg.Appearance()
	if err != nil {
		return nil, a.abort(err)
	}
	a.Product = model.BuildChairWith(appearance)
	stage.Scene.Add(a.Product)

	rig, err := lighting.Rig(cfg.Lighting)
	if err != nil {
		return nil, a.abort(err)
	}
	lighting.Apply(stage.Scene, rig)

	if err := a.wireInteraction(deps.Caster); err != nil {
		return nil, a.abort(err)
	}

	var opts []animation.Option
	if deps.Clock != nil {
		opts = append(opts, animation.WithClock(deps.Clock))
	}
	a.Animator = animation.New(stage.Camera, stage.Controls, cfg.Animation, opts...)

	if err := a.wireUI(); err != nil {
		return nil, a.abort(err)
	}
	a.subscribe()
	a.sched.After(overlayKey, cfg.UI.LoadingDelay, event.OverlayTimeout{})

	a.log.Logf("%s ready: %d parts, theme %s", a.Product.Name(), a.Product.Len(), appearance.Name)
	return a, nil
}

// abort releases what New built so far.
func (a *App) abort(err error) error {
	a.sched.Stop()
	if cerr := a.Stage.Close(); cerr != nil {
		log.Warnf("app: closing stage: %v", cerr)
	}
	return fmt.Errorf("app: %w", err)
}

func (a *App) wireInteraction(caster interaction.Raycaster) error {
	ic := a.cfg.Interaction
	highlight, err := config.ParseColor(ic.HighlightColor)
	if err != nil {
		return fmt.Errorf("highlight color: %w", err)
	}
	if caster == nil {
		// Renderers that can pick against their own meshes do so.
		if rc, ok := a.Stage.Renderer.(interaction.Raycaster); ok {
			caster = rc
		} else {
			caster = interaction.MeshRaycaster{}
		}
	}
	a.Interaction = interaction.New(a.Stage.Camera, a.Product, caster, a.sched, interaction.Options{
		HighlightColor: highlight,
		PulseScale:     ic.PulseScale,
		PulseDuration:  ic.PulseDuration,
	})
	a.Interaction.OnSelect = func(name, description string) {
		a.Panel.Show(name, description)
		a.log.Logf("inspect %s", name)
	}
	return nil
}

func (a *App) wireUI() error {
	a.UI = ui.New()
	a.UI.SetStylesheet(ui.DefaultStylesheet())
	if path := a.cfg.UI.Stylesheet; path != "" {
		if err := a.UI.LoadCSS(path); err != nil {
			a.log.Warnf("stylesheet %s: %v, using the built-in one", path, err)
		}
	}
	a.UI.SetFontSize(a.cfg.UI.FontSize)

	a.Commands = commands.NewRegistry()
	a.Commands.Register(ActionToggleRotate, "Toggle auto-rotation", a.toggleRotate)
	a.Commands.Register(ActionResetView, "Reset the camera to its initial pose", a.resetView)
	a.Commands.Register(ActionFullscreen, "Toggle fullscreen", a.toggleFullscreen)
	a.Commands.Register(ActionToggleHUD, "Toggle the debug HUD", a.toggleHUD)
	bindings := []struct {
		key  rune
		name string
	}{
		{' ', ActionToggleRotate},
		{'r', ActionResetView},
		{'f', ActionFullscreen},
		{'h', ActionToggleHUD},
	}
	for _, b := range bindings {
		if err := a.Commands.Bind(b.key, b.name); err != nil {
			return err
		}
	}

	a.Panel = ui.NewPartPanel()
	a.Overlay = ui.NewOverlay(loadingMessage)
	a.Buttons = map[string]*ui.Button{
		ActionToggleRotate: ui.NewButton(a.UI, "rotate-toggle", "Auto Rotate", a.run(ActionToggleRotate)),
		ActionResetView:    ui.NewButton(a.UI, "reset-view", "Reset View", a.run(ActionResetView)),
		ActionFullscreen:   ui.NewButton(a.UI, "fullscreen", "Fullscreen", a.run(ActionFullscreen)),
	}
	a.Buttons[ActionToggleRotate].SetActive(a.Animator.AutoRotate())

	a.UI.AddNodes(a.Panel.Nodes()...)
	for _, name := range []string{ActionToggleRotate, ActionResetView, ActionFullscreen} {
		a.UI.AddNode(a.Buttons[name].Node())
	}
	a.UI.AddNodes(a.Overlay.Nodes()...)

	fps := func() int { return 0 }
	if a.platform != nil {
		fps = a.platform.FPS
	}
	a.Debug = debug.New(fps, func() []string { return a.log.Tail(hudLogLines) })
	a.Debug.SetShowFPS(a.cfg.Debug.ShowFPS)
	a.Debug.SetShowMemAlloc(a.cfg.Debug.ShowMemAlloc)
	return nil
}

// run returns a click handler executing the named action, logging failures.
func (a *App) run(name string) func() {
	return func() {
		if err := a.Commands.Execute(name); err != nil {
			a.log.Warnf("%v", err)
		}
	}
}

func (a *App) subscribe() {
	a.Stage.Subscribe(a.bus)
	event.On(a.bus, func(e event.PointerMove) {
		if a.overUI(e.X, e.Y) {
			a.Interaction.Leave()
			return
		}
		a.Interaction.PointerMove(e.X, e.Y)
	})
	event.On(a.bus, func(e event.PointerClick) {
		a.layoutUI()
		if a.UI.Click(e.X, e.Y) {
			return
		}
		a.Interaction.PointerClick(e.X, e.Y)
	})
	event.On(a.bus, func(e event.PointerDrag) {
		if a.Overlay.Visible() {
			return
		}
		a.Stage.Controls.Drag(e.DX, e.DY)
	})
	event.On(a.bus, func(e event.Wheel) {
		if a.Overlay.Visible() {
			return
		}
		a.Stage.Controls.Zoom(e.Delta)
	})
	event.On(a.bus, a.Interaction.HandlePulseExpired)
	event.On(a.bus, func(event.OverlayTimeout) { a.hideOverlay() })
	a.Commands.Subscribe(a.bus)
}

func (a *App) layoutUI() {
	if a.platform == nil {
		return
	}
	a.UI.Layout(a.platform.Size())
}

func (a *App) overUI(x, y float32) bool {
	a.layoutUI()
	_, ok := a.UI.HitTest(x, y)
	return ok
}

// hideOverlay removes the loading overlay and posts a resize so every size-dependent
// component settles on the final window size.
func (a *App) hideOverlay() {
	if !a.Overlay.Visible() {
		return
	}
	a.Overlay.Hide()
	a.UI.Invalidate()
	if a.platform != nil {
		w, h := a.platform.Size()
		a.bus.Post(event.Resize{Width: w, Height: h})
	}
	log.LogVf("app: overlay hidden")
}

func (a *App) toggleRotate() error {
	on := a.Animator.ToggleAutoRotate()
	a.Buttons[ActionToggleRotate].SetActive(on)
	a.log.Logf("auto-rotate %v", on)
	return nil
}

func (a *App) resetView() error {
	a.Stage.Controls.Reset()
	a.log.Logf("view reset")
	return nil
}

func (a *App) toggleFullscreen() error {
	if a.platform == nil {
		return errors.New("no window")
	}
	return a.platform.ToggleFullscreen()
}

func (a *App) toggleHUD() error {
	a.Debug.Toggle()
	return nil
}

// Bus returns the event bus the app drains each frame.
func (a *App) Bus() *event.Bus { return a.bus }

// Frame runs one iteration of the loop: deliver queued events, advance the camera
// animation and the orbit controls, then draw the scene and the UI.
func (a *App) Frame(dt float32) {
	a.bus.Drain()
	a.Animator.Tick(dt)
	a.Stage.Controls.Update(dt)
	a.Stage.Render()
	if a.canvas != nil {
		a.UI.Draw(a.canvas)
		a.Debug.Draw(a.canvas)
	}
}

// Run drives Frame from the platform loop until the window closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.platform == nil {
		return errors.New("app: no platform")
	}
	err := a.platform.Run(ctx, a.Frame)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close cancels pending timers and releases the renderer.
func (a *App) Close() error {
	a.sched.Stop()
	a.Interaction.Reset()
	return a.Stage.Close()
}
