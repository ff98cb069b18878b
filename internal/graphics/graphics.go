// Package graphics owns the raylib window: it is the drawing surface, turns raw input
// into events on the bus and runs the frame loop.
package graphics

import (
	"context"
	"errors"
	"unicode"

	"fortio.org/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/config"
	"product-viewer/internal/event"
)

var (
	// ErrFullscreen is returned when the window cannot enter or leave fullscreen.
	ErrFullscreen = errors.New("graphics: fullscreen unavailable")
	// ErrNotOpen is returned by Run when the window was never opened or is closed.
	ErrNotOpen = errors.New("graphics: window not open")
)

// Window is the application window. It must be used from the goroutine that opened it.
type Window struct {
	bus     *event.Bus
	gesture event.Gesture
	open    bool
	// windowedW and windowedH are restored when leaving fullscreen.
	windowedW, windowedH int
}

// Open creates the window and GL context. ESC does not close the window; closing goes
// through the window button.
func Open(cfg config.Window, bus *event.Bus) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	w := &Window{
		bus:       bus,
		gesture:   event.Gesture{Threshold: event.DefaultDragThreshold},
		open:      rl.IsWindowReady(),
		windowedW: cfg.Width,
		windowedH: cfg.Height,
	}
	log.Infof("graphics: window %dx%d ready=%v", cfg.Width, cfg.Height, w.open)
	return w
}

// Ready reports whether the window and its GL context exist.
func (w *Window) Ready() bool { return w != nil && w.open && rl.IsWindowReady() }

// Size returns the drawable size in pixels.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// FPS returns the measured frame rate.
func (w *Window) FPS() int { return int(rl.GetFPS()) }

// Poll translates this frame's input into events.
func (w *Window) Poll() {
	if rl.IsWindowResized() {
		w.bus.Post(event.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	}

	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		w.gesture.Press(pos.X, pos.Y)
	}
	for _, e := range w.gesture.Move(pos.X, pos.Y) {
		w.bus.Post(e)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if e := w.gesture.Release(pos.X, pos.Y); e != nil {
			w.bus.Post(e)
		}
	}
	if d := rl.GetMouseWheelMove(); d != 0 {
		w.bus.Post(event.Wheel{Delta: d})
	}

	for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
		w.bus.Post(event.KeyPress{Key: unicode.ToLower(r)})
	}
}

// ToggleFullscreen switches between fullscreen on the current monitor and the
// windowed size.
func (w *Window) ToggleFullscreen() error {
	if !w.Ready() {
		return ErrFullscreen
	}
	was := rl.IsWindowFullscreen()
	if !was {
		w.windowedW, w.windowedH = rl.GetScreenWidth(), rl.GetScreenHeight()
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
	}
	rl.ToggleFullscreen()
	if rl.IsWindowFullscreen() == was {
		return ErrFullscreen
	}
	if was {
		rl.SetWindowSize(w.windowedW, w.windowedH)
	}
	w.bus.Post(event.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	return nil
}

// Run calls frame once per display frame, between BeginDrawing and EndDrawing, with
// the previous frame's duration in seconds. Input is polled before each frame. It
// returns when the window is closed or ctx is done.
func (w *Window) Run(ctx context.Context, frame func(dt float32)) error {
	if !w.Ready() {
		return ErrNotOpen
	}
	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.Poll()
		dt := rl.GetFrameTime()
		rl.BeginDrawing()
		frame(dt)
		rl.EndDrawing()
	}
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	if !w.open {
		return nil
	}
	w.open = false
	rl.CloseWindow()
	return nil
}
