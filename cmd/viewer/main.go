// viewer shows a procedurally built chair in an interactive 3D window.
//
// Controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll      - Zoom in/out
//	Hover       - Highlight a part
//	Click       - Inspect a part
//	Space       - Toggle auto-rotation
//	R           - Reset view
//	F           - Toggle fullscreen
//	H           - Toggle debug HUD
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"product-viewer/internal/app"
	"product-viewer/internal/config"
	"product-viewer/internal/event"
	"product-viewer/internal/export"
	"product-viewer/internal/graphics"
	"product-viewer/internal/logger"
	"product-viewer/internal/model"
	"product-viewer/internal/render"
	"product-viewer/internal/surface"
)

var version = "dev"

func init() {
	// raylib must run on the main OS thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	theme      string
	width      int
	height     int
	fps        int
	logLevel   string
}

func main() {
	opts := &options{}
	root := &cobra.Command{
		Use:   "viewer",
		Short: "Interactive 3D product viewer",
		Long: `viewer - Interactive 3D product viewer

Shows a procedurally built chair. Hover a part to highlight it, click it to
read its details.

Controls:
  Mouse drag  - Orbit
  Scroll      - Zoom
  Space       - Toggle auto-rotation
  R           - Reset view
  F           - Toggle fullscreen
  H           - Toggle debug HUD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the viewer config (YAML)")
	pf.StringVar(&opts.theme, "theme", "", "Chair theme (overrides the config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warning, error")
	root.Flags().IntVar(&opts.width, "width", 0, "Window width")
	root.Flags().IntVar(&opts.height, "height", 0, "Window height")
	root.Flags().IntVar(&opts.fps, "fps", 0, "Target FPS")

	root.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Print the parts of the chair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chair, err := opts.chair(cmd)
			if err != nil {
				return err
			}
			return export.WriteTable(cmd.OutOrStdout(), chair)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "export <file.glb>",
		Short: "Write the chair as binary glTF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chair, err := opts.chair(cmd)
			if err != nil {
				return err
			}
			if err := export.WriteGLB(chair, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d parts to %s\n", chair.Len(), args[0])
			return nil
		},
	})
	root.AddCommand(configCommand(opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, root, fang.WithVersion(version))
	stop()
	if err != nil {
		log.Errf("viewer: %v", err)
		os.Exit(1)
	}
}

// load reads the config file, then environment overrides (process env over .env), then
// flags.
func (o *options) load(cmd *cobra.Command) (config.Viewer, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	dotenv, err := config.ReadDotEnv(config.DotEnvPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(config.EnvLookup(dotenv)); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("width") {
		cfg.Window.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = o.height
	}
	if flags.Changed("fps") {
		cfg.Window.TargetFPS = o.fps
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o *options) chair(cmd *cobra.Command) (*model.Product, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	appearance, err := cfg.Appearance()
	if err != nil {
		return nil, err
	}
	return model.BuildChairWith(appearance), nil
}

// configCommand prints the effective configuration, or saves it to the --config path.
func configCommand(opts *options) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if !write {
				return config.Encode(cmd.OutOrStdout(), cfg)
			}
			if err := config.Save(opts.configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Save to the --config path instead of printing")
	return cmd
}

func runViewer(ctx context.Context, cfg config.Viewer) error {
	bus := event.NewBus()
	win := graphics.Open(cfg.Window, bus)
	defer win.Close()

	canvas := render.NewCanvas(cfg.UI.Font)
	defer canvas.Close()

	viewer, err := app.New(cfg, app.Deps{
		Platform:    win,
		NewRenderer: render.Factory(surface.NewLibrary(surface.DefaultSize)),
		Bus:         bus,
		Canvas:      canvas,
		Log:         logger.New(logger.DefaultCapacity),
	})
	if err != nil {
		return err
	}
	defer viewer.Close()
	return viewer.Run(ctx)
}
