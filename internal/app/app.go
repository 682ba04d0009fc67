// Package app runs the interactive planet viewer.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/config"
	"github.com/Faultbox/geosphere/internal/engine/debug"
	"github.com/Faultbox/geosphere/internal/engine/input"
	"github.com/Faultbox/geosphere/internal/engine/lighting"
	"github.com/Faultbox/geosphere/internal/engine/renderer"
	"github.com/Faultbox/geosphere/internal/engine/scene"
	"github.com/Faultbox/geosphere/internal/engine/window"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	planet   *scene.PlanetRenderer
	input    *input.Input
	ctrl     *Controller

	screenshots *debug.ScreenshotCapture
	capture     bool // save the next frame
}

// New creates the window, GL resources and the LOD controller.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Float32("radius", cfg.Planet.Radius),
		zap.Int("maxLevel", cfg.Planet.MaxLevel),
	)

	a := &App{cfg: cfg, log: log}

	ctrl, err := NewController(cfg, log.Named("controller"))
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created by the window.
	width, height := a.window.DrawableSize()
	a.renderer = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [3]float32{0.02, 0.02, 0.05},
		Wireframe:  cfg.LOD.Wireframe,
	}, log.Named("renderer"))
	a.ctrl.Resize(width, height)

	a.planet, err = scene.NewPlanetRenderer(cfg.LOD.PatchLevels, log.Named("planet"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create planet renderer: %w", err)
	}

	a.planet.LightDir = lighting.LightDirection(cfg.Planet.SunLongitude, cfg.Planet.SunLatitude)

	a.input = input.New()
	a.screenshots = debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "geosphere")
	if err := a.screenshots.SetFormat(cfg.Window.ScreenshotFormat); err != nil {
		log.Warn("keeping png screenshots", zap.Error(err))
	}

	log.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleInput()

		if err := a.frame(dt); err != nil {
			return err
		}
		if a.capture {
			a.capture = false
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.ctrl.Triangulator().Stats()
			a.window.SetTitle(fmt.Sprintf("%s - %d fps, %d patches", a.cfg.Window.Title, frameCount, stats.Instances))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", time.Duration(dt*float64(time.Second))))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleInput() {
	if _, _, ok := a.input.Resized(); ok {
		width, height := a.window.DrawableSize()
		a.renderer.Resize(width, height)
		a.ctrl.Resize(width, height)
	}

	for _, event := range a.input.Events() {
		if event.Type != input.EventKeyDown {
			continue
		}
		a.apply(ActionFor(event.Key))
	}

	dx, dy := a.input.Drag()
	a.ctrl.HandleMouse(dx, dy, a.input.Wheel(), a.input.Shift())
}

func (a *App) apply(action Action) {
	switch action {
	case ActionQuit:
		a.running = false
	case ActionToggleLock:
		a.ctrl.ToggleLock()
	case ActionLogStats:
		a.ctrl.LogStats()
	case ActionLevelUp:
		a.ctrl.ChangeMaxLevel(1)
	case ActionLevelDown:
		a.ctrl.ChangeMaxLevel(-1)
	case ActionToggleWireframe:
		a.renderer.SetWireframe(!a.renderer.Wireframe())
	case ActionToggleLevels:
		a.planet.ShowLevels = !a.planet.ShowLevels
	case ActionScreenshot:
		a.capture = true
	case ActionPatchLevelsUp:
		a.changePatchLevels(1)
	case ActionPatchLevelsDown:
		a.changePatchLevels(-1)
	}
}

// changePatchLevels swaps the patch template for a finer or coarser one.
func (a *App) changePatchLevels(delta int) {
	levels := a.planet.Patch().Levels() + delta
	if err := a.planet.SetPatchLevels(levels); err != nil {
		a.log.Warn("patch levels unchanged", zap.Error(err))
		return
	}
	a.log.Info("patch levels", zap.Int("levels", levels))
}

func (a *App) saveScreenshot() {
	width, height := a.renderer.Size()
	name, err := a.screenshots.CaptureGL(width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// frame updates the LOD and draws the planet.
func (a *App) frame(dt float64) error {
	f := a.ctrl.Step(dt)
	if f.Regenerated {
		if err := a.planet.Upload(f.Instances, f.Distances); err != nil {
			return fmt.Errorf("upload patches: %w", err)
		}
	}

	a.renderer.Begin()
	if f.PlanetVisible {
		a.planet.Render(f.ViewProj, f.World, f.CameraObject, a.cfg.Planet.Radius)
	}
	return nil
}

// Close releases GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.planet != nil {
		a.planet.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
