// Package game implements the sky viewer main loop.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/camera"
	"github.com/Faultbox/midgard-sky/internal/engine/debug"
	"github.com/Faultbox/midgard-sky/internal/engine/input"
	"github.com/Faultbox/midgard-sky/internal/engine/lighting"
	"github.com/Faultbox/midgard-sky/internal/engine/renderer"
	"github.com/Faultbox/midgard-sky/internal/engine/window"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/scene"
	skylight "github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

const windowTitle = "Midgard Sky"

// Game is the viewer instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.LookCamera
	scene    *scene.Scene
	lights   *lighting.Buffer
	shots    *debug.ScreenshotCapture
	wantShot bool
	log      *zap.Logger
}

// New creates the window, the GL resources and the scene.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		input:  input.New(),
		lights: lighting.NewBuffer(),
		shots:  debug.NewScreenshotCapture("screenshots", "sky", debug.FormatPNG),
		log:    logger.Named("game"),
	}

	sc, err := scene.New(cfg, time.Now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	g.scene = sc

	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes after the window, since the GL context must exist
	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, Obstacles: sc.Obstacles}, sc.Mesh)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.camera = camera.NewLookCamera(sc.Eye, sc.Sky.Radius())
	sc.Sky.FollowViewer(g.camera.Position)

	g.log.Info("viewer initialized")
	return g, nil
}

// Run starts the main loop. It returns when the window closes or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	g.running = true
	g.scene.Start(ctx)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameLimit time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frameLimit = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	g.log.Info("starting main loop", zap.Float64("time_scale", g.scene.Clock.Scale()))

	for g.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			break
		}
		g.handleInput()

		// 2. Advance the sky
		g.scene.Sky.FollowViewer(g.camera.Position)
		g.scene.Tick(dt)

		// 3. Render and present
		g.render()
		if g.wantShot {
			g.screenshot()
			g.wantShot = false
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.updateTitle(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameLimit > 0 {
			if spent := time.Since(now); spent < frameLimit {
				time.Sleep(frameLimit - spent)
			}
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if err := g.scene.Close(); err != nil {
		g.log.Warn("scene close", zap.Error(err))
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleInput() {
	clock := g.scene.Clock
	atmo := g.scene.Sky.Config()

	for _, e := range g.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)

		case input.EventMouseMove:
			if g.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				g.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(float32(e.DeltaY))

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_SPACE:
				clock.SetPaused(!clock.Paused())
			case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
				clock.SetScale(max(clock.Scale()*2, 1))
			case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
				clock.SetScale(clock.Scale() / 2)
			case sdl.SCANCODE_T:
				atmo.SetTurbidity(atmo.Turbidity() + 0.5)
			case sdl.SCANCODE_G:
				atmo.SetTurbidity(atmo.Turbidity() - 0.5)
			case sdl.SCANCODE_O:
				atmo.SetOvercastFactor(atmo.Overcast() + 0.05)
			case sdl.SCANCODE_L:
				atmo.SetOvercastFactor(atmo.Overcast() - 0.05)
			case sdl.SCANCODE_F12:
				g.wantShot = true
			default:
				continue
			}
			g.log.Debug("controls changed",
				zap.Float64("time_scale", clock.Scale()),
				zap.Bool("paused", clock.Paused()),
				zap.Float64("turbidity", atmo.Turbidity()),
				zap.Float64("overcast", atmo.Overcast()),
			)
		}
	}
}

func (g *Game) render() {
	f := g.scene.Frame()
	viewProj := g.camera.ViewProj(g.renderer.Aspect())

	var moons []*skylight.Light
	for _, m := range g.scene.Sky.Moons() {
		moons = append(moons, m.Light)
	}
	g.lights.Fill(g.scene.Ambient, math.Vec3{}, moons...)

	g.renderer.Begin(f.Haze)
	g.renderer.DrawSky(viewProj, g.scene.Sky, f, g.scene.Weather, g.scene.CloudAlpha())
	g.renderer.DrawGround(viewProj, g.camera.Position, g.lights, g.scene.Weather.Fog(), f.ShadowTint)
	g.renderer.End()
}

func (g *Game) updateTitle(fps int) {
	title := fmt.Sprintf("%s | %s | sun %.1f°", windowTitle,
		g.scene.Now().Format("2006-01-02 15:04"), g.scene.SunDegrees(0))
	if g.cfg.Graphics.ShowFPS {
		title += fmt.Sprintf(" | %d fps", fps)
	}
	if g.scene.Clock.Paused() {
		title += " | paused"
	}
	g.window.SetTitle(title)
}

func (g *Game) screenshot() {
	w, h := g.window.DrawableSize()
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}
