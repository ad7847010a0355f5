// Package renderer provides OpenGL rendering for the sky viewer.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/engine/dome"
	"github.com/Faultbox/midgard-sky/internal/engine/lighting"
	"github.com/Faultbox/midgard-sky/internal/engine/picking"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// GroundSize is the half extent of the ground plane.
	GroundSize float32
	// Obstacles are drawn as boxes standing on the ground.
	Obstacles []picking.AABB
}

// Renderer draws the dome and a lit, fogged ground plane.
type Renderer struct {
	config Config
	dome   *DomeRenderer
	ground *groundRenderer
	log    *zap.Logger
}

// New creates a renderer for mesh.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, mesh *dome.Mesh) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	var err error
	if r.dome, err = NewDomeRenderer(mesh); err != nil {
		return nil, err
	}
	if r.ground, err = newGroundRenderer(cfg.GroundSize, cfg.Obstacles); err != nil {
		r.dome.Close()
		return nil, fmt.Errorf("ground: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.ground.Close()
	r.dome.Close()
}

// Resize handles window resize. Sizes are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame cleared to the haze color.
func (r *Renderer) Begin(clear math.Color) {
	c := clear.Clamped()
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawSky uploads the frame colors and draws the dome around the viewer.
func (r *Renderer) DrawSky(viewProj math.Mat4, s *sky.Sky, f *sky.Frame, w *sky.Weather, cloudAlpha float32) {
	r.dome.SetColors(f.Colors)
	r.dome.Draw(viewProj, s.DomeOffset(), s.Radius(), SkyLayers{
		StarOffset:  f.StarOffset,
		StarAlpha:   f.StarAlpha,
		CloudOffset: w.Clouds().Translation(),
		CloudAlpha:  cloudAlpha,
	})
}

// DrawGround draws the ground lit by lights and fogged by fog, seen from eye.
func (r *Renderer) DrawGround(viewProj math.Mat4, eye math.Vec3, lights *lighting.Buffer, fog sky.Fog, shadow math.Color) {
	r.ground.Draw(viewProj, eye, lights, fog, shadow)
}

// End finishes the current frame.
func (r *Renderer) End() {
	if code := gl.GetError(); code != gl.NO_ERROR {
		r.log.Warn("GL error", zap.Uint32("code", code))
	}
}
