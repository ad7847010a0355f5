// Package scene assembles a sky from configuration and drives it from a
// real-time clock. It holds no GL state, so the viewer and the headless
// snapshot tool share it.
package scene

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/dome"
	"github.com/Faultbox/midgard-sky/internal/engine/picking"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky"
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
	"github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Scene is a sky with its dome mesh, weather and ambient accumulator.
type Scene struct {
	Mesh    *dome.Mesh
	Sky     *sky.Sky
	Weather *sky.Weather
	Ambient *lighting.AmbientState
	Clock   *Clock

	// Eye is the viewer position suns are occluded from.
	Eye       math.Vec3
	Obstacles []picking.AABB

	start time.Time
	now   time.Time
	frame *sky.Frame
	log   *zap.Logger
}

// New builds a scene from cfg. seed drives the cloud jitter.
func New(cfg *config.Config, seed int64) (*Scene, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}

	mesh := dome.NewMesh(cfg.Dome.Planes)
	amb := lighting.NewAmbientState(math.ColorWhite)
	s := sky.New(sky.Options{
		Normals: mesh.Normals,
		Config:  cfg.Sky.Atmosphere(),
		Radius:  cfg.Dome.Radius,
		Ambient: amb,
	})
	s.SetSkySolidColor(cfg.Sky.SolidColor.Color())

	eye := math.Vec3{Y: cfg.Terrain.EyeHeight}
	var occ sky.Occluder
	var boxes []picking.AABB
	if len(cfg.Terrain.Obstacles) > 0 {
		boxes = make([]picking.AABB, len(cfg.Terrain.Obstacles))
		for i, b := range cfg.Terrain.Obstacles {
			boxes[i] = picking.NewAABB(
				math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
				math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
			)
		}
		occ = &picking.Occluder{Eye: eye, Boxes: boxes}
	}

	site := cfg.Site.Site()
	for _, b := range cfg.Suns {
		obs := ephemeris.NewObserver(ephemeris.KindSun, start, b.Offsets())
		obs.SetSite(site)
		s.AddSun(obs, b.Size, occ)
	}
	for _, b := range cfg.Moons {
		obs := ephemeris.NewObserver(ephemeris.KindMoon, start, b.Offsets())
		obs.SetSite(site)
		s.AddMoon(obs, b.Size)
	}

	w := sky.NewWeather(s, len(mesh.Normals), seed)
	w.SetWind(math.Vec3{X: cfg.Wind.Vector[0], Y: cfg.Wind.Vector[1], Z: cfg.Wind.Vector[2]}, cfg.Wind.Speed)
	w.SetCloudiness(cfg.Wind.Cloudiness)

	sc := &Scene{
		Mesh:      mesh,
		Sky:       s,
		Weather:   w,
		Ambient:   amb,
		Clock:     NewClock(cfg.Clock.TimeScale),
		Eye:       eye,
		Obstacles: boxes,
		start:     start,
		now:       start,
		log:       logger.Named("scene"),
	}
	sc.frame = s.Update(0, 0, 0, 0)
	w.Update(0, 0, 0, 0)

	sc.log.Info("scene ready",
		zap.Time("start", start),
		zap.Int("suns", len(cfg.Suns)),
		zap.Int("moons", len(cfg.Moons)),
		zap.Int("obstacles", len(cfg.Terrain.Obstacles)),
		zap.Int("samples", len(mesh.Normals)),
	)
	return sc, nil
}

// Start launches the wind task.
func (sc *Scene) Start(ctx context.Context) { sc.Weather.Start(ctx) }

// Close stops the wind task.
func (sc *Scene) Close() error {
	if err := sc.Weather.Close(); err != nil {
		return fmt.Errorf("stopping weather: %w", err)
	}
	return nil
}

// Tick advances the sky by real elapsed time dt scaled by the clock.
func (sc *Scene) Tick(dt time.Duration) *sky.Frame {
	hh, mm, ss := sc.Clock.Advance(dt)
	return sc.Step(float32(dt.Seconds()), hh, mm, ss)
}

// Step advances the sky by an explicit simulated delta.
func (sc *Scene) Step(tpf float32, hh, mm, ss int) *sky.Frame {
	sc.now = sc.now.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute + time.Duration(ss)*time.Second)
	sc.frame = sc.Sky.Update(tpf, hh, mm, ss)
	sc.Weather.Update(tpf, hh, mm, ss)
	return sc.frame
}

// Frame returns the result of the last update.
func (sc *Scene) Frame() *sky.Frame { return sc.frame }

// Now returns the simulated time.
func (sc *Scene) Now() time.Time { return sc.now }

// Elapsed returns the simulated time since the start.
func (sc *Scene) Elapsed() time.Duration { return sc.now.Sub(sc.start) }

// CloudAlpha returns the mean cloud alpha for shading the cloud layer.
func (sc *Scene) CloudAlpha() float32 {
	alphas := sc.Weather.CloudAlpha()
	if len(alphas) == 0 {
		return 0
	}
	var sum float32
	for _, a := range alphas {
		sum += a
	}
	return sum / float32(len(alphas))
}

// SunDegrees returns the latitude of sun i in degrees, for display.
func (sc *Scene) SunDegrees(i int) float64 {
	return sc.Sky.Sun(i).Latitude() * 180 / gomath.Pi
}
