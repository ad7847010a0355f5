// Package sky ties the ephemeris, the sky color model and the lighting
// rules together. A Sky owns its suns and moons and, once per frame,
// advances them and produces the dome colors and light states for the
// renderer.
package sky

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky/atmosphere"
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
	"github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// DefaultRadius is the dome radius in scene units.
const DefaultRadius = 400000

// noSunLatitude stands in for the mean sun latitude when no sun is
// registered: deep night, so stars and moons show.
const noSunLatitude = -gomath.Pi / 2

// Star texture drift per elapsed hour.
var starDrift = math.Vec3{X: 0.02, Y: 0.02, Z: 0.01}

// Options configures a new Sky.
type Options struct {
	// Normals are the dome sample directions, unit length. The slice is
	// retained, not copied.
	Normals []math.Vec3

	// Config defaults to atmosphere.DefaultConfig().
	Config *atmosphere.Config

	// SceneOffset is added to body positions to place them in the world.
	SceneOffset math.Vec3

	// Radius defaults to DefaultRadius.
	Radius float32

	// Ambient receives sun lights by day. Optional.
	Ambient lighting.Ambient
}

// BodyState is the per-body part of a Frame.
type BodyState struct {
	Kind         ephemeris.Kind
	Index        int
	Latitude     float64
	Longitude    float64
	Diffuse      math.Color
	ShadowCaster bool
	// Flare is the sun flare intensity or the moon flare scale.
	Flare      float32
	FlareAlpha float32
	Transition lighting.Transition
}

// Frame is the output of one Update. The sky reuses it, so it is only valid
// until the next call.
type Frame struct {
	// Elapsed is the tpf passed to Update.
	Elapsed         float32
	Colors          []math.Color
	Haze            math.Color
	StarAlpha       float32
	StarOffset      math.Vec3
	MeanSunLatitude float64
	ShadowTint      math.Color
	AmbientScale    float32
	Bodies          []BodyState
}

// Sky is the orchestrator for one scene. It is driven from a single
// goroutine; only the texture offsets may be touched from elsewhere.
type Sky struct {
	cfg     *atmosphere.Config
	normals []math.Vec3
	colors  []math.Color
	radius  float32

	suns  []*Body
	moons []*Body

	sceneOffset math.Vec3
	domeOffset  math.Vec3
	solid       math.Color
	haze        math.Color
	ambient     lighting.Ambient
	stars       TextureOffset

	frame Frame
	log   *zap.Logger
}

// New creates a sky with no bodies.
func New(opts Options) *Sky {
	cfg := opts.Config
	if cfg == nil {
		cfg = atmosphere.DefaultConfig()
	}
	radius := opts.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Sky{
		cfg:         cfg,
		normals:     opts.Normals,
		colors:      make([]math.Color, len(opts.Normals)),
		radius:      radius,
		sceneOffset: opts.SceneOffset,
		solid:       math.ColorBlack,
		haze:        math.ColorBlack,
		ambient:     opts.Ambient,
		log:         logger.Named("sky"),
	}
}

// Config returns the sky model parameters. Changes apply on the next Update.
func (s *Sky) Config() *atmosphere.Config { return s.cfg }

// AddSun registers a sun. Its day/night phase starts from the observer's
// current latitude, and by day its light joins the ambient accumulator.
// occluder may be nil.
func (s *Sky) AddSun(obs *ephemeris.Observer, sizeMult float64, occluder Occluder) *Body {
	b := &Body{
		Kind:           ephemeris.KindSun,
		Observer:       obs,
		Light:          lighting.NewSunLight(),
		SizeMultiplier: sizeMult,
		Occluder:       occluder,
		dayNight:       lighting.NewDayNight(obs.Latitude()),
	}
	if b.Phase() == lighting.Night {
		b.Light.ShadowCaster = false
	} else if s.ambient != nil {
		s.ambient.Attach(b.Light)
	}
	s.place(b)
	b.updateSunFlare()
	s.suns = append(s.suns, b)

	s.log.Info("sun added",
		zap.Int("index", len(s.suns)-1),
		zap.Float64("size", sizeMult),
		zap.Stringer("phase", b.Phase()),
	)
	return b
}

// AddMoon registers a moon.
func (s *Sky) AddMoon(obs *ephemeris.Observer, sizeMult float64) *Body {
	b := &Body{
		Kind:           ephemeris.KindMoon,
		Observer:       obs,
		Light:          lighting.NewMoonLight(),
		SizeMultiplier: sizeMult,
	}
	s.place(b)
	b.MoonFlare = lighting.MoonFlare(obs.Latitude(), 0)
	s.moons = append(s.moons, b)

	s.log.Info("moon added", zap.Int("index", len(s.moons)-1), zap.Float64("size", sizeMult))
	return b
}

// Remove unregisters b and detaches its light. It reports whether b was
// registered.
func (s *Sky) Remove(b *Body) bool {
	list := &s.suns
	if b.Kind == ephemeris.KindMoon {
		list = &s.moons
	}
	for i, x := range *list {
		if x == b {
			*list = append((*list)[:i], (*list)[i+1:]...)
			if s.ambient != nil {
				s.ambient.Detach(b.Light)
			}
			return true
		}
	}
	return false
}

// Sun returns the sun registered at index i.
func (s *Sky) Sun(i int) *Body { return s.suns[i] }

// Moon returns the moon registered at index i.
func (s *Sky) Moon(i int) *Body { return s.moons[i] }

// Suns returns the registered suns in insertion order.
func (s *Sky) Suns() []*Body { return s.suns }

// Moons returns the registered moons in insertion order.
func (s *Sky) Moons() []*Body { return s.moons }

// SetAmbient replaces the ambient accumulator. Suns currently in daylight
// are attached to it.
func (s *Sky) SetAmbient(a lighting.Ambient) {
	s.ambient = a
	if a == nil {
		return
	}
	for _, b := range s.suns {
		if b.Phase() == lighting.Day {
			a.Attach(b.Light)
		}
	}
}

// HazeColor returns the haze computed by the last Update.
func (s *Sky) HazeColor() math.Color { return s.haze }

// SkySolidColor returns the base dome color that suns add onto.
func (s *Sky) SkySolidColor() math.Color { return s.solid }

// SetSkySolidColor sets the base dome color. Black by default.
func (s *Sky) SetSkySolidColor(c math.Color) { s.solid = c }

// Colors returns the dome colors computed by the last Update.
func (s *Sky) Colors() []math.Color { return s.colors }

// Normals returns the dome sample directions.
func (s *Sky) Normals() []math.Vec3 { return s.normals }

// Radius returns the dome radius.
func (s *Sky) Radius() float32 { return s.radius }

// Stars returns the star layer texture offset.
func (s *Sky) Stars() *TextureOffset { return &s.stars }

// FollowViewer centres the dome on the viewer, sunk by half its radius.
func (s *Sky) FollowViewer(viewer math.Vec3) {
	s.domeOffset = math.Vec3{X: viewer.X, Y: viewer.Y - s.radius/2, Z: viewer.Z}
}

// DomeOffset returns the dome translation set by FollowViewer.
func (s *Sky) DomeOffset() math.Vec3 { return s.domeOffset }

// Update advances every body by the elapsed hours, minutes and seconds and
// recomputes the dome and lights. tpf is the frame time in seconds.
func (s *Sky) Update(tpf float32, hh, mm, ss int) *Frame {
	for i := range s.colors {
		s.colors[i] = s.solid
	}

	f := &s.frame
	f.Bodies = f.Bodies[:0]

	var sumLat, sumFlare float64
	haze := math.ColorBlack
	for i, b := range s.suns {
		b.Observer.Advance(hh, mm, ss)
		lat, lon := b.Latitude(), b.Longitude()

		tr := b.dayNight.Update(lat, b.Light, s.ambient)
		if tr != lighting.NoTransition {
			s.log.Debug("sun phase changed",
				zap.Int("index", i),
				zap.Stringer("transition", tr),
				zap.Float64("latitude", lat),
				zap.Time("time", b.Observer.CurrentTime()),
			)
		}

		s.place(b)
		b.Light.Diffuse = lighting.SunColor(lat, s.cfg.DawnColor, s.cfg.DuskColor)
		b.updateSunFlare()

		sumLat += lat
		sumFlare += float64(b.FlareIntensity)

		haze = atmosphere.UpdateDomeColors(s.normals, s.colors, lat, lon, s.cfg)

		f.Bodies = append(f.Bodies, BodyState{
			Kind:         ephemeris.KindSun,
			Index:        i,
			Latitude:     lat,
			Longitude:    lon,
			Diffuse:      b.Light.Diffuse,
			ShadowCaster: b.Light.ShadowCaster,
			Flare:        b.FlareIntensity,
			FlareAlpha:   1,
			Transition:   tr,
		})
	}
	if haze.HasNaN() {
		s.log.Warn("haze color is not a number, using black")
		haze = math.ColorBlack
	}
	s.haze = haze

	meanLat := noSunLatitude
	ambientScale := float32(0)
	if n := len(s.suns); n > 0 {
		meanLat = sumLat / float64(n)
		ambientScale = float32(sumFlare / float64(n))
	}
	if s.ambient != nil {
		s.ambient.SetGlobalScale(ambientScale)
	}

	f.StarOffset = s.stars.Advance(starDrift.Scale(elapsedHours(hh, mm, 0.166)), 1)

	for i, b := range s.moons {
		b.Observer.Advance(hh, mm, ss)
		lat := b.Latitude()

		s.place(b)
		b.Light.Diffuse = lighting.MoonColor(lat, meanLat, s.cfg.MoonColor)
		b.MoonFlare = lighting.MoonFlare(lat, meanLat)

		f.Bodies = append(f.Bodies, BodyState{
			Kind:       ephemeris.KindMoon,
			Index:      i,
			Latitude:   lat,
			Longitude:  b.Longitude(),
			Diffuse:    b.Light.Diffuse,
			Flare:      b.MoonFlare.Scale,
			FlareAlpha: b.MoonFlare.Alpha,
		})
	}

	f.Elapsed = tpf
	f.Colors = s.colors
	f.Haze = s.haze
	f.MeanSunLatitude = meanLat
	f.StarAlpha = lighting.StarAlpha(meanLat)
	f.ShadowTint = lighting.ShadowTint(meanLat)
	f.AmbientScale = ambientScale
	return f
}

// place sets the world position and the light location of b.
func (s *Sky) place(b *Body) {
	pos := b.Observer.Position()
	b.WorldPosition = s.sceneOffset.Add(pos)
	if b.Kind == ephemeris.KindMoon {
		b.Light.Location = pos.Sub(s.sceneOffset)
	} else {
		b.Light.Location = b.WorldPosition
	}
}

// elapsedHours folds an elapsed clock delta into a scalar drift factor:
// hours plus minutes weighted by perMinute.
func elapsedHours(hh, mm int, perMinute float32) float32 {
	return float32(hh) + perMinute*float32(mm)
}
