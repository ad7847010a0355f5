package sky

import (
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
	"github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Occluder answers whether scene geometry hides a sun seen along dir.
type Occluder interface {
	Occluded(dir math.Vec3) bool
}

// Body is a sun or a moon registered with a Sky. Kind selects which of the
// type-specific fields are meaningful.
type Body struct {
	Kind     ephemeris.Kind
	Observer *ephemeris.Observer
	Light    *lighting.Light

	// SizeMultiplier scales the body relative to its stock size.
	SizeMultiplier float64

	// WorldPosition is the scene offset plus the observer position.
	WorldPosition math.Vec3

	// Sun only.
	Occluder       Occluder
	FlareIntensity float32
	FlareOcclusion bool
	dayNight       lighting.DayNight

	// Moon only.
	MoonFlare lighting.Flare
}

// Phase returns the sun's day/night phase. Moons always report Day.
func (b *Body) Phase() lighting.Phase {
	return b.dayNight.Phase()
}

// Position returns the observer-centred position in scene units.
func (b *Body) Position() math.Vec3 { return b.Observer.Position() }

// Longitude returns the apparent longitude in radians.
func (b *Body) Longitude() float64 { return b.Observer.Longitude() }

// Latitude returns the apparent latitude in radians.
func (b *Body) Latitude() float64 { return b.Observer.Latitude() }

func (b *Body) updateSunFlare() {
	intensity, occlusion := lighting.SunFlare(b.Latitude(), b.SizeMultiplier)
	if occlusion && b.Occluder != nil && b.Occluder.Occluded(b.Observer.Snapshot().Direction()) {
		intensity = 0
	}
	b.FlareIntensity = intensity
	b.FlareOcclusion = occlusion
}
