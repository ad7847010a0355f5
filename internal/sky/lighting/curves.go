package lighting

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

const sixth = gomath.Pi / 6

// SunColor maps a sun's latitude to its light tint. The latitude is folded
// into [0, 2π) and split into six spans: rising from dawn towards white,
// a white plateau, fading to dusk, recovering from dusk, and drifting back
// towards the dawn color. The fade reaches dusk at π and keeps going until
// 7π/6, so the result is clamped to [0, 1].
func SunColor(lat float64, dawn, dusk math.Color) math.Color {
	if lat < 0 {
		lat += 2 * gomath.Pi
	}

	var ch func(dw, du float64) float64
	switch {
	case lat >= 11*sixth:
		ch = func(dw, _ float64) float64 { return dw + (1-dw)/(3*sixth)*(lat-11*sixth) }
	case lat < 2*sixth:
		ch = func(dw, _ float64) float64 { return dw + (1-dw)/(3*sixth)*lat }
	case lat < 4*sixth:
		return math.ColorWhite
	case lat < 7*sixth:
		ch = func(_, du float64) float64 { return 1 - (1-du)/(2*sixth)*(lat-4*sixth) }
	case lat < 9*sixth:
		ch = func(_, du float64) float64 { return du + (1-du)/(2*sixth)*(lat-7*sixth) }
	default:
		ch = func(dw, _ float64) float64 { return 1 - (1-dw)/(4*sixth)*(lat-9*sixth) }
	}

	return math.Color{
		R: float32(ch(float64(dawn.R), float64(dusk.R))),
		G: float32(ch(float64(dawn.G), float64(dusk.G))),
		B: float32(ch(float64(dawn.B), float64(dusk.B))),
		A: float32(ch(float64(dawn.A), float64(dusk.A))),
	}.Clamped()
}

// MoonWeight is the moon's latitude weighted by how far the mean sun has
// sunk: positive while the moon should shine.
func MoonWeight(moonLat, meanSunLat float64) float64 {
	return moonLat * gomath.Sin(-meanSunLat)
}

// MoonColor returns the moon light diffuse. It is black while MoonWeight is
// negative, otherwise the moon color scaled by sin(-meanSunLat); either way
// the result is then attenuated by |sin(moonLat)| on every channel.
func MoonColor(moonLat, meanSunLat float64, moon math.Color) math.Color {
	c := math.ColorBlack
	if MoonWeight(moonLat, meanSunLat) >= 0 {
		c = moon.Mul(float32(gomath.Sin(-meanSunLat)))
	}
	return c.Mul(float32(gomath.Abs(gomath.Sin(moonLat))))
}

// Flare describes a billboard flare: Scale of the quad and Alpha of its
// tint.
type Flare struct {
	Scale float32
	Alpha float32
}

// MoonFlare returns the moon halo; hidden while MoonWeight is negative.
func MoonFlare(moonLat, meanSunLat float64) Flare {
	w := MoonWeight(moonLat, meanSunLat)
	if w < 0 {
		return Flare{}
	}
	s := gomath.Abs(gomath.Sin(w))
	return Flare{Scale: float32(0.9 * s), Alpha: float32(0.3 * s)}
}

// SunFlare returns the lens flare intensity for a sun and whether the flare
// should test geometry occlusion. Below the horizon the flare is off.
func SunFlare(lat, sizeMult float64) (intensity float32, occlusion bool) {
	if lat < 0 {
		return 0, false
	}
	return float32(gomath.Max(gomath.Abs(gomath.Sin(lat))*0.4*sizeMult, 0.25)), true
}

// StarAlpha is the star layer opacity for the mean sun latitude. It goes
// negative in daylight; presentation clamps it.
func StarAlpha(meanSunLat float64) float32 {
	return float32(0.4 - gomath.Sin(meanSunLat))
}

// ShadowTint is the shadow color for the mean sun latitude.
func ShadowTint(meanSunLat float64) math.Color {
	return math.Color{R: 0.75, G: 0.75, B: 0.75, A: 0.75}.Mul(float32(1.2 - gomath.Sin(meanSunLat)))
}

// Direction converts an apparent longitude/latitude in radians into a unit
// vector pointing at the body: longitude turns about Y, latitude lifts
// towards +Y.
func Direction(longitude, latitude float64) math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Cos(latitude) * gomath.Sin(longitude)),
		Y: float32(gomath.Sin(latitude)),
		Z: float32(gomath.Cos(latitude) * gomath.Cos(longitude)),
	}
}
