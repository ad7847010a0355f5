package atmosphere

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// HazeSampleIndex is the dome sample averaged with sample 0 to produce the
// haze color. Dome meshes place it on the horizon opposite sample 0.
const HazeSampleIndex = 12

// IsNightTime reports whether a sun at latitude lat has set, i.e. lat lies in
// the open interval (-0.9π, -0.1π).
func IsNightTime(lat float64) bool {
	return lat > -0.9*gomath.Pi && lat < -0.1*gomath.Pi
}

// SolarAngles converts an apparent latitude/longitude (east = 0) into the
// zenith angle theta and the azimuth phi measured from west.
func SolarAngles(lat, lon float64) (theta, phi float64) {
	if lat >= 0 {
		theta = gomath.Abs(gomath.Abs(lat) - gomath.Pi/2)
	} else {
		theta = gomath.Pi - gomath.Abs(gomath.Abs(lat)-gomath.Pi/2)
	}
	phi = -gomath.Abs(lon + gomath.Pi)
	return theta, phi
}

// Model is the Perez sky distribution for one sun position. It is a value
// type computed once per sun per tick and safe to share read-only.
type Model struct {
	theta    float64
	dir      [3]float64
	night    bool
	overcast float64

	coefY, coefX, coefYc [5]float64
	zenY, zenX, zenYc    float64
}

// NewModel precomputes the zenith values and Perez coefficients for a sun
// at the given apparent latitude/longitude.
func NewModel(lat, lon, turbidity, overcast float64) Model {
	theta, phi := SolarAngles(lat, lon)
	m := Model{
		theta:    theta,
		night:    IsNightTime(lat),
		overcast: overcast,
		coefY:    perezLuminance.coefficients(turbidity),
		coefX:    perezX.coefficients(turbidity),
		coefYc:   perezY.coefficients(turbidity),
	}

	el := gomath.Pi/2 - theta
	d := [3]float64{
		gomath.Cos(el) * gomath.Cos(phi),
		gomath.Sin(el),
		gomath.Cos(el) * gomath.Sin(phi),
	}
	l := gomath.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	m.dir = [3]float64{d[0] / l, d[1] / l, d[2] / l}

	m.zenY = perezFirstOrder(m.coefY, theta, zenithLuminance(theta, turbidity))
	m.zenX = perezFirstOrder(m.coefX, theta, zenithX.eval(theta, turbidity))
	m.zenYc = perezFirstOrder(m.coefYc, theta, zenithY.eval(theta, turbidity))
	return m
}

// Theta returns the solar zenith angle in radians, [0, π].
func (m Model) Theta() float64 { return m.theta }

// Night reports whether the night override applies.
func (m Model) Night() bool { return m.night }

// SunDirection returns the unit vector towards the sun in dome space.
func (m Model) SunDirection() math.Vec3 {
	return math.Vec3{X: float32(m.dir[0]), Y: float32(m.dir[1]), Z: float32(m.dir[2])}
}

// Radiance returns the sky tristimulus value along unit direction n.
// Directions on the horizon (n.Y == 0) produce non-finite values that tone
// mapping later clamps away.
func (m Model) Radiance(n math.Vec3) XYZ {
	nx, ny, nz := float64(n.X), float64(n.Y), float64(n.Z)

	cosGamma := Clamp(nx*m.dir[0]+ny*m.dir[1]+nz*m.dir[2], -1, 1)
	gamma := gomath.Acos(cosGamma)
	cosTheta := 1 / ny
	cosGamma2 := cosGamma * cosGamma

	x := perezSecondOrder(m.coefX, cosTheta, gamma, cosGamma2, m.zenX)
	y := perezSecondOrder(m.coefYc, cosTheta, gamma, cosGamma2, m.zenYc)

	clearSky := perezSecondOrder(m.coefY, cosTheta, gamma, cosGamma2, m.zenY)
	overcastSky := (1 + 2*ny) / 3
	lum := lerp(m.overcast, clearSky, overcastSky)

	c := FromxyY(x, y, lum)
	if m.night {
		c = XYZ{X: c.X * 0.01, Y: c.Y * 0.01, Z: -c.Z * 0.045}
	}
	return c
}

// ToneMap applies exposure in HSV space, then gamma, and clamps to [0, 1].
func ToneMap(c XYZ, cfg *Config) math.Color {
	hsv := c.RGB().HSV()
	if cfg.mode == ExposureLinear {
		hsv.V *= cfg.exposure
	} else {
		hsv.V = 1 - gomath.Exp(-cfg.exposure*hsv.V)
	}
	return hsv.RGB().Gamma(cfg.gamma).Color()
}

// UpdateDomeColors adds the contribution of one sun to every dome sample and
// returns the resulting haze color. colors must be at least as long as
// normals; existing colors are kept and the new radiance is added onto them
// so several suns accumulate.
//
// The haze is the midpoint of samples 0 and HazeSampleIndex after blending,
// opaque black at night or whenever the result is not a number.
func UpdateDomeColors(normals []math.Vec3, colors []math.Color, lat, lon float64, cfg *Config) math.Color {
	m := NewModel(lat, lon, cfg.turbidity, cfg.overcast)
	for i, n := range normals {
		colors[i] = blend(colors[i], ToneMap(m.Radiance(n), cfg))
	}

	if m.night || len(normals) == 0 {
		return math.ColorBlack
	}
	haze := colors[0]
	if len(normals) > HazeSampleIndex {
		haze = haze.Lerp(colors[HazeSampleIndex], 0.5)
	}
	if haze.HasNaN() {
		return math.ColorBlack
	}
	return haze
}

// blend adds src onto dst. Alpha stays opaque once any layer is opaque.
func blend(dst, src math.Color) math.Color {
	return math.Color{
		R: dst.R + src.R,
		G: dst.G + src.G,
		B: dst.B + src.B,
		A: float32(gomath.Max(float64(dst.A), float64(src.A))),
	}
}

// zenithLuminance is the Preetham zenith luminance polynomial, made
// non-negative.
func zenithLuminance(theta, t float64) float64 {
	chi := (4.0/9.0 - t/120.0) * (gomath.Pi - 2*theta)
	l := (4.0453*t-4.9710)*gomath.Tan(chi) - 0.2155*t + 2.4192
	return gomath.Abs(l)
}

// perezFirstOrder divides a zenith value by the distribution evaluated at
// the sun itself so that the zenith sample reproduces it.
func perezFirstOrder(c [5]float64, theta, zenith float64) float64 {
	cos := gomath.Cos(theta)
	den := (1 + c[0]*gomath.Exp(c[1])) *
		(1 + c[2]*gomath.Exp(c[3]*theta) + c[4]*cos*cos)
	return zenith / den
}

func perezSecondOrder(c [5]float64, cosTheta, gamma, cosGamma2, zenith float64) float64 {
	return zenith *
		(1 + c[0]*gomath.Exp(c[1]*cosTheta)) *
		(1 + c[2]*gomath.Exp(c[3]*gamma) + c[4]*cosGamma2)
}

// lerp returns a at t <= 0 and b at t >= 1 exactly, so a non-finite endpoint
// with zero weight does not leak through.
func lerp(t, a, b float64) float64 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return (1-t)*a + t*b
}
