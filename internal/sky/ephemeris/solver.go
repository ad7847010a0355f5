package ephemeris

import (
	gomath "math"
	"time"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// EarthRadiusKm scales Earth-radius distances into scene units (km).
const EarthRadiusKm = 6378.137

// Site is an observing location on Earth, radians in (-π, π].
//
// A latitude of exactly ±π/2 is not guarded; the horizon transform
// degenerates there.
type Site struct {
	Latitude  float64
	Longitude float64
}

// Offsets shift the raw series result before the horizon transform.
// Lambda and Beta are radians, R is in Earth radii.
type Offsets struct {
	Lambda float64
	Beta   float64
	R      float64
}

// Position is the solver output for one instant.
type Position struct {
	// Longitude and Latitude are the apparent angles in the local horizon
	// frame, radians in (-π, π]. Latitude sweeps the full circle once per
	// day: 0 at rising, π/2 at culmination, ±π at setting.
	Longitude float64
	Latitude  float64

	// Distance is the geocentric distance in Earth radii, offsets applied.
	Distance float64

	// Vector is the observer-centred position in scene units (km).
	Vector math.Vec3
}

// Direction returns the unit vector from the observer towards the body.
func (p Position) Direction() math.Vec3 {
	return p.Vector.Normalize()
}

// ComputePosition evaluates series at t and transforms the result into the
// horizon frame of site.
func ComputePosition(series Series, t time.Time, site Site, off Offsets) Position {
	T := Centuries(JulianDate(t))
	ecl := series.Ecliptic(T)

	lambda := ecl.Lambda + off.Lambda
	beta := ecl.Beta + off.Beta
	r := 1/ecl.Parallax + off.R

	v := math.Vec3{
		X: float32(r * gomath.Sin(beta)),
		Y: float32(r * gomath.Sin(lambda) * gomath.Cos(beta)),
		Z: float32(r * gomath.Cos(lambda) * gomath.Cos(beta)),
	}

	v = horizonTransform(T, site).TransformVec3(v)
	v = v.Sub(math.Vec3{Z: 1})

	return Position{
		Longitude: gomath.Atan2(float64(v.Z), float64(-v.X)),
		Latitude:  gomath.Atan2(float64(v.Y), float64(-v.X)),
		Distance:  r,
		Vector:    v.Scale(EarthRadiusKm),
	}
}

// horizonTransform builds Rz(-LMST) * Rx(-ε) * Ry(-(lat - π/2)); the site
// rotation is applied first.
func horizonTransform(T float64, site Site) math.Mat4 {
	lon := site.Longitude + gomath.Pi*3/2
	obliquity := 0.409093 - 0.000227*T
	lmst := gomath.Mod(4.894961+230121.675315*T+lon, 2*gomath.Pi)

	ry := math.RotateY(-(site.Latitude - gomath.Pi/2))
	rx := math.RotateX(-obliquity)
	rz := math.RotateZ(-lmst)
	return rz.Mul(rx).Mul(ry)
}
