package ephemeris

import "math"

// Ecliptic is a geocentric ecliptic position: longitude and latitude in
// radians, horizontal parallax in radians (distance = 1/Parallax Earth radii).
type Ecliptic struct {
	Lambda   float64
	Beta     float64
	Parallax float64
}

// Series evaluates a body's ecliptic position at T Julian centuries from J2000.
type Series interface {
	Ecliptic(T float64) Ecliptic
}

// Kind tags which periodic series an observer follows.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// SeriesFor returns the series for a body kind.
func SeriesFor(k Kind) Series {
	if k == KindMoon {
		return MoonSeries{}
	}
	return SunSeries{}
}

// EarthRadiiPerAU converts astronomical units to Earth equatorial radii.
const EarthRadiiPerAU = 149597870.7 / EarthRadiusKm

// SunSeries is the low-order solar theory: mean anomaly, equation of centre
// and radius vector. The Sun stays on the ecliptic, so Beta is always zero.
type SunSeries struct{}

// Ecliptic implements Series.
func (SunSeries) Ecliptic(T float64) Ecliptic {
	m := 6.24 + 628.302*T
	lambda := 4.895048 + 628.331951*T +
		(0.033417-0.000084*T)*math.Sin(m) +
		0.000349*math.Sin(2*m)
	rAU := 1.000140 - (0.016708-0.000042*T)*math.Cos(m) - 0.000141*math.Cos(2*m)

	return Ecliptic{
		Lambda:   lambda,
		Beta:     0,
		Parallax: 1 / (rAU * EarthRadiiPerAU),
	}
}

// MoonSeries is the truncated lunar theory driven by the Moon's mean
// longitude, mean anomaly, the Sun's mean anomaly, mean elongation and
// argument of latitude.
type MoonSeries struct{}

// Ecliptic implements Series.
func (MoonSeries) Ecliptic(T float64) Ecliptic {
	lp := 3.8104 + 8399.7091*T
	mp := 2.3554 + 8328.6911*T
	m := 6.2300 + 628.3019*T
	d := 5.1985 + 7771.3772*T
	f := 1.6280 + 8433.4663*T

	lambda := lp +
		0.1098*math.Sin(mp) +
		0.0222*math.Sin(2*d-mp) +
		0.0115*math.Sin(2*d) +
		0.0037*math.Sin(2*mp) -
		0.0032*math.Sin(m) -
		0.0020*math.Sin(2*f) +
		0.0010*math.Sin(2*d-2*mp) +
		0.0010*math.Sin(2*d-m*mp) + // product, as fitted
		0.0009*math.Sin(2*d+mp) +
		0.0008*math.Sin(2*d-m) +
		0.0007*math.Sin(mp-m) -
		0.0006*math.Sin(d) -
		0.0005*math.Sin(m+mp)

	beta := 0.0895*math.Sin(f) +
		0.0049*math.Sin(mp+f) +
		0.0048*math.Sin(mp-f) +
		0.0030*math.Sin(2*d-f) +
		0.0010*math.Sin(2*d+f-mp) +
		0.0008*math.Sin(2*d-f-mp) +
		0.0006*math.Sin(2*d+f)

	parallax := 0.016593 +
		0.000904*math.Cos(mp) +
		0.000166*math.Cos(2*d-mp) +
		0.000137*math.Cos(2*d) +
		0.000049*math.Cos(2*mp) +
		0.000015*math.Cos(2*d+mp) +
		0.000009*math.Cos(2*d-m)

	return Ecliptic{Lambda: lambda, Beta: beta, Parallax: parallax}
}
