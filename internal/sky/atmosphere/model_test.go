package atmosphere

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// hemisphere builds planes rings of radial unit normals from the horizon
// upwards plus the apex. With radial = 24, sample 12 faces sample 0.
func hemisphere(planes, radial int) []math.Vec3 {
	var out []math.Vec3
	for p := 0; p < planes; p++ {
		el := float64(p) / float64(planes) * gomath.Pi / 2
		for r := 0; r < radial; r++ {
			az := 2 * gomath.Pi * float64(r) / float64(radial)
			out = append(out, math.Vec3{
				X: float32(gomath.Cos(el) * gomath.Cos(az)),
				Y: float32(gomath.Sin(el)),
				Z: float32(gomath.Cos(el) * gomath.Sin(az)),
			})
		}
	}
	return append(out, math.Vec3{Y: 1})
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 0, 1, 0.5},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
		{-1e300, 1, 512, 1},
		{gomath.Inf(1), 1, 512, 512},
		{gomath.Inf(-1), 1, 512, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestIsNightTime(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		want bool
	}{
		{"deep night", -0.5 * gomath.Pi, true},
		{"just after sunset", -0.1*gomath.Pi - 1e-9, true},
		{"just before sunrise", -0.9*gomath.Pi + 1e-9, true},
		{"upper boundary", -0.1 * gomath.Pi, false},
		{"lower boundary", -0.9 * gomath.Pi, false},
		{"horizon", 0, false},
		{"noon", gomath.Pi / 2, false},
		{"opposite horizon", -gomath.Pi, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNightTime(tt.lat); got != tt.want {
				t.Errorf("IsNightTime(%v) = %v, want %v", tt.lat, got, tt.want)
			}
		})
	}
}

func TestSolarAngles(t *testing.T) {
	tests := []struct {
		lat, lon   float64
		theta, phi float64
	}{
		{gomath.Pi / 2, 0, 0, -gomath.Pi},
		{0, 0, gomath.Pi / 2, -gomath.Pi},
		{-gomath.Pi / 2, -gomath.Pi, gomath.Pi, 0},
		{gomath.Pi / 4, -gomath.Pi / 2, gomath.Pi / 4, -gomath.Pi / 2},
		{-gomath.Pi / 4, 1, 3 * gomath.Pi / 4, -(1 + gomath.Pi)},
	}
	for _, tt := range tests {
		theta, phi := SolarAngles(tt.lat, tt.lon)
		if gomath.Abs(theta-tt.theta) > 1e-12 || gomath.Abs(phi-tt.phi) > 1e-12 {
			t.Errorf("SolarAngles(%v, %v) = (%v, %v), want (%v, %v)", tt.lat, tt.lon, theta, phi, tt.theta, tt.phi)
		}
	}
}

func TestSunDirectionAtZenith(t *testing.T) {
	d := NewModel(gomath.Pi/2, 0.3, DefaultTurbidity, 0).SunDirection()
	if gomath.Abs(float64(d.Y)-1) > 1e-6 || gomath.Abs(float64(d.X)) > 1e-6 || gomath.Abs(float64(d.Z)) > 1e-6 {
		t.Errorf("SunDirection() = %+v, want +Y", d)
	}
}

func TestZenithAndFirstOrderFinite(t *testing.T) {
	for ti := 0; ti <= 73; ti++ {
		turb := MinTurbidity + float64(ti)*(MaxTurbidity-MinTurbidity)/73
		for k := 0; k <= 64; k++ {
			theta := float64(k) * gomath.Pi / 64

			lum := zenithLuminance(theta, turb)
			if lum < 0 || gomath.IsNaN(lum) || gomath.IsInf(lum, 0) {
				t.Fatalf("zenithLuminance(%v, %v) = %v", theta, turb, lum)
			}

			values := []float64{
				perezFirstOrder(perezLuminance.coefficients(turb), theta, lum),
				perezFirstOrder(perezX.coefficients(turb), theta, zenithX.eval(theta, turb)),
				perezFirstOrder(perezY.coefficients(turb), theta, zenithY.eval(theta, turb)),
			}
			for i, v := range values {
				if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
					t.Fatalf("first-order channel %d at T=%v theta=%v is %v", i, turb, theta, v)
				}
			}
		}
	}
}

func TestUpdateDomeColorsBounded(t *testing.T) {
	normals := hemisphere(8, 24)
	lats := []float64{-3.0, -gomath.Pi / 2, -0.2, 0, 0.05, 0.7, gomath.Pi / 2, 2.5, gomath.Pi}
	turbs := []float64{1, DefaultTurbidity, 10, 100, 512}

	for _, turb := range turbs {
		for _, mode := range []ExposureMode{ExposureExponential, ExposureLinear} {
			cfg := DefaultConfig()
			cfg.SetTurbidity(turb)
			cfg.SetExposure(mode, DefaultExposure)

			for _, lat := range lats {
				colors := make([]math.Color, len(normals))
				haze := UpdateDomeColors(normals, colors, lat, 0.4, cfg)

				for i, c := range colors {
					if c.HasNaN() || c.Clamped() != c {
						t.Fatalf("T=%v %v lat=%v: color[%d] = %+v out of range", turb, mode, lat, i, c)
					}
					if c.A != 1 {
						t.Fatalf("color[%d].A = %v, want 1", i, c.A)
					}
				}
				if haze.HasNaN() {
					t.Fatalf("T=%v lat=%v: haze has NaN: %+v", turb, lat, haze)
				}
			}
		}
	}
}

func TestNightHazeIsBlack(t *testing.T) {
	normals := hemisphere(6, 24)
	colors := make([]math.Color, len(normals))
	haze := UpdateDomeColors(normals, colors, -0.5*gomath.Pi, 0, DefaultConfig())
	if haze != (math.Color{R: 0, G: 0, B: 0, A: 1}) {
		t.Errorf("night haze = %+v, want opaque black", haze)
	}
}

func TestDayHazeIsHorizonMidpoint(t *testing.T) {
	normals := hemisphere(6, 24)
	colors := make([]math.Color, len(normals))
	haze := UpdateDomeColors(normals, colors, 0.6, 0.2, DefaultConfig())
	want := colors[0].Lerp(colors[HazeSampleIndex], 0.5)
	if haze != want {
		t.Errorf("haze = %+v, want %+v", haze, want)
	}
}

func TestUpdateDomeColorsAccumulates(t *testing.T) {
	normals := hemisphere(6, 24)
	cfg := DefaultConfig()

	once := make([]math.Color, len(normals))
	UpdateDomeColors(normals, once, 0.9, 1.1, cfg)

	twice := make([]math.Color, len(normals))
	UpdateDomeColors(normals, twice, 0.9, 1.1, cfg)
	UpdateDomeColors(normals, twice, 0.9, 1.1, cfg)

	for i := range once {
		for ch, pair := range [][2]float32{
			{once[i].R, twice[i].R},
			{once[i].G, twice[i].G},
			{once[i].B, twice[i].B},
		} {
			if d := pair[1] - 2*pair[0]; d > 1e-5 || d < -1e-5 {
				t.Fatalf("sample %d channel %d: twice = %v, want 2 × %v", i, ch, pair[1], pair[0])
			}
		}
	}
}

func TestOvercastLuminanceIgnoresTurbidity(t *testing.T) {
	// Only luminance is overcast-blended; chromaticity still follows turbidity.
	normals := hemisphere(6, 24)[24:] // skip the horizon ring
	for _, lat := range []float64{0.3, 1.2, 2.8} {
		ref := make([]float64, len(normals))
		for ti, turb := range []float64{1.5, 2.95, 16, 300} {
			m := NewModel(lat, 0.5, turb, 1)
			for i, n := range normals {
				y := m.Radiance(n).Y
				if want := (1 + 2*float64(n.Y)) / 3; gomath.Abs(y-want) > 1e-12 {
					t.Fatalf("lat=%v T=%v sample %d: Y = %v, want %v", lat, turb, i, y, want)
				}
				if ti > 0 && y != ref[i] {
					t.Fatalf("lat=%v sample %d: Y depends on turbidity", lat, i)
				}
				ref[i] = y
			}
		}
	}
}

func TestNightOverrideDampsAndShiftsBlue(t *testing.T) {
	// Both latitudes give a zenith angle of 0.95π, one inside the night band.
	day := NewModel(1.45*gomath.Pi, 0.3, 4, 0.2)
	night := NewModel(-0.45*gomath.Pi, 0.3, 4, 0.2)
	if day.Night() || !night.Night() {
		t.Fatalf("night flags: day=%v night=%v", day.Night(), night.Night())
	}
	if gomath.Abs(day.Theta()-night.Theta()) > 1e-12 {
		t.Fatalf("theta mismatch: %v vs %v", day.Theta(), night.Theta())
	}

	for _, n := range hemisphere(4, 12)[12:] {
		d, k := day.Radiance(n), night.Radiance(n)
		checks := []struct {
			name      string
			got, want float64
		}{
			{"X", k.X, d.X * 0.01},
			{"Y", k.Y, d.Y * 0.01},
			{"Z", k.Z, -d.Z * 0.045},
		}
		for _, c := range checks {
			if gomath.Abs(c.got-c.want) > 1e-9*gomath.Max(1, gomath.Abs(c.want)) {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
	}
}

func TestToneMapDegenerateInput(t *testing.T) {
	cfg := DefaultConfig()
	nan := gomath.NaN()
	for _, in := range []XYZ{{}, {nan, nan, nan}, {gomath.Inf(1), 1, gomath.Inf(-1)}, {-5, -5, -5}} {
		c := ToneMap(in, cfg)
		if c.HasNaN() || c.Clamped() != c || c.A != 1 {
			t.Errorf("ToneMap(%+v) = %+v", in, c)
		}
	}
}

func TestToneMapExposure(t *testing.T) {
	// Grey input keeps its hue; only the value channel changes.
	grey := XYZ{X: 0.475235, Y: 0.5, Z: 0.544415} // D65 white at half luminance

	lin := DefaultConfig()
	lin.SetExposure(ExposureLinear, 2)
	lin.SetGammaCorrection(1)
	c := ToneMap(grey, lin)
	if d := gomath.Abs(float64(c.G) - 0.25); d > 1e-3 {
		t.Errorf("linear exposure G = %v, want 0.25", c.G)
	}

	exp := DefaultConfig()
	exp.SetExposure(ExposureExponential, 1)
	exp.SetGammaCorrection(1)
	c = ToneMap(grey, exp)
	if d := gomath.Abs(float64(c.G) - (1 - gomath.Exp(-0.5))); d > 1e-3 {
		t.Errorf("exponential exposure G = %v, want %v", c.G, 1-gomath.Exp(-0.5))
	}
}
