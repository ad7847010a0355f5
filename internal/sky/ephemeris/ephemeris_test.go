package ephemeris

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Sputnik launch", time.Date(1957, 10, 4, 19, 26, 0, 0, time.UTC), 2436116.3097222224},
		{"1987 April", time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC), 2446896.30625},
		{"summer solstice 2008", time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC), 2454639.0},
		{"leap day", time.Date(2024, 2, 29, 6, 30, 0, 0, time.UTC), 2460369.7708333335},
		{"seconds are ignored", time.Date(1987, 4, 10, 19, 21, 59, 0, time.UTC), 2446896.30625},
		{"julian calendar 1000", time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC), 2086307.5},
		{"julian calendar 333", time.Date(333, 1, 27, 12, 0, 0, 0, time.UTC), 1842713.0},
		{"last julian year", time.Date(1585, 12, 31, 0, 0, 0, 0, time.UTC), 2300343.5},
		{"first gregorian year", time.Date(1586, 1, 1, 0, 0, 0, 0, time.UTC), 2300334.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDate(%v) = %.7f, want %.7f", tt.time, got, tt.want)
			}
		})
	}
}

func TestJulianDateCalendarSwitch(t *testing.T) {
	// Crossing from 1585 to 1586 jumps back by the ten dropped days.
	last := JulianDate(time.Date(1585, 12, 31, 0, 0, 0, 0, time.UTC))
	first := JulianDate(time.Date(1586, 1, 1, 0, 0, 0, 0, time.UTC))
	if d := first - last; d != -9 {
		t.Errorf("1586-01-01 minus 1585-12-31 = %v days, want -9", d)
	}

	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		ts := start.Add(time.Duration(i) * 1337 * time.Hour).Add(time.Duration(i*7%60) * time.Minute)
		if got, want := JulianDate(ts), julian.TimeToJD(ts.Truncate(time.Minute)); math.Abs(got-want) > 1e-6 {
			t.Fatalf("JulianDate(%v) = %.7f, TimeToJD = %.7f", ts, got, want)
		}
	}
}

func TestJulianDateConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2008, 6, 21, 14, 0, 0, 0, loc)
	utc := time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC)
	if JulianDate(local) != JulianDate(utc) {
		t.Errorf("zone offset not removed: %f vs %f", JulianDate(local), JulianDate(utc))
	}
}

func TestCenturies(t *testing.T) {
	if got := Centuries(J2000); got != 0 {
		t.Errorf("Centuries(J2000) = %v, want 0", got)
	}
	if got := Centuries(J2000 + 36525); got != 1 {
		t.Errorf("Centuries(J2000+36525) = %v, want 1", got)
	}
}

func TestComputePositionDeterministic(t *testing.T) {
	ts := time.Date(2010, 3, 14, 9, 26, 53, 0, time.UTC)
	site := Site{Latitude: 0.7, Longitude: -1.3}
	off := Offsets{Lambda: 0.1, Beta: -0.05, R: 3}

	for _, s := range []Series{SunSeries{}, MoonSeries{}} {
		a := ComputePosition(s, ts, site, off)
		b := ComputePosition(s, ts, site, off)
		if a != b {
			t.Errorf("%T: repeated call differs: %+v vs %+v", s, a, b)
		}
	}
}

func TestSunHighAtNoon(t *testing.T) {
	ts := time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC)
	pos := ComputePosition(SunSeries{}, ts, Site{Latitude: 0.7}, Offsets{})
	if pos.Latitude <= 0.5 {
		t.Errorf("noon sun latitude = %.4f, want > 0.5", pos.Latitude)
	}
}

func TestSunDiurnalCycle(t *testing.T) {
	site := Site{Latitude: 0.7}
	tests := []struct {
		hour   int
		minLat float64
		maxLat float64
	}{
		{0, -math.Pi * 0.9, -math.Pi * 0.1}, // midnight: inside the night band
		{6, -0.2, 0.2},                      // rising
		{12, 1.3, 1.8},                      // culmination
		{18, 2.8, math.Pi},                  // setting
	}
	for _, tt := range tests {
		ts := time.Date(2008, 6, 21, tt.hour, 0, 0, 0, time.UTC)
		lat := ComputePosition(SunSeries{}, ts, site, Offsets{}).Latitude
		if lat < tt.minLat || lat > tt.maxLat {
			t.Errorf("%02d:00 latitude = %.4f, want in [%.3f, %.3f]", tt.hour, lat, tt.minLat, tt.maxLat)
		}
	}
}

func TestSeriesDistances(t *testing.T) {
	ts := time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC)

	sun := ComputePosition(SunSeries{}, ts, Site{}, Offsets{})
	au := sun.Distance / EarthRadiiPerAU
	if au < 0.98 || au > 1.02 {
		t.Errorf("sun distance = %.4f AU, want ~1", au)
	}

	moon := ComputePosition(MoonSeries{}, ts, Site{}, Offsets{})
	if moon.Distance < 55 || moon.Distance > 64 {
		t.Errorf("moon distance = %.2f Earth radii, want 55..64", moon.Distance)
	}

	// The re-centred vector is within one Earth radius of the geocentric one.
	gotKm := float64(moon.Vector.Length())
	wantKm := moon.Distance * EarthRadiusKm
	if math.Abs(gotKm-wantKm) > EarthRadiusKm*1.01 {
		t.Errorf("moon vector length = %.0f km, want %.0f ± %.0f", gotKm, wantKm, EarthRadiusKm)
	}
}

func TestOffsetsApplied(t *testing.T) {
	ts := time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC)
	base := ComputePosition(MoonSeries{}, ts, Site{}, Offsets{})
	shifted := ComputePosition(MoonSeries{}, ts, Site{}, Offsets{R: 10})
	if d := shifted.Distance - base.Distance; math.Abs(d-10) > 1e-9 {
		t.Errorf("R offset changed distance by %v, want 10", d)
	}

	turned := ComputePosition(MoonSeries{}, ts, Site{}, Offsets{Lambda: 0.5})
	if turned.Longitude == base.Longitude && turned.Latitude == base.Latitude {
		t.Error("Lambda offset had no effect on apparent position")
	}
}

func TestPositionDirectionIsUnit(t *testing.T) {
	ts := time.Date(2020, 9, 1, 3, 0, 0, 0, time.UTC)
	d := ComputePosition(MoonSeries{}, ts, Site{Latitude: 0.3}, Offsets{}).Direction()
	if l := d.Length(); math.Abs(float64(l)-1) > 1e-5 {
		t.Errorf("direction length = %v, want 1", l)
	}
}

func TestObserverAdvanceMatchesFreshObserver(t *testing.T) {
	start := time.Date(2008, 6, 21, 4, 0, 0, 0, time.UTC)
	o := NewObserver(KindSun, start, Offsets{})
	o.SetSiteLatitude(0.7)

	o.Advance(1, 30, 15)
	o.Advance(0, 45, 50)

	want := start.Add(2*time.Hour + 16*time.Minute + 5*time.Second)
	if !o.CurrentTime().Equal(want) {
		t.Fatalf("CurrentTime() = %v, want %v", o.CurrentTime(), want)
	}

	fresh := NewObserver(KindSun, want, Offsets{})
	fresh.SetSiteLatitude(0.7)
	if o.Snapshot() != fresh.Snapshot() {
		t.Errorf("advanced %+v != fresh %+v", o.Snapshot(), fresh.Snapshot())
	}
}

func TestObserverGettersFollowSnapshot(t *testing.T) {
	o := NewObserver(KindMoon, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Offsets{})
	p := o.Snapshot()
	if o.Latitude() != p.Latitude || o.Longitude() != p.Longitude || o.Distance() != p.Distance || o.Position() != p.Vector {
		t.Error("getters disagree with snapshot")
	}
	if o.Kind() != KindMoon {
		t.Errorf("Kind() = %v, want moon", o.Kind())
	}
}

func TestObserverSiteSettersAreIndependent(t *testing.T) {
	o := NewObserver(KindSun, time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC), Offsets{})

	o.SetSiteLatitude(0.7)
	if o.SiteLatitude() != 0.7 {
		t.Errorf("SiteLatitude() = %v, want 0.7", o.SiteLatitude())
	}
	if o.SiteLongitude() != 0 {
		t.Errorf("SetSiteLatitude touched longitude: %v", o.SiteLongitude())
	}

	o.SetSiteLongitude(-1.2)
	if o.SiteLongitude() != -1.2 {
		t.Errorf("SiteLongitude() = %v, want -1.2", o.SiteLongitude())
	}
	if o.SiteLatitude() != 0.7 {
		t.Errorf("SetSiteLongitude touched latitude: %v", o.SiteLatitude())
	}
}

func TestObserverSiteChangeRecomputes(t *testing.T) {
	o := NewObserver(KindSun, time.Date(2008, 6, 21, 12, 0, 0, 0, time.UTC), Offsets{})
	before := o.Snapshot()
	o.SetSiteLongitude(1.0)
	if o.Snapshot() == before {
		t.Error("site longitude change did not refresh derived fields")
	}
}

func TestKindString(t *testing.T) {
	if KindSun.String() != "sun" || KindMoon.String() != "moon" || Kind(9).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}
