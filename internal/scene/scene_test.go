package scene

import (
	"context"
	"testing"
	"time"

	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
	"github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name       string
		scale      float64
		dt         time.Duration
		hh, mm, ss int
	}{
		{"frozen", 0, time.Second, 0, 0, 0},
		{"real time", 1, 2 * time.Second, 0, 0, 2},
		{"fast", 600, time.Second, 0, 10, 0},
		{"hours", 3600, 90 * time.Second, 90, 0, 0},
		{"mixed", 100, 37 * time.Second, 1, 1, 40},
		{"negative scale", -5, time.Second, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hh, mm, ss := NewClock(tt.scale).Advance(tt.dt)
			if hh != tt.hh || mm != tt.mm || ss != tt.ss {
				t.Errorf("Advance = %d:%d:%d, want %d:%d:%d", hh, mm, ss, tt.hh, tt.mm, tt.ss)
			}
		})
	}
}

func TestClockCarriesFractions(t *testing.T) {
	c := NewClock(1)
	total := 0
	for i := 0; i < 100; i++ {
		_, _, ss := c.Advance(16 * time.Millisecond)
		total += ss
	}
	if total != 1 {
		t.Errorf("1.6s of frames gave %ds", total)
	}

	c.SetPaused(true)
	if _, _, ss := c.Advance(time.Hour); ss != 0 || !c.Paused() {
		t.Error("paused clock advanced")
	}
}

func TestNewScene(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Start = "2008-06-21T12:00:00Z"
	cfg.Suns = []config.BodyConfig{{Size: 1}, {Lambda: 0.3, Size: 2}}

	sc, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(sc.Sky.Suns()) != 2 || len(sc.Sky.Moons()) != 1 {
		t.Fatalf("bodies: %d suns %d moons", len(sc.Sky.Suns()), len(sc.Sky.Moons()))
	}
	if got := sc.Sky.Sun(0).Observer.SiteLatitude(); got != cfg.Site.Latitude {
		t.Errorf("site latitude = %v", got)
	}
	if sc.Sky.Sun(1).Observer.Offsets().Lambda != 0.3 {
		t.Error("sun offsets not applied")
	}
	if len(sc.Frame().Colors) != len(sc.Mesh.Normals) {
		t.Errorf("frame has %d colors for %d samples", len(sc.Frame().Colors), len(sc.Mesh.Normals))
	}
	if sc.Sky.Sun(0).Phase() != lighting.Day {
		t.Error("noon sun not in day phase")
	}
	if len(sc.Ambient.Lights()) != 2 {
		t.Errorf("ambient has %d lights, want both suns", len(sc.Ambient.Lights()))
	}
	if sc.Weather.Fog().Color != sc.Sky.HazeColor() {
		t.Error("fog color not synced on build")
	}
	if a := sc.CloudAlpha(); a < 0.05 || a > 0.5 {
		t.Errorf("mean cloud alpha %v for cloudiness 0.5", a)
	}
}

func TestNewSceneBadStart(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Start = "not a time"
	if _, err := New(cfg, 1); err == nil {
		t.Error("expected error for bad start time")
	}
}

func TestTickTracksSimulatedTime(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.TimeScale = 3600
	sc, err := New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	start := sc.Now()

	for i := 0; i < 6; i++ {
		sc.Tick(time.Second)
	}

	if sc.Elapsed() != 6*time.Hour {
		t.Errorf("Elapsed = %v, want 6h", sc.Elapsed())
	}
	want := start.Add(6 * time.Hour)
	if got := sc.Sky.Sun(0).Observer.CurrentTime(); !got.Equal(want) {
		t.Errorf("sun time = %v, want %v", got, want)
	}
	if sc.Frame().Bodies[0].Kind != ephemeris.KindSun {
		t.Error("frame bodies out of order")
	}
	if deg := sc.SunDegrees(0); deg < 60 {
		t.Errorf("sun at noon is %v°", deg)
	}
}

func TestSceneWindTask(t *testing.T) {
	cfg := config.Default()
	cfg.Wind.Vector = [3]float32{0.2, 0, 0}
	cfg.Wind.Speed = 0.01
	sc, err := New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}

	sc.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for sc.Weather.Clouds().Translation() == (math.Vec3{}) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := sc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sc.Weather.Clouds().Translation() == (math.Vec3{}) {
		t.Error("wind task never moved the clouds")
	}
}

func TestObstaclesHideSun(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Start = "2008-06-21T12:00:00Z"

	open, err := New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	if open.Frame().Bodies[0].Flare <= 0 {
		t.Fatal("noon sun has no flare without obstacles")
	}

	// A tower the viewer stands inside.
	cfg.Terrain.Obstacles = []config.BoxConfig{{Min: [3]float32{-10, 0, -10}, Max: [3]float32{10, 1000, 10}}}
	walled, err := New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(walled.Obstacles) != 1 || walled.Eye.Y != cfg.Terrain.EyeHeight {
		t.Fatalf("obstacles %v eye %v", walled.Obstacles, walled.Eye)
	}
	if f := walled.Frame().Bodies[0].Flare; f != 0 {
		t.Errorf("enclosed sun flare = %v, want 0", f)
	}
	if !walled.Sky.Sun(0).FlareOcclusion {
		t.Error("occlusion flag cleared for a sun above the horizon")
	}
}
