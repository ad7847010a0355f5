package lighting

import (
	"testing"

	skylight "github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

func TestBufferFill(t *testing.T) {
	sun := skylight.NewSunLight()
	sun.Location = math.Vec3{Y: 500}
	moon := skylight.NewMoonLight()
	moon.Location = math.Vec3{X: -10}

	amb := skylight.NewAmbientState(math.Color{R: 0.5, G: 0.5, B: 0.5, A: 1})
	amb.Attach(sun)
	amb.SetGlobalScale(0.5)

	b := NewBuffer()
	b.Fill(amb, math.Vec3{}, moon)

	if b.Count() != 2 {
		t.Fatalf("Count = %d, want 2", b.Count())
	}
	if b.Lights[0].Direction != [3]float32{0, 1, 0} {
		t.Errorf("sun direction = %v", b.Lights[0].Direction)
	}
	if b.Lights[1].Direction != [3]float32{-1, 0, 0} {
		t.Errorf("moon direction = %v", b.Lights[1].Direction)
	}
	if b.Ambient != (math.Color{R: 0.25, G: 0.25, B: 0.25, A: 0.5}) {
		t.Errorf("ambient = %+v", b.Ambient)
	}
	if len(amb.Lights()) != 1 {
		t.Errorf("Fill changed the ambient light list: %d", len(amb.Lights()))
	}
}

func TestBufferSkips(t *testing.T) {
	b := NewBuffer()

	off := skylight.NewSunLight()
	off.Location = math.Vec3{Y: 1}
	off.Enabled = false
	centred := skylight.NewSunLight()

	if !b.Add(off, math.Vec3{}) || !b.Add(centred, math.Vec3{}) || b.Count() != 0 {
		t.Errorf("disabled or centred lights packed: %d", b.Count())
	}
}

func TestBufferFull(t *testing.T) {
	b := NewBuffer()
	l := skylight.NewSunLight()
	l.Location = math.Vec3{X: 1}
	for i := 0; i < MaxLights; i++ {
		if !b.Add(l, math.Vec3{}) {
			t.Fatalf("Add %d failed before the buffer was full", i)
		}
	}
	if b.Add(l, math.Vec3{}) {
		t.Error("Add succeeded on a full buffer")
	}
}

func TestFlatArrays(t *testing.T) {
	b := NewBuffer()
	l := skylight.NewSunLight()
	l.Location = math.Vec3{Z: 3}
	b.Add(l, math.Vec3{})

	dirs, colors := b.Directions(), b.Colors()
	if len(dirs) != MaxLights*3 || len(colors) != MaxLights*4 {
		t.Fatalf("lengths %d %d", len(dirs), len(colors))
	}
	if dirs[2] != 1 || colors[0] != 1 || colors[3] != 1 {
		t.Errorf("dirs %v colors %v", dirs[:3], colors[:4])
	}
	if dirs[3] != 0 || colors[4] != 0 {
		t.Error("unused slots not zero")
	}
}
