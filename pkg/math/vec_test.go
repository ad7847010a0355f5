package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", got)
	}
}

func TestVec3Mod(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		m    float32
		want Vec3
	}{
		{"below modulus", Vec3{0.25, 0.5, 0.75}, 1, Vec3{0.25, 0.5, 0.75}},
		{"wraps over one", Vec3{1.25, 2.5, 1}, 1, Vec3{0.25, 0.5, 0}},
		{"cloud modulus", Vec3{1.0, 0.5, 0}, 0.95, Vec3{0.05, 0.5, 0}},
		{"keeps sign", Vec3{-1.25, 0, 0}, 1, Vec3{-0.25, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Mod(tt.m)
			if abs(got.X-tt.want.X) > 1e-5 || abs(got.Y-tt.want.Y) > 1e-5 || abs(got.Z-tt.want.Z) > 1e-5 {
				t.Errorf("Mod(%v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestColorClamped(t *testing.T) {
	c := Color{R: -0.5, G: 0.5, B: 2, A: float32(math.NaN())}
	got := c.Clamped()
	want := Color{0, 0.5, 1, 0}
	if got != want {
		t.Errorf("Clamped() = %v, want %v", got, want)
	}
}

func TestColorLerp(t *testing.T) {
	a := Color{0, 0, 0, 1}
	b := Color{1, 0.5, 0.25, 1}
	got := a.Lerp(b, 0.5)
	want := Color{0.5, 0.25, 0.125, 1}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestColorHasNaN(t *testing.T) {
	if ColorBlack.HasNaN() {
		t.Error("black should not report NaN")
	}
	if !(Color{G: float32(math.NaN())}).HasNaN() {
		t.Error("NaN green channel not detected")
	}
}

func TestColorBytes(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 2}.Bytes()
	if r != 255 || g != 128 || b != 0 || a != 255 {
		t.Errorf("Bytes() = %d,%d,%d,%d, want 255,128,0,255", r, g, b, a)
	}
}
