// Package lighting derives light colors, flare strengths and day/night
// toggles for the sky's suns and moons from their apparent latitude.
package lighting

import (
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Light is a scene light driven by a celestial body. The sky owns the
// values; renderers read them after each update.
type Light struct {
	Diffuse      math.Color
	Ambient      math.Color
	Location     math.Vec3
	Enabled      bool
	ShadowCaster bool
}

// NewSunLight returns a white, shadow-casting light.
func NewSunLight() *Light {
	return &Light{
		Diffuse:      math.ColorWhite,
		Ambient:      math.ColorTransparent,
		Enabled:      true,
		ShadowCaster: true,
	}
}

// NewMoonLight returns a dim light that never casts shadows.
func NewMoonLight() *Light {
	return &Light{
		Diffuse: math.Color{R: 0.25, G: 0.25, B: 0.25, A: 0.25},
		Ambient: math.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		Enabled: true,
	}
}

// Ambient is the world light accumulator that sun lights join by day.
type Ambient interface {
	Attach(l *Light)
	Detach(l *Light)
	SetGlobalScale(s float32)
}

// AmbientState is a simple Ambient keeping attached lights in insertion
// order and a base global ambient color.
type AmbientState struct {
	Base   math.Color
	scale  float32
	lights []*Light
}

// NewAmbientState creates an accumulator with base global ambient color.
func NewAmbientState(base math.Color) *AmbientState {
	return &AmbientState{Base: base, scale: 1}
}

// Attach adds l once; repeated attaches are ignored.
func (a *AmbientState) Attach(l *Light) {
	for _, x := range a.lights {
		if x == l {
			return
		}
	}
	a.lights = append(a.lights, l)
}

// Detach removes l if present.
func (a *AmbientState) Detach(l *Light) {
	for i, x := range a.lights {
		if x == l {
			a.lights = append(a.lights[:i], a.lights[i+1:]...)
			return
		}
	}
}

// SetGlobalScale sets the multiplier applied to Base.
func (a *AmbientState) SetGlobalScale(s float32) {
	a.scale = s
}

// GlobalAmbient returns Base scaled by the current multiplier.
func (a *AmbientState) GlobalAmbient() math.Color {
	return a.Base.Mul(a.scale)
}

// Lights returns the attached lights.
func (a *AmbientState) Lights() []*Light {
	return a.lights
}

// Attached reports whether l is currently attached.
func (a *AmbientState) Attached(l *Light) bool {
	for _, x := range a.lights {
		if x == l {
			return true
		}
	}
	return false
}
