// Package lighting packs sky lights for GPU upload.
package lighting

import (
	skylight "github.com/Faultbox/midgard-sky/internal/sky/lighting"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// MaxLights is the maximum number of sky lights supported in shaders.
const MaxLights = 8

// Light is one directional light in GPU form.
type Light struct {
	Direction [3]float32 // unit vector towards the light
	Diffuse   [4]float32
}

// Buffer holds lights for GPU upload.
type Buffer struct {
	Lights  []Light
	Ambient math.Color
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]Light, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
}

// Add packs l relative to origin. Disabled lights and lights sitting on the
// origin are skipped. Returns false if the buffer is full.
func (b *Buffer) Add(l *skylight.Light, origin math.Vec3) bool {
	if !l.Enabled {
		return true
	}
	d := l.Location.Sub(origin)
	if d.Length() == 0 {
		return true
	}
	if len(b.Lights) >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, Light{
		Direction: d.Normalize().Array(),
		Diffuse:   l.Diffuse.Clamped().Array(),
	})
	return true
}

// Fill replaces the buffer with the lights attached to amb plus extra, and
// takes amb's global ambient. Lights past MaxLights are dropped.
func (b *Buffer) Fill(amb *skylight.AmbientState, origin math.Vec3, extra ...*skylight.Light) {
	b.Clear()
	b.Ambient = amb.GlobalAmbient()
	for _, list := range [][]*skylight.Light{amb.Lights(), extra} {
		for _, l := range list {
			if !b.Add(l, origin) {
				return
			}
		}
	}
}

// Count returns the number of packed lights.
func (b *Buffer) Count() int { return len(b.Lights) }

// Directions returns directions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *Buffer) Directions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Direction[:])
	}
	return result
}

// Colors returns diffuse colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, a0, r1, ...]
func (b *Buffer) Colors() []float32 {
	result := make([]float32, MaxLights*4)
	for i, light := range b.Lights {
		copy(result[i*4:], light.Diffuse[:])
	}
	return result
}
