package math

import "math"

// Color represents an RGBA color with float components, nominally 0.0 to 1.0.
// Intermediate results (additive sky blending, light scaling) may leave that
// range; callers clamp where a bounded value is required.
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// Add returns the component-wise sum, alpha included.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Mul scales all four components, alpha included.
func (c Color) Mul(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp interpolates every component towards other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: (1-t)*c.R + t*other.R,
		G: (1-t)*c.G + t*other.G,
		B: (1-t)*c.B + t*other.B,
		A: (1-t)*c.A + t*other.A,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// HasNaN reports whether any component is NaN.
func (c Color) HasNaN() bool {
	return isNaN32(c.R) || isNaN32(c.G) || isNaN32(c.B) || isNaN32(c.A)
}

// Clamped returns the color with every component limited to [0, 1].
// NaN components become 0.
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Array returns the color as a [4]float32 for GPU upload.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Bytes converts the color to 8-bit channels after clamping.
func (c Color) Bytes() (r, g, b, a uint8) {
	k := c.Clamped()
	return uint8(k.R*255 + 0.5), uint8(k.G*255 + 0.5), uint8(k.B*255 + 0.5), uint8(k.A*255 + 0.5)
}

func clamp01(v float32) float32 {
	switch {
	case isNaN32(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func isNaN32(v float32) bool {
	return math.IsNaN(float64(v))
}
