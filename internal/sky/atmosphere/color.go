package atmosphere

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct {
	X, Y, Z float64
}

// FromxyY converts chromaticity (x, y) and luminance Y to XYZ.
func FromxyY(x, y, lum float64) XYZ {
	return XYZ{
		X: (x / y) * lum,
		Y: lum,
		Z: ((1 - x - y) / y) * lum,
	}
}

// RGB is a linear color with unbounded float64 channels.
type RGB struct {
	R, G, B float64
}

// RGB converts to linear RGB. The result may fall outside [0, 1].
func (c XYZ) RGB() RGB {
	m := &xyzToRGB
	return RGB{
		R: m[0][0]*c.X + m[0][1]*c.Y + m[0][2]*c.Z,
		G: m[1][0]*c.X + m[1][1]*c.Y + m[1][2]*c.Z,
		B: m[2][0]*c.X + m[2][1]*c.Y + m[2][2]*c.Z,
	}
}

// HSV is hue in degrees [0, 360), saturation and value. Hue is -1 for black.
type HSV struct {
	H, S, V float64
}

// HSV converts to hue/saturation/value.
func (c RGB) HSV() HSV {
	lo := gomath.Min(gomath.Min(c.R, c.G), c.B)
	hi := gomath.Max(gomath.Max(c.R, c.G), c.B)
	delta := hi - lo

	out := HSV{V: hi}
	if gomath.Abs(hi) < Epsilon {
		out.H = -1
		return out
	}
	out.S = delta / hi
	if delta == 0 {
		return out
	}

	switch {
	case gomath.Abs(c.R-hi) < Epsilon:
		out.H = (c.G - c.B) / delta
	case gomath.Abs(c.G-hi) < Epsilon:
		out.H = 2 + (c.B-c.R)/delta
	default:
		out.H = 4 + (c.R-c.G)/delta
	}
	out.H *= 60
	if out.H < 0 {
		out.H += 360
	}
	return out
}

// RGB converts back to red/green/blue. Achromatic colors (S below Epsilon)
// come back as grey with every channel equal to V.
func (c HSV) RGB() RGB {
	if gomath.Abs(c.S) < Epsilon {
		return RGB{c.V, c.V, c.V}
	}

	h := c.H / 60
	sector := int(gomath.Floor(h))
	f := h - float64(sector)
	p := c.V * (1 - c.S)
	q := c.V * (1 - c.S*f)
	t := c.V * (1 - c.S*(1-f))

	switch sector {
	case 0:
		return RGB{c.V, t, p}
	case 1:
		return RGB{q, c.V, p}
	case 2:
		return RGB{p, c.V, t}
	case 3:
		return RGB{p, q, c.V}
	case 4:
		return RGB{t, p, c.V}
	default:
		return RGB{c.V, p, q}
	}
}

// Gamma raises each channel to exp. Negative channels become NaN and are
// dropped by Color.
func (c RGB) Gamma(exp float64) RGB {
	return RGB{
		R: gomath.Pow(c.R, exp),
		G: gomath.Pow(c.G, exp),
		B: gomath.Pow(c.B, exp),
	}
}

// Color clamps to [0, 1] with NaN mapped to 0 and returns an opaque color.
func (c RGB) Color() math.Color {
	return math.Color{
		R: float32(clampUnit(c.R)),
		G: float32(clampUnit(c.G)),
		B: float32(clampUnit(c.B)),
		A: 1,
	}
}

func clampUnit(v float64) float64 {
	if gomath.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}
