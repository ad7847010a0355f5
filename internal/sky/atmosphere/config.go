// Package atmosphere implements the analytic Perez/Preetham daylight model
// used to color the sky dome, together with its tone-mapping controls.
//
// Internally every quantity is float64; only the final vertex colors are
// narrowed to float32. The package holds no mutable state outside Config, so
// UpdateDomeColors may run concurrently on distinct buffers.
package atmosphere

import "github.com/Faultbox/midgard-sky/pkg/math"

const (
	// Epsilon is the smallest gamma accepted and the achromatic threshold
	// for HSV conversion.
	Epsilon = 1e-6

	// Infinity bounds the open-ended setter ranges.
	Infinity = 3.3e38

	MinTurbidity = 1.0
	MaxTurbidity = 512.0
)

// ExposureMode selects how exposure is applied to the HSV value channel.
type ExposureMode int

const (
	// ExposureExponential maps v to 1 - exp(-exposure*v).
	ExposureExponential ExposureMode = iota
	// ExposureLinear maps v to exposure*v.
	ExposureLinear
)

func (m ExposureMode) String() string {
	if m == ExposureLinear {
		return "linear"
	}
	return "exponential"
}

// Default model parameters.
const (
	DefaultTurbidity = 2.95
	DefaultExposure  = 21.0
	DefaultOvercast  = 0.45
	DefaultGamma     = 1.09
)

// Default light palette.
var (
	DefaultDawnColor = math.Color{R: 0.9843, G: 0.7098, B: 0.3523, A: 1}
	DefaultDuskColor = math.Color{R: 0.6843, G: 0.5098, B: 0.1246, A: 1}
	DefaultMoonColor = math.Color{R: 0.2745, G: 0.3961, B: 0.6196, A: 1}
)

// Config holds the sky model parameters. Setters clamp out-of-range values
// instead of rejecting them. Exposure and gamma are stored as reciprocals.
type Config struct {
	turbidity float64
	overcast  float64
	mode      ExposureMode
	exposure  float64
	gamma     float64

	DawnColor math.Color
	DuskColor math.Color
	MoonColor math.Color
}

// DefaultConfig returns the model with its stock parameters.
func DefaultConfig() *Config {
	c := &Config{
		DawnColor: DefaultDawnColor,
		DuskColor: DefaultDuskColor,
		MoonColor: DefaultMoonColor,
	}
	c.SetTurbidity(DefaultTurbidity)
	c.SetExposure(ExposureExponential, DefaultExposure)
	c.SetOvercastFactor(DefaultOvercast)
	c.SetGammaCorrection(DefaultGamma)
	return c
}

// SetTurbidity clamps t to [1, 512].
func (c *Config) SetTurbidity(t float64) {
	c.turbidity = Clamp(t, MinTurbidity, MaxTurbidity)
}

// Turbidity returns the haziness parameter.
func (c *Config) Turbidity() float64 { return c.turbidity }

// SetOvercastFactor clamps f to [0, 1]. At 1 the clear-sky luminance is
// fully replaced by the overcast approximation.
func (c *Config) SetOvercastFactor(f float64) {
	c.overcast = Clamp(f, 0, 1)
}

// Overcast returns the overcast blend factor.
func (c *Config) Overcast() float64 { return c.overcast }

// SetExposure sets the exposure mode and stores 1/clamp(e, 1, Infinity).
func (c *Config) SetExposure(mode ExposureMode, e float64) {
	c.mode = mode
	c.exposure = 1 / Clamp(e, 1, Infinity)
}

// Exposure returns the stored (reciprocal) exposure factor.
func (c *Config) Exposure() float64 { return c.exposure }

// ExposureMode returns the exposure mapping.
func (c *Config) ExposureMode() ExposureMode { return c.mode }

// SetGammaCorrection stores 1/clamp(g, Epsilon, Infinity).
func (c *Config) SetGammaCorrection(g float64) {
	c.gamma = 1 / Clamp(g, Epsilon, Infinity)
}

// GammaCorrection returns the stored (reciprocal) gamma exponent.
func (c *Config) GammaCorrection() float64 { return c.gamma }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
