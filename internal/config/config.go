// Package config handles sky scene configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-sky/internal/sky/atmosphere"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Config holds all scene settings.
type Config struct {
	Sky      SkyConfig      `yaml:"sky"`
	Site     SiteConfig     `yaml:"site"`
	Clock    ClockConfig    `yaml:"clock"`
	Suns     []BodyConfig   `yaml:"suns"`
	Moons    []BodyConfig   `yaml:"moons"`
	Wind     WindConfig     `yaml:"wind"`
	Dome     DomeConfig     `yaml:"dome"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RGBA is a color written as a four element YAML list.
type RGBA [4]float32

// Color converts c to a math.Color.
func (c RGBA) Color() math.Color {
	return math.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func rgba(c math.Color) RGBA { return RGBA{c.R, c.G, c.B, c.A} }

// SkyConfig holds the sky color model parameters.
type SkyConfig struct {
	Turbidity    float64 `yaml:"turbidity"`
	Overcast     float64 `yaml:"overcast"`
	ExposureMode string  `yaml:"exposure_mode"` // "exponential" or "linear"
	Exposure     float64 `yaml:"exposure"`
	Gamma        float64 `yaml:"gamma"`
	DawnColor    RGBA    `yaml:"dawn_color"`
	DuskColor    RGBA    `yaml:"dusk_color"`
	MoonColor    RGBA    `yaml:"moon_color"`
	SolidColor   RGBA    `yaml:"solid_color"`
}

// SiteConfig is the observer location in radians.
type SiteConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ClockConfig controls simulated time.
type ClockConfig struct {
	Start     string  `yaml:"start"`      // RFC3339, UTC if no zone
	TimeScale float64 `yaml:"time_scale"` // simulated seconds per real second
}

// BodyConfig describes one sun or moon.
type BodyConfig struct {
	Lambda float64 `yaml:"lambda"` // radians
	Beta   float64 `yaml:"beta"`   // radians
	R      float64 `yaml:"r"`      // Earth radii
	Size   float64 `yaml:"size"`
}

// WindConfig holds the cloud layer settings.
type WindConfig struct {
	Vector     [3]float32 `yaml:"vector"`
	Speed      float64    `yaml:"speed"`
	Cloudiness float64    `yaml:"cloudiness"`
}

// DomeConfig controls the dome mesh. Every ring has dome.Radial samples.
type DomeConfig struct {
	Planes int     `yaml:"planes"`
	Radius float32 `yaml:"radius"`
}

// TerrainConfig places the viewer and the boxes that can hide a sun.
type TerrainConfig struct {
	EyeHeight float32     `yaml:"eye_height"`
	Obstacles []BoxConfig `yaml:"obstacles"`
}

// BoxConfig is an axis-aligned box given by two opposite corners.
type BoxConfig struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values: one sun and one
// moon over a mid-latitude site on the June solstice.
func Default() *Config {
	return &Config{
		Sky: SkyConfig{
			Turbidity:    atmosphere.DefaultTurbidity,
			Overcast:     atmosphere.DefaultOvercast,
			ExposureMode: atmosphere.ExposureExponential.String(),
			Exposure:     atmosphere.DefaultExposure,
			Gamma:        atmosphere.DefaultGamma,
			DawnColor:    rgba(atmosphere.DefaultDawnColor),
			DuskColor:    rgba(atmosphere.DefaultDuskColor),
			MoonColor:    rgba(atmosphere.DefaultMoonColor),
			SolidColor:   rgba(math.ColorBlack),
		},
		Site: SiteConfig{
			Latitude:  0.7,
			Longitude: 0,
		},
		Clock: ClockConfig{
			Start:     "2008-06-21T06:00:00Z",
			TimeScale: 600,
		},
		Suns:  []BodyConfig{{Size: 1}},
		Moons: []BodyConfig{{Size: 1}},
		Wind: WindConfig{
			Vector:     [3]float32{0.001, 0, 0.0005},
			Speed:      1,
			Cloudiness: 0.5,
		},
		Dome: DomeConfig{
			Planes: 16,
			Radius: 400000,
		},
		Terrain: TerrainConfig{
			EyeHeight: 50,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
