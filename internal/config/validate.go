package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Faultbox/midgard-sky/internal/sky/atmosphere"
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
)

// startLayouts are tried in order by StartTime.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Validate reports values the sky cannot run with. Out-of-range model
// parameters are not errors; the sky clamps them.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Sky.Mode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.StartTime(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Suns) == 0 {
		errs = append(errs, errors.New("suns: at least one sun is required"))
	}
	for i, b := range c.Suns {
		if b.Size <= 0 {
			errs = append(errs, fmt.Errorf("suns[%d]: size must be positive, got %g", i, b.Size))
		}
	}
	for i, b := range c.Moons {
		if b.Size <= 0 {
			errs = append(errs, fmt.Errorf("moons[%d]: size must be positive, got %g", i, b.Size))
		}
	}
	if c.Dome.Planes < 2 {
		errs = append(errs, fmt.Errorf("dome: planes must be at least 2, got %d", c.Dome.Planes))
	}
	if c.Terrain.EyeHeight < 0 {
		errs = append(errs, fmt.Errorf("terrain: eye height below ground %g", c.Terrain.EyeHeight))
	}
	if c.Clock.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("clock: negative time scale %g", c.Clock.TimeScale))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: bad window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	return errors.Join(errs...)
}

// StartTime parses Clock.Start. Times without a zone are UTC.
func (c *Config) StartTime() (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, c.Clock.Start, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("clock: bad start time %q", c.Clock.Start)
}

// Mode parses the exposure mode name.
func (s *SkyConfig) Mode() (atmosphere.ExposureMode, error) {
	switch strings.ToLower(s.ExposureMode) {
	case "", "exponential", "exp":
		return atmosphere.ExposureExponential, nil
	case "linear":
		return atmosphere.ExposureLinear, nil
	}
	return 0, fmt.Errorf("sky: unknown exposure mode %q", s.ExposureMode)
}

// Atmosphere builds the sky model parameters. Values are clamped by the
// setters; an unknown exposure mode falls back to exponential.
func (s *SkyConfig) Atmosphere() *atmosphere.Config {
	mode, _ := s.Mode()
	a := atmosphere.DefaultConfig()
	a.SetTurbidity(s.Turbidity)
	a.SetOvercastFactor(s.Overcast)
	a.SetExposure(mode, s.Exposure)
	a.SetGammaCorrection(s.Gamma)
	a.DawnColor = s.DawnColor.Color()
	a.DuskColor = s.DuskColor.Color()
	a.MoonColor = s.MoonColor.Color()
	return a
}

// Offsets returns the ephemeris offsets of b.
func (b BodyConfig) Offsets() ephemeris.Offsets {
	return ephemeris.Offsets{Lambda: b.Lambda, Beta: b.Beta, R: b.R}
}

// Site returns the observer site.
func (s SiteConfig) Site() ephemeris.Site {
	return ephemeris.Site{Latitude: s.Latitude, Longitude: s.Longitude}
}
