package scene

import (
	gomath "math"
	"time"
)

// Clock converts real frame time into whole simulated hours, minutes and
// seconds. Fractions of a simulated second carry over to the next frame.
type Clock struct {
	scale  float64
	carry  float64
	paused bool
}

// NewClock creates a clock running scale simulated seconds per real second.
func NewClock(scale float64) *Clock {
	c := &Clock{}
	c.SetScale(scale)
	return c
}

// Scale returns the simulated seconds per real second.
func (c *Clock) Scale() float64 { return c.scale }

// SetScale changes the rate. Negative rates are treated as zero.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 || gomath.IsNaN(scale) {
		scale = 0
	}
	c.scale = scale
}

// Paused reports whether the clock is stopped.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused stops or resumes the clock.
func (c *Clock) SetPaused(p bool) { c.paused = p }

// Advance returns the simulated delta for dt of real time.
func (c *Clock) Advance(dt time.Duration) (hh, mm, ss int) {
	if c.paused || dt <= 0 {
		return 0, 0, 0
	}
	total := c.carry + dt.Seconds()*c.scale
	whole := gomath.Floor(total)
	c.carry = total - whole

	secs := int64(whole)
	return int(secs / 3600), int(secs % 3600 / 60), int(secs % 60)
}
