package lighting

import "github.com/Faultbox/midgard-sky/internal/sky/atmosphere"

// Phase is a sun's day/night state.
type Phase int

const (
	Day Phase = iota
	Night
)

func (p Phase) String() string {
	if p == Night {
		return "night"
	}
	return "day"
}

// Transition is the edge reported by DayNight.Update.
type Transition int

const (
	NoTransition Transition = iota
	Sunset                  // Day → Night
	Sunrise                 // Night → Day
)

func (t Transition) String() string {
	switch t {
	case Sunset:
		return "sunset"
	case Sunrise:
		return "sunrise"
	default:
		return "none"
	}
}

// DayNight tracks one sun's phase and applies the scene changes only when
// the phase flips.
type DayNight struct {
	phase Phase
}

// NewDayNight starts in the phase matching lat without firing a transition.
func NewDayNight(lat float64) DayNight {
	return DayNight{phase: phaseAt(lat)}
}

// Phase returns the current phase.
func (d *DayNight) Phase() Phase { return d.phase }

// Update moves the machine to the phase for lat. On sunset the light stops
// casting shadows and leaves amb; on sunrise both are restored. amb may be
// nil.
func (d *DayNight) Update(lat float64, light *Light, amb Ambient) Transition {
	next := phaseAt(lat)
	if next == d.phase {
		return NoTransition
	}
	d.phase = next

	if next == Night {
		light.ShadowCaster = false
		if amb != nil {
			amb.Detach(light)
		}
		return Sunset
	}

	light.ShadowCaster = true
	if amb != nil {
		amb.Attach(light)
	}
	return Sunrise
}

func phaseAt(lat float64) Phase {
	if atmosphere.IsNightTime(lat) {
		return Night
	}
	return Day
}
