// Package ephemeris computes apparent sun and moon positions for an observer
// on Earth using low-order periodic series around the J2000 epoch.
//
// The series are empirical fits. Results are meaningful for dates within a
// few centuries of J2000 and degrade outside that window; nothing here fails,
// the numbers just drift.
package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian Date of the J2000.0 epoch.
const J2000 = 2451545.0

// gregorianSwitchYear is the last year treated as Julian calendar.
const gregorianSwitchYear = 1585

// JulianDate converts a UTC time to a Julian Date.
//
// Only the hour and minute contribute to the day fraction; seconds are
// ignored. Years up to 1585 use the Julian calendar, later years the
// Gregorian one.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	day := float64(t.Day()) + (float64(t.Hour())+float64(t.Minute())/60)/24
	if t.Year() <= gregorianSwitchYear {
		return julian.CalendarJulianToJD(t.Year(), int(t.Month()), day)
	}
	return julian.CalendarGregorianToJD(t.Year(), int(t.Month()), day)
}

// Centuries returns Julian centuries elapsed since J2000 for a Julian Date.
func Centuries(jd float64) float64 {
	return (jd - J2000) / 36525
}
