package ephemeris

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Observer tracks one celestial body from a fixed site as simulated time
// advances. Every derived field is recomputed from the current time on each
// change; there is no incremental state.
type Observer struct {
	kind    Kind
	series  Series
	site    Site
	offsets Offsets
	current time.Time
	pos     Position
	debug   bool
}

// NewObserver creates an observer for a body kind at start time with the
// given series offsets. The site starts at latitude 0, longitude 0.
func NewObserver(kind Kind, start time.Time, offsets Offsets) *Observer {
	o := &Observer{
		kind:    kind,
		series:  SeriesFor(kind),
		offsets: offsets,
		current: start.UTC(),
	}
	o.recompute()
	return o
}

// Advance moves the observer's clock forward by the elapsed hours, minutes
// and seconds and recomputes the position.
func (o *Observer) Advance(hh, mm, ss int) {
	o.current = o.current.
		Add(time.Duration(hh) * time.Hour).
		Add(time.Duration(mm) * time.Minute).
		Add(time.Duration(ss) * time.Second)
	o.recompute()
}

// SetTime jumps the observer to t.
func (o *Observer) SetTime(t time.Time) {
	o.current = t.UTC()
	o.recompute()
}

func (o *Observer) recompute() {
	o.pos = ComputePosition(o.series, o.current, o.site, o.offsets)
	if o.debug {
		logger.Debug("observer updated",
			zap.Stringer("body", o.kind),
			zap.Time("time", o.current),
			zap.Float64("longitude", o.pos.Longitude),
			zap.Float64("latitude", o.pos.Latitude),
			zap.Float64("distance", o.pos.Distance),
		)
	}
}

// EnableDebug toggles per-update debug logging.
func (o *Observer) EnableDebug(enable bool) {
	o.debug = enable
}

// Kind returns which body this observer follows.
func (o *Observer) Kind() Kind { return o.kind }

// CurrentTime returns the observer's simulated UTC time.
func (o *Observer) CurrentTime() time.Time { return o.current }

// Offsets returns the series offsets.
func (o *Observer) Offsets() Offsets { return o.offsets }

// Longitude returns the apparent longitude in radians.
func (o *Observer) Longitude() float64 { return o.pos.Longitude }

// Latitude returns the apparent latitude in radians.
func (o *Observer) Latitude() float64 { return o.pos.Latitude }

// Distance returns the geocentric distance in Earth radii.
func (o *Observer) Distance() float64 { return o.pos.Distance }

// Position returns the observer-centred position in scene units.
func (o *Observer) Position() math.Vec3 { return o.pos.Vector }

// Snapshot returns the full solver output for the current time.
func (o *Observer) Snapshot() Position { return o.pos }

// SiteLatitude returns the site latitude in radians.
func (o *Observer) SiteLatitude() float64 { return o.site.Latitude }

// SiteLongitude returns the site longitude in radians.
func (o *Observer) SiteLongitude() float64 { return o.site.Longitude }

// SetSiteLatitude sets the site latitude and recomputes the position.
func (o *Observer) SetSiteLatitude(lat float64) {
	o.site.Latitude = lat
	o.recompute()
}

// SetSiteLongitude sets the site longitude and recomputes the position.
func (o *Observer) SetSiteLongitude(lon float64) {
	o.site.Longitude = lon
	o.recompute()
}

// SetSite sets both site coordinates with a single recompute.
func (o *Observer) SetSite(site Site) {
	o.site = site
	o.recompute()
}
