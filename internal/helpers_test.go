package internal

import (
	"time"
)

// fakeClock is a manually advanced Clock for driving timeout and cooldown
// logic in tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingSink captures every alert it receives, in order.
type recordingSink struct {
	proximity []ProximityAlert
	emergency []EmergencyAlert
}

func (s *recordingSink) Proximity(alert ProximityAlert) {
	s.proximity = append(s.proximity, alert)
}

func (s *recordingSink) Emergency(alert EmergencyAlert) {
	s.emergency = append(s.emergency, alert)
}

func floatPtr(v float64) *float64 { return &v }

// snapshotOpts describes one synthetic aircraft observation.
type snapshotOpts struct {
	hex      string
	lat, lon *float64
	altitude any
	speed    *float64
	rate     *float64
	squawk   string
	flight   string
}

func makeSnapshot(at time.Time, opts snapshotOpts) Snapshot {
	return Snapshot{
		Hex:        opts.hex,
		ObservedAt: at,
		Record: AircraftRecord{
			Hex:         opts.hex,
			Flight:      opts.flight,
			AltBaro:     opts.altitude,
			GroundSpeed: opts.speed,
			BaroRate:    opts.rate,
			Squawk:      opts.squawk,
			Lat:         opts.lat,
			Lon:         opts.lon,
		},
	}
}
