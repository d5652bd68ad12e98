package internal

import "time"

// ProximityAlert is the single notification produced for one flyby of a
// watched aircraft. ClosestMiles is the minimum distance observed across the
// whole tracked session; Closest is the snapshot taken at that minimum.
type ProximityAlert struct {
	Hex          string
	Owner        string
	Model        string
	TailNumber   string
	Description  string
	ClosestMiles float64
	Direction    string // compass direction from home towards the closest position
	Closest      Snapshot
	TrackedFor   time.Duration
	FiredAt      time.Time
}

// EmergencyAlert is the single notification produced once an emergency
// squawk has been sustained long enough to be considered verified.
type EmergencyAlert struct {
	Hex              string
	Code             string
	Description      string
	SustainedSeconds int
	Snapshot         Snapshot
	FiredAt          time.Time
}

// AlertSink receives finalized alert records. Implementations format and
// deliver them (console, desktop notification, email, database); the
// trackers only ever make a single synchronous call per event and never
// retry.
type AlertSink interface {
	Proximity(alert ProximityAlert)
	Emergency(alert EmergencyAlert)
}

// FanoutSink delivers every alert to each of its member sinks in order.
type FanoutSink []AlertSink

func (f FanoutSink) Proximity(alert ProximityAlert) {
	for _, sink := range f {
		sink.Proximity(alert)
	}
}

func (f FanoutSink) Emergency(alert EmergencyAlert) {
	for _, sink := range f {
		sink.Emergency(alert)
	}
}
