package internal

import (
	"log/slog"
	"time"
)

// Emergency transponder codes. Everything else, including the usual VFR and
// assigned codes, is ignored by the verifier.
const (
	SquawkHijack       = "7500"
	SquawkRadioFailure = "7600"
	SquawkEmergency    = "7700"
	SquawkMilIntercept = "7777"
)

var squawkDescriptions = map[string]string{ //nolint:gochecknoglobals // static lookup table
	SquawkHijack:       "HIJACK ALERT - Aircraft has been hijacked",
	SquawkRadioFailure: "RADIO FAILURE - Lost radio contact with ATC",
	SquawkEmergency:    "GENERAL EMERGENCY - Aircraft declaring emergency",
	SquawkMilIntercept: "MILITARY INTERCEPT - Military interception in progress",
}

// IsEmergencyCode reports whether the squawk is one of the four reserved
// emergency codes.
func IsEmergencyCode(code string) bool {
	_, found := squawkDescriptions[code]
	return found
}

// SquawkDescription returns the human-readable meaning of an emergency code.
func SquawkDescription(code string) string {
	if desc, found := squawkDescriptions[code]; found {
		return desc
	}

	return "Unknown"
}

// verifyPhase distinguishes a code still being observed from one that has
// already fired. A Verified state keeps absorbing polls of the same code so
// that an ongoing emergency alerts exactly once, however long it lasts.
type verifyPhase int

const (
	phaseUnverified verifyPhase = iota
	phaseVerified
)

// EmergencyTrackState counts consecutive polls reporting the same emergency
// code for one aircraft. Each hex holds at most one active code; any poll
// reporting a different code discards the count entirely.
type EmergencyTrackState struct {
	Hex         string
	Code        string
	PollCount   int
	FirstPollAt time.Time
	LastPollAt  time.Time

	phase verifyPhase
}

// Verified reports whether this state has already produced its alert.
func (s EmergencyTrackState) Verified() bool { return s.phase == phaseVerified }

// SuppressionThresholds parameterizes the landing heuristic that filters
// 7600 false positives. Transponders routinely pass through emergency codes
// while being dialed, and ADS-B dropouts during a normal approach can look
// like a radio-failure declaration.
type SuppressionThresholds struct {
	ApproachAltitudeFt   float64 // branch (a): below this altitude
	ApproachRadiusMiles  float64 // branch (a): within this distance of a reference airport
	ApproachMinSpeedKt   float64 // branch (a): ground speed window
	ApproachMaxSpeedKt   float64
	CatchAllAltitudeFt   float64 // branch (b): below this altitude
	CatchAllDescentFtMin float64 // branch (b): descending faster than this
}

// EmergencyVerifier converts a glitchy squawk stream into a verified,
// sustained emergency determination. A code must be reported on a number of
// consecutive polls before it fires; single-poll blips from code rotation
// never alert. All aircraft are evaluated, watched or not.
type EmergencyVerifier struct {
	sink   AlertSink
	clock  Clock
	logger *slog.Logger

	sustainPolls int           // consecutive polls required before alerting
	staleTimeout time.Duration // forget a hex that vanished for this long
	pollInterval time.Duration // used to report the sustained duration
	thresholds   SuppressionThresholds

	states map[string]*EmergencyTrackState
}

// NewEmergencyVerifier wires a verifier. The state map is owned exclusively
// by the verifier and only mutated from within Observe.
func NewEmergencyVerifier(
	sink AlertSink,
	clock Clock,
	sustainPolls int,
	staleTimeout time.Duration,
	pollInterval time.Duration,
	thresholds SuppressionThresholds,
	logger *slog.Logger,
) *EmergencyVerifier {
	return &EmergencyVerifier{
		sink:         sink,
		clock:        clock,
		logger:       logger,
		sustainPolls: sustainPolls,
		staleTimeout: staleTimeout,
		pollInterval: pollInterval,
		thresholds:   thresholds,
		states:       make(map[string]*EmergencyTrackState),
	}
}

// Observe processes one poll worth of snapshots.
func (v *EmergencyVerifier) Observe(snapshots []Snapshot) {
	now := v.clock.Now()
	present := make(map[string]bool, len(snapshots))

	for _, snapshot := range snapshots {
		present[snapshot.Hex] = true
		v.observeSquawk(snapshot, now)
	}

	// A hex that dropped out of the snapshot keeps its count across brief
	// reception gaps, but is forgotten entirely once the gap exceeds the
	// stale timeout. No partial credit survives.
	for hex, state := range v.states {
		if !present[hex] && now.Sub(state.LastPollAt) > v.staleTimeout {
			v.logger.Debug("emergency: tracking went stale",
				slog.String("hex", hex),
				slog.String("code", state.Code))
			delete(v.states, hex)
		}
	}
}

func (v *EmergencyVerifier) observeSquawk(snapshot Snapshot, now time.Time) {
	hex := snapshot.Hex
	code := snapshot.Squawk()

	state, tracked := v.states[hex]

	if !IsEmergencyCode(code) {
		// The aircraft is visible and no longer reporting the code; the
		// previous observation run is void.
		if tracked {
			delete(v.states, hex)
		}
		return
	}

	switch {
	case !tracked:
		state = &EmergencyTrackState{
			Hex:         hex,
			Code:        code,
			PollCount:   1,
			FirstPollAt: now,
			LastPollAt:  now,
		}
		v.states[hex] = state
	case state.Code != code:
		// Code changed mid-observation; start over with the new code.
		state = &EmergencyTrackState{
			Hex:         hex,
			Code:        code,
			PollCount:   1,
			FirstPollAt: now,
			LastPollAt:  now,
		}
		v.states[hex] = state
	default:
		state.PollCount++
		state.LastPollAt = now
	}

	if state.phase == phaseVerified || state.PollCount < v.sustainPolls {
		return
	}

	// Sustained. One shot per onset: the state stays behind as Verified so
	// the same ongoing emergency never re-alerts; only a fresh onset (code
	// clears and re-triggers) verifies again from scratch.
	state.phase = phaseVerified

	if code == SquawkRadioFailure && v.isLikelyLanding(snapshot) {
		v.logger.Info("emergency: 7600 suppressed as landing approach",
			slog.String("hex", hex),
			slog.String("altitude", snapshot.AltitudeString()))
		return
	}

	alert := EmergencyAlert{
		Hex:              hex,
		Code:             code,
		Description:      SquawkDescription(code),
		SustainedSeconds: state.PollCount * int(v.pollInterval.Seconds()),
		Snapshot:         snapshot,
		FiredAt:          now,
	}

	v.logger.Warn("emergency: verified",
		slog.String("hex", hex),
		slog.String("code", code),
		slog.Int("sustainedSeconds", alert.SustainedSeconds))

	v.sink.Emergency(alert)
}

// isLikelyLanding applies the landing-suppression heuristic for code 7600.
// Either branch matching reclassifies the squawk as an approach artifact. A
// branch whose required fields are missing evaluates false, so incomplete
// data fails open toward alerting.
func (v *EmergencyVerifier) isLikelyLanding(snapshot Snapshot) bool {
	altitude, hasAltitude := snapshot.Altitude()
	rate, hasRate := snapshot.VerticalRate()

	if !hasAltitude || !hasRate {
		return false
	}

	// Branch (b): very low and descending fast, even without position data.
	if altitude < v.thresholds.CatchAllAltitudeFt && rate < -v.thresholds.CatchAllDescentFtMin {
		return true
	}

	// Branch (a): a typical approach profile near a listed airport.
	pos, hasPos := snapshot.Position()
	speed, hasSpeed := snapshot.Speed()
	if !hasPos || !hasSpeed {
		return false
	}

	if altitude >= v.thresholds.ApproachAltitudeFt || rate >= 0 {
		return false
	}

	if speed < v.thresholds.ApproachMinSpeedKt || speed > v.thresholds.ApproachMaxSpeedKt {
		return false
	}

	_, miles := NearestAirport(pos)

	return miles < v.thresholds.ApproachRadiusMiles
}

// ActiveStates returns a copy of the current per-hex observation states,
// for display purposes.
func (v *EmergencyVerifier) ActiveStates() []EmergencyTrackState {
	states := make([]EmergencyTrackState, 0, len(v.states))
	for _, state := range v.states {
		states = append(states, *state)
	}

	return states
}
