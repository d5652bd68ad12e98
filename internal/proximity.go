package internal

import (
	"log/slog"
	"sort"
	"time"
)

// ProximityState holds the tracking data for one watched aircraft that is
// currently within receiver range. ClosestMiles only ever decreases while
// the state exists; it is fixed the moment the flyby is finalized.
type ProximityState struct {
	Hex               string
	TrackingStartedAt time.Time
	LastSeenAt        time.Time
	ClosestMiles      float64
	Closest           Snapshot
}

// ProximityTracker turns the noisy stream of per-poll distance readings for
// watched aircraft into a single closest-approach alert per flyby.
//
// Per hex the tracker is a three-phase machine: no state (idle), an active
// ProximityState (tracking), and a cooldown timestamp after an alert fired.
// A flyby is finalized when the aircraft disappears from a poll or has been
// tracked longer than the safety timeout; reporting the minimum distance
// seen over the whole session handles aircraft that approach, recede and
// approach again before leaving.
type ProximityTracker struct {
	home      Coordinates
	watchlist *Watchlist
	sink      AlertSink
	clock     Clock
	logger    *slog.Logger

	timeout  time.Duration // safety cutoff for aircraft that never leave
	cooldown time.Duration // repeat-alert suppression window per hex

	tracking  map[string]*ProximityState
	cooldowns map[string]time.Time // hex -> cooldownUntil
}

// NewProximityTracker wires a tracker against the given home location,
// watchlist and sink. The maps are owned exclusively by the tracker and are
// only mutated from within Observe.
func NewProximityTracker(
	home Coordinates,
	watchlist *Watchlist,
	sink AlertSink,
	clock Clock,
	timeout time.Duration,
	cooldown time.Duration,
	logger *slog.Logger,
) *ProximityTracker {
	return &ProximityTracker{
		home:      home,
		watchlist: watchlist,
		sink:      sink,
		clock:     clock,
		logger:    logger,
		timeout:   timeout,
		cooldown:  cooldown,
		tracking:  make(map[string]*ProximityState),
		cooldowns: make(map[string]time.Time),
	}
}

// Observe processes one poll worth of snapshots. Watched aircraft present in
// the poll update or start tracking states; tracked aircraft absent from the
// poll are finalized and alerted.
func (t *ProximityTracker) Observe(snapshots []Snapshot) {
	now := t.clock.Now()
	present := make(map[string]bool, len(snapshots))

	for _, snapshot := range snapshots {
		if _, watched := t.watchlist.Lookup(snapshot.Hex); !watched {
			continue
		}

		present[snapshot.Hex] = true
		t.observeWatched(snapshot, now)
	}

	// Aircraft that were being tracked but are missing from this poll have
	// left receiver coverage; their flyby is over.
	for hex, state := range t.tracking {
		if !present[hex] {
			t.finalize(state, now)
		}
	}
}

func (t *ProximityTracker) observeWatched(snapshot Snapshot, now time.Time) {
	hex := snapshot.Hex

	if until, cooling := t.cooldowns[hex]; cooling {
		if now.Before(until) {
			// Sighting observed but suppressed; the flyby already alerted.
			return
		}
		delete(t.cooldowns, hex)
	}

	state, tracked := t.tracking[hex]
	if !tracked {
		pos, hasPos := snapshot.Position()
		if !hasPos {
			// Cannot distance-check without a position; wait for a poll
			// that carries one before starting to track.
			return
		}

		miles := Distance(t.home, pos).Miles()
		t.tracking[hex] = &ProximityState{
			Hex:               hex,
			TrackingStartedAt: now,
			LastSeenAt:        now,
			ClosestMiles:      miles,
			Closest:           snapshot,
		}

		t.logger.Info("proximity: tracking started",
			slog.String("hex", hex),
			slog.Float64("miles", miles))

		return
	}

	state.LastSeenAt = now

	if pos, hasPos := snapshot.Position(); hasPos {
		miles := Distance(t.home, pos).Miles()
		if miles < state.ClosestMiles {
			state.ClosestMiles = miles
			state.Closest = snapshot
		}
	}

	// Loitering aircraft would otherwise never trigger the disappearance
	// path, so force the flyby closed after the safety timeout.
	if now.Sub(state.TrackingStartedAt) >= t.timeout {
		t.finalize(state, now)
	}
}

// finalize emits the one alert for this flyby and moves the hex into
// cooldown. The closest distance is fixed at this point.
func (t *ProximityTracker) finalize(state *ProximityState, now time.Time) {
	entry, _ := t.watchlist.Lookup(state.Hex)

	direction := ""
	if pos, hasPos := state.Closest.Position(); hasPos {
		direction = CompassDirection(Bearing(t.home, pos))
	}

	alert := ProximityAlert{
		Hex:          state.Hex,
		Owner:        entry.Owner,
		Model:        entry.Model,
		TailNumber:   entry.TailNumber,
		Description:  entry.Description,
		ClosestMiles: state.ClosestMiles,
		Direction:    direction,
		Closest:      state.Closest,
		TrackedFor:   now.Sub(state.TrackingStartedAt),
		FiredAt:      now,
	}

	delete(t.tracking, state.Hex)
	t.cooldowns[state.Hex] = now.Add(t.cooldown)

	t.logger.Info("proximity: flyby finalized",
		slog.String("hex", state.Hex),
		slog.Float64("closestMiles", state.ClosestMiles),
		slog.Duration("trackedFor", alert.TrackedFor))

	t.sink.Proximity(alert)
}

// ActiveStates returns a copy of the current tracking states sorted by
// closest distance, for display purposes.
func (t *ProximityTracker) ActiveStates() []ProximityState {
	states := make([]ProximityState, 0, len(t.tracking))
	for _, state := range t.tracking {
		states = append(states, *state)
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].ClosestMiles < states[j].ClosestMiles
	})

	return states
}

// CooldownUntil reports whether the hex is in its post-alert cooldown and
// when that cooldown ends.
func (t *ProximityTracker) CooldownUntil(hex string) (time.Time, bool) {
	until, cooling := t.cooldowns[hex]
	return until, cooling
}
