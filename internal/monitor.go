package internal

import (
	"context"
	"log/slog"
	"time"
)

// SnapshotSource supplies the list of currently visible aircraft, once per
// poll. Implementations may hit the network; the monitor treats any error as
// a skipped poll.
type SnapshotSource interface {
	Fetch(ctx context.Context) ([]Snapshot, error)
}

// Monitor owns the two decision engines and drives them from a single
// sequential poll loop. Both trackers are fed from the same snapshot in the
// same goroutine, so no locking is needed around their state maps.
type Monitor struct {
	source    SnapshotSource
	proximity *ProximityTracker
	emergency *EmergencyVerifier
	clock     Clock
	logger    *slog.Logger
	interval  time.Duration

	pollCount int
}

// NewMonitor assembles the poll loop from its injected collaborators.
func NewMonitor(
	source SnapshotSource,
	proximity *ProximityTracker,
	emergency *EmergencyVerifier,
	clock Clock,
	interval time.Duration,
	logger *slog.Logger,
) *Monitor {
	return &Monitor{
		source:    source,
		proximity: proximity,
		emergency: emergency,
		clock:     clock,
		logger:    logger,
		interval:  interval,
	}
}

// Poll performs a single fetch-and-process cycle. A fetch error is logged
// and otherwise ignored; no tracker state is mutated on a failed poll.
func (m *Monitor) Poll(ctx context.Context) {
	snapshots, err := m.source.Fetch(ctx)
	if err != nil {
		m.logger.Error("monitor: poll skipped", slog.Any("error", err))
		return
	}

	m.Process(snapshots)
}

// Process feeds one poll worth of snapshots through both trackers. The
// snapshots are assumed deduplicated (DecodeSnapshots already keeps the last
// entry per hex).
func (m *Monitor) Process(snapshots []Snapshot) {
	m.pollCount++

	m.proximity.Observe(snapshots)
	m.emergency.Observe(snapshots)

	m.logger.Debug("monitor: poll processed",
		slog.Int("poll", m.pollCount),
		slog.Int("aircraft", len(snapshots)))
}

// Run polls until the context is cancelled. The in-flight poll always
// completes before Run returns, so alert emission is never left half-done.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Run once immediately rather than waiting out the first interval.
	m.Poll(ctx)

	for {
		select {
		case <-ticker.C:
			m.Poll(ctx)
		case <-ctx.Done():
			m.logger.Info("monitor: shutting down")
			return nil
		}
	}
}

// Proximity exposes the proximity tracker for state inspection.
func (m *Monitor) Proximity() *ProximityTracker { return m.proximity }

// Emergency exposes the emergency verifier for state inspection.
func (m *Monitor) Emergency() *EmergencyVerifier { return m.emergency }

// PollCount reports how many polls have completed since startup.
func (m *Monitor) PollCount() int { return m.pollCount }
