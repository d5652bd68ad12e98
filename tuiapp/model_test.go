package tuiapp

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

type stubSource struct {
	snapshots []internal.Snapshot
}

func (s *stubSource) Fetch(_ context.Context) ([]internal.Snapshot, error) {
	return s.snapshots, nil
}

func newTestModel(source internal.SnapshotSource) *model {
	logger := internal.NewDiscardLogger()
	clock := internal.SystemClock()
	watchlist := internal.NewWatchlist([]internal.WatchEntry{{ICAO: "A835AF", Owner: "Falcon Landing LLC"}})
	alerts := &collectorSink{}

	proximity := internal.NewProximityTracker(
		internal.NewCoordinates(35.2271, -80.8431),
		watchlist,
		alerts,
		clock,
		30*time.Minute,
		24*time.Hour,
		logger)

	emergency := internal.NewEmergencyVerifier(
		alerts,
		clock,
		3,
		120*time.Second,
		15*time.Second,
		internal.DefaultConfig().SuppressionThresholds(),
		logger)

	monitor := internal.NewMonitor(source, proximity, emergency, clock, 15*time.Second, logger)

	tableStyle := table.DefaultStyles()

	return &model{
		baseStyle:    lipgloss.NewStyle(),
		viewStyle:    lipgloss.NewStyle(),
		theme:        Color,
		trackedTbl:   newTrackedAircraftTable(tableStyle),
		alertTbl:     newRecentAlertTable(tableStyle),
		tableStyle:   tableStyle,
		source:       source,
		monitor:      monitor,
		alerts:       alerts,
		watchlist:    watchlist,
		pollInterval: 15 * time.Second,
	}
}

// The poll command runs in its own goroutine while Update and View read the
// tracker maps, so the command must only fetch; all processing has to happen
// in Update on the event-loop goroutine.
func TestPollCommandOnlyFetches(t *testing.T) {
	squawk := "7700"
	source := &stubSource{
		snapshots: []internal.Snapshot{
			{
				Hex:    "DEF456",
				Record: internal.AircraftRecord{Hex: "DEF456", Squawk: squawk, AltBaro: 35000.0},
			},
		},
	}
	m := newTestModel(source)

	msg := pollCmd(source)()

	snapshots, ok := msg.(SnapshotsMsg)
	if !ok {
		t.Fatalf("pollCmd() returned %T, want SnapshotsMsg", msg)
	}
	if len(snapshots) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snapshots))
	}

	// Nothing may have been processed yet.
	if m.monitor.PollCount() != 0 {
		t.Errorf("PollCount() = %d after the command alone, want 0", m.monitor.PollCount())
	}
	if len(m.monitor.Emergency().ActiveStates()) != 0 {
		t.Errorf("tracker state mutated outside of Update")
	}

	// Update performs the processing.
	m.Update(msg)

	if m.monitor.PollCount() != 1 {
		t.Errorf("PollCount() = %d after Update, want 1", m.monitor.PollCount())
	}
	states := m.monitor.Emergency().ActiveStates()
	if len(states) != 1 || states[0].Code != squawk {
		t.Errorf("ActiveStates() = %+v, want the squawking aircraft observed once", states)
	}
}

func TestFailedFetchYieldsNoMessage(t *testing.T) {
	source := &scriptedErrSource{}
	msg := pollCmd(source)()

	if msg != nil {
		t.Errorf("pollCmd() = %v on a fetch error, want nil", msg)
	}
}

type scriptedErrSource struct{}

func (s *scriptedErrSource) Fetch(_ context.Context) ([]internal.Snapshot, error) {
	return nil, context.DeadlineExceeded
}
