package tuiapp

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

type UpdateTickMsg time.Time

func updateTick() tea.Cmd {
	return tea.Every(
		time.Second,
		func(t time.Time) tea.Msg {
			return UpdateTickMsg(t)
		},
	)
}

type PollTickMsg time.Time

func pollTick(interval time.Duration) tea.Cmd {
	return tea.Every(
		interval,
		func(t time.Time) tea.Msg {
			return PollTickMsg(t)
		},
	)
}

type SnapshotsMsg []internal.Snapshot

// pollCmd only fetches. The snapshots come back as a message and are run
// through the trackers in Update, so the state maps are never touched from
// a command goroutine.
func pollCmd(source internal.SnapshotSource) tea.Cmd {
	return func() tea.Msg {
		snapshots, err := source.Fetch(context.Background())
		if err != nil {
			return nil
		}
		return SnapshotsMsg(snapshots)
	}
}

// collectorSink buffers fired alerts for display. The trackers invoke it
// from Process, which the model calls in Update, so all access stays on the
// event-loop goroutine.
type collectorSink struct {
	proximity []internal.ProximityAlert
	emergency []internal.EmergencyAlert
}

const collectorLimit = 50

func (c *collectorSink) Proximity(alert internal.ProximityAlert) {
	c.proximity = append(c.proximity, alert)
	if len(c.proximity) > collectorLimit {
		c.proximity = c.proximity[len(c.proximity)-collectorLimit:]
	}
}

func (c *collectorSink) Emergency(alert internal.EmergencyAlert) {
	c.emergency = append(c.emergency, alert)
	if len(c.emergency) > collectorLimit {
		c.emergency = c.emergency[len(c.emergency)-collectorLimit:]
	}
}

// Recent returns the buffered alerts, newest last.
func (c *collectorSink) Recent() ([]internal.ProximityAlert, []internal.EmergencyAlert) {
	return c.proximity, c.emergency
}
