package internal

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

const (
	// appIconPath is the file path to the icon png for this application.
	appIconPath = "./assets/icon.png"
)

// ConsoleSink prints alerts to the given writer, one block per alert. It is
// the sink used in ticker mode.
type ConsoleSink struct {
	out io.Writer
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Proximity(alert ProximityAlert) {
	fmt.Fprintln(s.out, "=== AIRCRAFT ALERT ===")
	fmt.Fprintf(s.out, "%s (%s) %s\n", alert.Owner, alert.TailNumber, alert.Model)
	fmt.Fprintf(s.out, "Closest approach: %.1f miles %s of home\n", alert.ClosestMiles, alert.Direction)
	fmt.Fprintf(s.out, "Altitude %s, tracked for %s\n", alert.Closest.AltitudeString(), alert.TrackedFor.Round(time.Second))
	if alert.Description != "" {
		fmt.Fprintln(s.out, alert.Description)
	}
}

func (s *ConsoleSink) Emergency(alert EmergencyAlert) {
	fmt.Fprintln(s.out, "=== EMERGENCY SQUAWK ===")
	fmt.Fprintf(s.out, "%s squawking %s: %s\n", alert.Hex, alert.Code, alert.Description)
	fmt.Fprintf(s.out, "Flight %s at %s, sustained for %ds\n",
		alert.Snapshot.Callsign(), alert.Snapshot.AltitudeString(), alert.SustainedSeconds)
}

// DesktopSink raises a desktop notification per alert via beeep. Failures
// are logged and swallowed; a broken notification daemon must not take the
// monitor down.
type DesktopSink struct {
	logger *slog.Logger
}

func NewDesktopSink(appName string, logger *slog.Logger) *DesktopSink {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.
	return &DesktopSink{logger: logger}
}

func (s *DesktopSink) Proximity(alert ProximityAlert) {
	title := "Watched Aircraft Overhead"
	body := fmt.Sprintf("%s (%s)\n%.1f miles %s", alert.Owner, alert.TailNumber, alert.ClosestMiles, alert.Direction)
	if err := beeep.Notify(title, body, appIconPath); err != nil {
		s.logger.Warn("desktop notification failed", "error", err)
	}
}

func (s *DesktopSink) Emergency(alert EmergencyAlert) {
	title := fmt.Sprintf("Emergency Squawk %s", alert.Code)
	body := fmt.Sprintf("%s %s\n%s", alert.Hex, alert.Snapshot.Callsign(), alert.Description)
	if err := beeep.Notify(title, body, appIconPath); err != nil {
		s.logger.Warn("desktop notification failed", "error", err)
	}
}
