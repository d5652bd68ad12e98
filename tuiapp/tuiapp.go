// Package tuiapp provides the TUI app which displays live monitoring state,
// updates continuously and can be interacted with.
// Layout idea:
// +-------------------------------------------------+
// | last poll: 00:00:00   polls: N   watched: M     |
// | Emergency watch: <hex> squawking 7700 (2 polls) |
// |  _____________________________________________  |
// | | tracked aircraft table                      | |
// | | entry 0 ...                                 | |
// |  ---------------------------------------------  |
// |  _____________________________________________  |
// | | recent alerts table                         | |
// | | entry 0 ...                                 | |
// |  ---------------------------------------------  |
// +-------------------------------------------------+
// .
package tuiapp

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Green     lipgloss.AdaptiveColor
	Red       lipgloss.AdaptiveColor
}

var Color = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
	Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
	Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},
	Green:     lipgloss.AdaptiveColor{Light: "#00FF00", Dark: "#00FF00"},
	Red:       lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"},
}

func Run(appName string, cfg internal.Config, watchlist *internal.Watchlist) error {
	// Log lines would corrupt the alternate screen, so the TUI drops them.
	logger := internal.NewDiscardLogger()

	alerts := &collectorSink{}
	sinks := internal.FanoutSink{alerts}
	if cfg.Alerts.Desktop {
		sinks = append(sinks, internal.NewDesktopSink(appName, logger))
	}

	clock := internal.SystemClock()

	proximity := internal.NewProximityTracker(
		cfg.HomeCoordinates(),
		watchlist,
		sinks,
		clock,
		cfg.ProximityTimeout(),
		cfg.ProximityCooldown(),
		logger)

	emergency := internal.NewEmergencyVerifier(
		sinks,
		clock,
		cfg.Monitoring.EmergencySustainPolls,
		cfg.EmergencyStaleTimeout(),
		cfg.PollInterval(),
		cfg.SuppressionThresholds(),
		logger)

	source := internal.NewHTTPSource(cfg.Monitoring.PlanesURL, clock)
	monitor := internal.NewMonitor(source, proximity, emergency, clock, cfg.PollInterval(), logger)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = lipgloss.NewStyle().Background(Color.Highlight)

	m := model{
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
		pollInterval: cfg.PollInterval(),
	}

	// Create a new Bubble Tea program with the model and enable alternate screen
	program := tea.NewProgram(&m, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		slog.Error("tui error", slog.Any("error", err))
		return fmt.Errorf("tuiapp: %w", err)
	}

	return nil
}
