package tuiapp

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

// Model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the TUI app.
type model struct {
	width      int
	height     int
	baseStyle  lipgloss.Style
	viewStyle  lipgloss.Style
	theme      Theme
	trackedTbl autoFormatTable
	alertTbl   autoFormatTable
	tableStyle table.Styles

	source       internal.SnapshotSource
	monitor      *internal.Monitor
	alerts       *collectorSink
	watchlist    *internal.Watchlist
	pollInterval time.Duration
	lastUpdate   time.Time
	lastPoll     time.Time
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(updateTick(), pollCmd(m.source), pollTick(m.pollInterval))
}

// Update takes a tea.Msg as input and uses a type switch to handle different
// types of messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch thisMsg := msg.(type) {
	// message is sent when the window size changes
	// save to reflect the new dimensions of the terminal window.
	case tea.WindowSizeMsg:
		m.height = thisMsg.Height
		m.width = thisMsg.Width
		m.trackedTbl.resize(m.width)
		m.alertTbl.resize(m.width)
		tableHeight := max((m.height-8)/2, 5)
		m.trackedTbl.SetHeight(tableHeight)
		m.alertTbl.SetHeight(tableHeight)

	// message is sent when a key is pressed.
	case tea.KeyMsg:
		switch thisMsg.String() {
		// Toggles the focus state of the tracked aircraft table
		case "esc":
			if m.trackedTbl.table.Focused() {
				m.tableStyle.Selected = m.baseStyle
				m.trackedTbl.table.SetStyles(m.tableStyle)
				m.trackedTbl.table.Blur()
			} else {
				m.tableStyle.Selected = m.tableStyle.Selected.Background(m.theme.Highlight)
				m.trackedTbl.table.SetStyles(m.tableStyle)
				m.trackedTbl.table.Focus()
			}
		// Moves the focus up in the tracked aircraft table if the table is focused.
		case "up", "k":
			if m.trackedTbl.table.Focused() {
				m.trackedTbl.table.MoveUp(1)
			}
		// Moves the focus down in the tracked aircraft table if the table is focused.
		case "down", "j":
			if m.trackedTbl.table.Focused() {
				m.trackedTbl.table.MoveDown(1)
			}
		// Quits the program by returning the tea.Quit command.
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case UpdateTickMsg:
		m.lastUpdate = time.Time(thisMsg)
		return m, updateTick()
	case PollTickMsg:
		return m, tea.Batch(pollCmd(m.source), pollTick(m.pollInterval))
	case SnapshotsMsg:
		// Tracker state only ever changes here, on the event-loop goroutine.
		m.monitor.Process(thisMsg)
		m.lastPoll = time.Now()
		m.refreshTables()
		return m, nil // the next poll is already scheduled via PollTickMsg.
	}

	// If the message type does not match any of the handled cases, the model
	// is returned unchanged, and no new command is issued.
	return m, nil
}

func (m *model) refreshTables() {
	now := time.Now()

	var trackedRows []table.Row
	for _, state := range m.monitor.Proximity().ActiveStates() {
		owner := ""
		if entry, ok := m.watchlist.Lookup(state.Hex); ok {
			owner = entry.Owner
		}
		trackedRows = append(trackedRows, trackedStateToRow(state, owner, now))
	}
	m.trackedTbl.table.SetRows(trackedRows)

	proximity, emergency := m.alerts.Recent()
	var alertRows []table.Row
	for _, alert := range proximity {
		alertRows = append(alertRows, proximityAlertToRow(alert))
	}
	for _, alert := range emergency {
		alertRows = append(alertRows, emergencyAlertToRow(alert))
	}
	// Newest alerts first, across both kinds.
	sort.SliceStable(alertRows, func(i, j int) bool {
		return alertRows[i][0] > alertRows[j][0]
	})
	m.alertTbl.table.SetRows(alertRows)
}

func (m *model) View() string {
	// Sets the width of the column to the width of the terminal (m.width) and
	// adds padding of 1 unit on the top.
	column := m.baseStyle.Width(m.width).Padding(1, 0, 0, 0).Render
	content := m.baseStyle.
		Width(m.width).
		Height(m.height).
		Render(
			// Vertically join multiple elements aligned to the left.
			lipgloss.JoinVertical(lipgloss.Left,
				column(m.viewHeader()),
				column(m.viewTracked()),
				column(m.viewAlerts()),
			),
		)

	return content
}

// Displays the poll status line and the emergency watch summary.
func (m *model) viewHeader() string {
	listHeader := m.baseStyle.Bold(true).Render

	status := fmt.Sprintf("Last poll: %.0f seconds ago | polls: %d | watched aircraft: %d",
		time.Since(m.lastPoll).Seconds(), m.monitor.PollCount(), m.watchlist.Len())

	emergencies := m.monitor.Emergency().ActiveStates()
	watch := "none"
	if len(emergencies) > 0 {
		watch = ""
		for idx, state := range emergencies {
			if idx > 0 {
				watch += ", "
			}
			watch += fmt.Sprintf("%s squawking %s (%d polls)", state.Hex, state.Code, state.PollCount)
		}
	}

	return m.viewStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			status,
			listHeader("Emergency watch: ")+watch,
		),
	)
}

func (m *model) viewTracked() string {
	return m.viewStyle.Render(m.trackedTbl.table.View())
}

func (m *model) viewAlerts() string {
	return m.viewStyle.Render(m.alertTbl.table.View())
}
