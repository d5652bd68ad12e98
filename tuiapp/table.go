package tuiapp

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

// Error types

var errColumnMismatch = errors.New("number of columns does not match number of format columns")

// Automated Table Formatting

type tableColumnSizingOption int

const (
	// fixed column width, regardless of table width.
	fixed tableColumnSizingOption = iota
	// relative column with, given as percentage of the total table width.
	relative
	// fill columns receive any remaining table space, evenly distributed.
	fill
)

type columnFormat struct {
	option tableColumnSizingOption
	value  float32
}

type tableFormat struct {
	columnSizes        []columnFormat
	fixedWidth         int     // fixedWidth is the total space taken up by all fixed-width columns.
	fillWidthCount     int     // fillWidthCount indicates how many columns have fill width.
	totalRelativeWidth float32 // how much width is taken by relative columns.
}

func newTableFormat(items ...columnFormat) tableFormat {
	var totalRelativeWidth float32
	fixedWidth := 0
	fillWidthCount := 0

	for _, item := range items {
		switch item.option {
		case relative:
			totalRelativeWidth += item.value
			continue
		case fixed:
			fixedWidth += int(item.value)
			continue
		case fill:
			fillWidthCount++
			continue
		}
	}

	return tableFormat{
		columnSizes:        items,
		fixedWidth:         fixedWidth,
		fillWidthCount:     fillWidthCount,
		totalRelativeWidth: totalRelativeWidth,
	}
}

// Integrated Formatted Table Type

type autoFormatTable struct {
	table  table.Model
	format tableFormat
}

func (aft *autoFormatTable) resize(newWidth int) error {
	columnCount := len(aft.table.Columns())
	if columnCount != len(aft.format.columnSizes) {
		return fmt.Errorf(
			"table.resize: %w -> %d in table, %d in tableFormat",
			errColumnMismatch,
			columnCount,
			len(aft.format.columnSizes))
	}

	adjustedWidth := newWidth - 1 - columnCount
	aft.table.SetWidth(adjustedWidth)
	totalRelativeWidth := int(float32(adjustedWidth) * aft.format.totalRelativeWidth)
	totalFillWidth := adjustedWidth - totalRelativeWidth - aft.format.fixedWidth
	fillPerColumn := int(float32(totalFillWidth) / float32(aft.format.fillWidthCount))

	for idx := 0; idx < columnCount; idx++ {
		format := aft.format.columnSizes[idx]
		switch format.option {
		case fixed:
			aft.table.Columns()[idx].Width = int(format.value)
			continue
		case relative:
			aft.table.Columns()[idx].Width = int(format.value * float32(newWidth))
			continue
		case fill:
			aft.table.Columns()[idx].Width = fillPerColumn
			continue
		}
	}

	return nil
}

func (aft *autoFormatTable) SetHeight(height int) {
	aft.table.SetHeight(height)
}

func newTrackedAircraftTable(tableStyle table.Styles) autoFormatTable {
	hexLen := 7
	fnoLen := 10
	dstLen := 7
	altLen := 7
	initialTableHeight := 5
	format := newTableFormat(
		columnFormat{fixed, float32(hexLen)},
		columnFormat{fixed, float32(fnoLen)},
		columnFormat{fill, 0.0},
		columnFormat{fixed, float32(dstLen)},
		columnFormat{fixed, float32(altLen)},
		columnFormat{fixed, float32(dstLen)},
	)

	trackedTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "HEX", Width: hexLen},
				{Title: "FNO", Width: fnoLen},
				{Title: "OWNER", Width: 0},
				{Title: "DST", Width: dstLen},
				{Title: "ALT", Width: altLen},
				{Title: "AGE", Width: dstLen},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  trackedTbl,
		format: format,
	}
}

func newRecentAlertTable(tableStyle table.Styles) autoFormatTable {
	timeLen := 9
	kindLen := 11
	hexLen := 7
	initialTableHeight := 5
	format := newTableFormat(
		columnFormat{fixed, float32(timeLen)},
		columnFormat{fixed, float32(kindLen)},
		columnFormat{fixed, float32(hexLen)},
		columnFormat{fill, 0.0},
	)

	alertTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "TIME", Width: timeLen},
				{Title: "KIND", Width: kindLen},
				{Title: "HEX", Width: hexLen},
				{Title: "DETAIL", Width: 0},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  alertTbl,
		format: format,
	}
}

func trackedStateToRow(state internal.ProximityState, owner string, now time.Time) table.Row {
	return table.Row{
		state.Hex,
		state.Closest.Callsign(),
		owner,
		fmt.Sprintf("%5.1f", state.ClosestMiles),
		state.Closest.AltitudeString(),
		fmt.Sprintf("%4.0fs", now.Sub(state.TrackingStartedAt).Seconds()),
	}
}

func proximityAlertToRow(alert internal.ProximityAlert) table.Row {
	detail := fmt.Sprintf("%s (%s) %.1f mi %s", alert.Owner, alert.TailNumber, alert.ClosestMiles, alert.Direction)
	return table.Row{alert.FiredAt.Format("15:04:05"), "proximity", alert.Hex, detail}
}

func emergencyAlertToRow(alert internal.EmergencyAlert) table.Row {
	detail := fmt.Sprintf("squawk %s: %s", alert.Code, alert.Description)
	return table.Row{alert.FiredAt.Format("15:04:05"), "emergency", alert.Hex, detail}
}
