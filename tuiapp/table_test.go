package tuiapp

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

func TestTableFormat(t *testing.T) {
	tests := []struct {
		name                       string
		format                     tableFormat
		expectedFixedWidth         int
		expectedFillWidthCount     int
		expectedTotalRelativeWidth float32
	}{
		{
			name:                       "singleFixed",
			format:                     newTableFormat(columnFormat{fixed, 10.0}),
			expectedFixedWidth:         10,
			expectedFillWidthCount:     0,
			expectedTotalRelativeWidth: 0.0,
		},
		{
			name:                       "singleRelative",
			format:                     newTableFormat(columnFormat{relative, 0.254}),
			expectedFixedWidth:         0,
			expectedFillWidthCount:     0,
			expectedTotalRelativeWidth: 0.254,
		},
		{
			name:                       "singleFill",
			format:                     newTableFormat(columnFormat{fill, 0.0}),
			expectedFixedWidth:         0,
			expectedFillWidthCount:     1,
			expectedTotalRelativeWidth: 0.0,
		},
		{
			name: "fixedAndRelative",
			format: newTableFormat(
				columnFormat{fixed, 90},
				columnFormat{relative, 0.67},
			),
			expectedFixedWidth:         90,
			expectedFillWidthCount:     0,
			expectedTotalRelativeWidth: 0.67,
		},
		{
			name: "multiFill",
			format: newTableFormat(
				columnFormat{fill, 0},
				columnFormat{fixed, 90},
				columnFormat{fill, 0},
				columnFormat{relative, 0.67},
				columnFormat{fill, 0},
			),
			expectedFixedWidth:         90,
			expectedFillWidthCount:     3,
			expectedTotalRelativeWidth: 0.67,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.expectedFixedWidth != test.format.fixedWidth {
				t.Errorf(
					"Expected fixedWidth %d, got %d",
					test.expectedFixedWidth,
					test.format.fixedWidth)
			}

			if test.expectedFillWidthCount != test.format.fillWidthCount {
				t.Errorf(
					"Expected fillWidthCount %d, got %d",
					test.expectedFillWidthCount,
					test.format.fillWidthCount)
			}

			if test.expectedTotalRelativeWidth != test.format.totalRelativeWidth {
				t.Errorf(
					"Expected totalRelativeWidth %f, got %f",
					test.expectedTotalRelativeWidth,
					test.format.totalRelativeWidth)
			}
		})
	}
}

func TestResizeColumnMismatch(t *testing.T) {
	aft := newTrackedAircraftTable(table.DefaultStyles())
	aft.format = newTableFormat(columnFormat{fixed, 10.0})

	if err := aft.resize(80); err == nil {
		t.Error("resize() accepted a format with fewer columns than the table")
	}
}

func TestAlertRows(t *testing.T) {
	firedAt := time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)

	proximityRow := proximityAlertToRow(internal.ProximityAlert{
		Hex:          "A835AF",
		Owner:        "Falcon Landing LLC",
		TailNumber:   "N628TS",
		ClosestMiles: 2.4,
		Direction:    "NNE",
		FiredAt:      firedAt,
	})

	if proximityRow[0] != "14:30:05" {
		t.Errorf("time column = %q, want 14:30:05", proximityRow[0])
	}
	if proximityRow[1] != "proximity" {
		t.Errorf("kind column = %q, want proximity", proximityRow[1])
	}
	if proximityRow[2] != "A835AF" {
		t.Errorf("hex column = %q, want A835AF", proximityRow[2])
	}

	emergencyRow := emergencyAlertToRow(internal.EmergencyAlert{
		Hex:         "ABC123",
		Code:        internal.SquawkEmergency,
		Description: internal.SquawkDescription(internal.SquawkEmergency),
		FiredAt:     firedAt,
	})

	if emergencyRow[1] != "emergency" {
		t.Errorf("kind column = %q, want emergency", emergencyRow[1])
	}
	if emergencyRow[3] == "" {
		t.Error("detail column is empty")
	}
}
