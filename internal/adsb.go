package internal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// See https://github.com/SDRplay/dump1090/blob/master/README-json.md
// for further explanations of the fields.

// snapshotResult mirrors the JSON served by dump1090 as aircraft.json.
type snapshotResult struct {
	Now      float64          `json:"now"`      // time this file was generated, unix seconds
	Messages int              `json:"messages"` // total Mode-S messages processed
	Aircraft []AircraftRecord `json:"aircraft"` // list of currently visible aircraft
}

// AircraftRecord is one aircraft entry from a dump1090 snapshot. Optional
// fields use pointers so that absence can be told apart from a zero value;
// alt_baro is untyped because dump1090 reports the string "ground" for
// aircraft on the surface.
type AircraftRecord struct {
	Hex         string   `json:"hex"`       // hex code ID for aircraft, assumed to be unique
	Flight      string   `json:"flight"`    // callsign / flight number
	AltBaro     any      `json:"alt_baro"`  // altitude in [feet] or string "ground"
	GroundSpeed *float64 `json:"gs"`        // ground speed in [knots]
	Track       *float64 `json:"track"`     // true track over ground in degrees (0-359)
	BaroRate    *float64 `json:"baro_rate"` // rate of change of baro alt in [feet/minute]
	Squawk      string   `json:"squawk"`    // Mode A code encoded as 4 octal digits
	Lat         *float64 `json:"lat"`       // latitude in [decimal degrees]
	Lon         *float64 `json:"lon"`       // longitude in [decimal degrees]
	Category    string   `json:"category"`  // emitter category (A0-D7)
	Seen        float64  `json:"seen"`      // last message received, [seconds] before 'now'
	Rssi        float64  `json:"rssi"`      // recent average signal power in [dbFS]
}

// Snapshot is the normalized per-poll view of one aircraft that the trackers
// consume. Hex is upper-cased; ObservedAt is the poll time.
type Snapshot struct {
	Hex        string
	ObservedAt time.Time
	Record     AircraftRecord
}

// Callsign returns the trimmed flight number, or empty if not transmitted.
func (s Snapshot) Callsign() string {
	return strings.TrimSpace(s.Record.Flight)
}

// Altitude returns the barometric altitude in feet. Aircraft on the ground
// report zero.
func (s Snapshot) Altitude() (float64, bool) {
	if num, numOk := s.Record.AltBaro.(float64); numOk {
		return num, true
	}

	if str, strOk := s.Record.AltBaro.(string); strOk && str == "ground" {
		return 0, true
	}

	return 0, false
}

// AltitudeString formats the altitude for display, falling back to "n/a"
// when the aircraft did not transmit one.
func (s Snapshot) AltitudeString() string {
	if num, numOk := s.Record.AltBaro.(float64); numOk {
		return fmt.Sprintf("%5.0f", num)
	}

	if str, strOk := s.Record.AltBaro.(string); strOk {
		return str
	}

	return "  n/a"
}

// Position returns the reported coordinates, if the aircraft transmitted any.
func (s Snapshot) Position() (Coordinates, bool) {
	if s.Record.Lat == nil || s.Record.Lon == nil {
		return Coordinates{}, false
	}

	return NewCoordinates(*s.Record.Lat, *s.Record.Lon), true
}

// Speed returns the reported ground speed in knots.
func (s Snapshot) Speed() (float64, bool) {
	if s.Record.GroundSpeed == nil {
		return 0, false
	}

	return *s.Record.GroundSpeed, true
}

// VerticalRate returns the barometric climb/descent rate in feet per minute.
// Negative values mean the aircraft is descending.
func (s Snapshot) VerticalRate() (float64, bool) {
	if s.Record.BaroRate == nil {
		return 0, false
	}

	return *s.Record.BaroRate, true
}

// Squawk returns the transponder code, or empty if none was reported.
func (s Snapshot) Squawk() string {
	return strings.TrimSpace(s.Record.Squawk)
}

// DecodeSnapshots parses a dump1090 aircraft.json body into normalized
// snapshots. Entries without a hex identifier are dropped. If the same hex
// appears more than once in a poll the last entry wins.
func DecodeSnapshots(body []byte, observedAt time.Time) ([]Snapshot, error) {
	var result snapshotResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decodeSnapshots: failed to unmarshal aircraft JSON: %w", err)
	}

	snapshots := make([]Snapshot, 0, len(result.Aircraft))
	position := make(map[string]int, len(result.Aircraft))

	for i := range result.Aircraft {
		record := result.Aircraft[i]

		hex := strings.ToUpper(strings.TrimSpace(record.Hex))
		if hex == "" {
			continue
		}

		snapshot := Snapshot{
			Hex:        hex,
			ObservedAt: observedAt,
			Record:     record,
		}

		if idx, exists := position[hex]; exists {
			snapshots[idx] = snapshot
			continue
		}

		position[hex] = len(snapshots)
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
