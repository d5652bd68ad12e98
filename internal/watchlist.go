package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var errEmptyWatchlist = errors.New("watchlist contains no aircraft")

// WatchEntry describes one aircraft on the tracking list. The fields mirror
// the aircraft_list.json format.
type WatchEntry struct {
	ICAO        string `json:"icao"`
	TailNumber  string `json:"tail_number"`
	Owner       string `json:"owner"`
	Model       string `json:"model"`
	Description string `json:"description"`
}

// Watchlist is the static table of tracked aircraft, keyed by upper-cased
// ICAO hex. Immutable for the process lifetime.
type Watchlist struct {
	entries map[string]WatchEntry
}

// watchlistFile mirrors the on-disk JSON structure.
type watchlistFile struct {
	AircraftToDetect []WatchEntry `json:"aircraft_to_detect"`
}

// NewWatchlist builds a watchlist from entries, normalizing hex codes to
// upper case.
func NewWatchlist(entries []WatchEntry) *Watchlist {
	table := make(map[string]WatchEntry, len(entries))
	for _, entry := range entries {
		table[strings.ToUpper(strings.TrimSpace(entry.ICAO))] = entry
	}

	return &Watchlist{entries: table}
}

// LoadWatchlist reads the tracked aircraft list from path.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadWatchlist: read %s: %w", path, err)
	}

	var file watchlistFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loadWatchlist: parse %s: %w", path, err)
	}

	if len(file.AircraftToDetect) == 0 {
		return nil, fmt.Errorf("loadWatchlist: %s: %w", path, errEmptyWatchlist)
	}

	return NewWatchlist(file.AircraftToDetect), nil
}

// Lookup returns the watch entry for a hex code, if the aircraft is tracked.
func (w *Watchlist) Lookup(hex string) (WatchEntry, bool) {
	entry, found := w.entries[strings.ToUpper(strings.TrimSpace(hex))]
	return entry, found
}

// Len returns the number of tracked aircraft.
func (w *Watchlist) Len() int {
	return len(w.entries)
}
