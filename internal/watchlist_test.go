package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWatchlist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aircraft_list.json")

	content := []byte(`{
		"aircraft_to_detect": [
			{"icao": "a835af", "tail_number": "N628TS", "owner": "Falcon Landing LLC", "model": "Gulfstream G650ER"}
		]
	}`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	watchlist, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("LoadWatchlist() error = %v", err)
	}

	if watchlist.Len() != 1 {
		t.Errorf("Len() = %d, want 1", watchlist.Len())
	}

	// Lookup is case-insensitive in both directions.
	entry, found := watchlist.Lookup("A835AF")
	if !found {
		t.Fatal("Lookup() did not find an aircraft loaded with lower-case hex")
	}
	if entry.Owner != "Falcon Landing LLC" {
		t.Errorf("Owner = %q, want Falcon Landing LLC", entry.Owner)
	}

	if _, found := watchlist.Lookup("000000"); found {
		t.Error("Lookup() found an aircraft that is not on the list")
	}
}

func TestLoadWatchlistErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadWatchlist(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("LoadWatchlist() accepted a missing file")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		if err := os.WriteFile(path, []byte(`{"aircraft_to_detect": []}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadWatchlist(path); err == nil {
			t.Error("LoadWatchlist() accepted an empty watchlist")
		}
	})
}
