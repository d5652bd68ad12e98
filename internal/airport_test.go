package internal

import "testing"

func TestNearestAirport(t *testing.T) {
	tests := []struct {
		name     string
		pos      Coordinates
		expected string
	}{
		{
			name:     "on top of JFK",
			pos:      NewCoordinates(40.6413, -73.7781),
			expected: "KJFK",
		},
		{
			name:     "downtown Charlotte",
			pos:      NewCoordinates(35.2271, -80.8431),
			expected: "KCLT",
		},
		{
			name:     "Pacific off California",
			pos:      NewCoordinates(33.0, -120.0),
			expected: "KLAX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			airport, miles := NearestAirport(tt.pos)
			if airport.ICAO != tt.expected {
				t.Errorf("NearestAirport() = %s (%.1f mi), want %s", airport.ICAO, miles, tt.expected)
			}
			if miles < 0 {
				t.Errorf("NearestAirport() distance = %v, want non-negative", miles)
			}
		})
	}
}
