package internal

// Airport is one entry in the fixed reference table used by the landing
// suppression check.
type Airport struct {
	ICAO string
	IATA string
	Name string
	Lat  float64
	Lon  float64
}

// referenceAirports lists the major airports whose approach corridors are
// considered when deciding whether a 7600 squawk is a landing artifact.
// Coordinates are the published airport reference points.
var referenceAirports = []Airport{ //nolint:gochecknoglobals // static lookup table
	{"KJFK", "JFK", "John F. Kennedy International", 40.6413, -73.7781},
	{"KLGA", "LGA", "LaGuardia", 40.7769, -73.8740},
	{"KEWR", "EWR", "Newark Liberty International", 40.6895, -74.1745},
	{"KBOS", "BOS", "Boston Logan International", 42.3656, -71.0096},
	{"KDCA", "DCA", "Ronald Reagan Washington National", 38.8512, -77.0402},
	{"KIAD", "IAD", "Washington Dulles International", 38.9531, -77.4565},
	{"KATL", "ATL", "Hartsfield-Jackson Atlanta International", 33.6407, -84.4277},
	{"KCLT", "CLT", "Charlotte Douglas International", 35.2140, -80.9431},
	{"KRDU", "RDU", "Raleigh-Durham International", 35.8776, -78.7875},
	{"KGSO", "GSO", "Piedmont Triad International", 36.0978, -79.9373},
	{"KCAE", "CAE", "Columbia Metropolitan", 33.9388, -81.1195},
	{"KCHS", "CHS", "Charleston International", 32.8986, -80.0405},
	{"KORD", "ORD", "Chicago O'Hare International", 41.9742, -87.9073},
	{"KDFW", "DFW", "Dallas/Fort Worth International", 32.8998, -97.0403},
	{"KDEN", "DEN", "Denver International", 39.8561, -104.6737},
	{"KLAX", "LAX", "Los Angeles International", 33.9416, -118.4085},
	{"KSFO", "SFO", "San Francisco International", 37.6213, -122.3790},
	{"KSEA", "SEA", "Seattle-Tacoma International", 47.4502, -122.3088},
	{"KMIA", "MIA", "Miami International", 25.7959, -80.2870},
	{"KPHX", "PHX", "Phoenix Sky Harbor International", 33.4343, -112.0116},
	{"KIAH", "IAH", "George Bush Intercontinental", 29.9902, -95.3368},
}

// NearestAirport returns the closest reference airport to the given position
// and the distance to it in miles.
func NearestAirport(pos Coordinates) (Airport, float64) {
	var nearest Airport
	best := -1.0

	for _, airport := range referenceAirports {
		miles := Distance(pos, NewCoordinates(airport.Lat, airport.Lon)).Miles()
		if best < 0 || miles < best {
			best = miles
			nearest = airport
		}
	}

	return nearest, best
}
