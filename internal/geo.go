package internal

import (
	"math"
)

// Inspired by https://github.com/LucaTheHacker/go-haversine

const (
	earthRadiusKilometers    float64 = 6371 // Radius of Earth in kilometers
	earthRadiusMiles         float64 = 3958 // Radius of Earth in miles
	earthRadiusNauticalMiles float64 = 3443 // Radius of Earth in nautical miles
)

// Coordinates is a lat/lon pair in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinates returns a Coordinates struct based on parameters passed.
func NewCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coordinates) toRadians() Coordinates {
	return Coordinates{
		Latitude:  toRadians(c.Latitude),
		Longitude: toRadians(c.Longitude),
	}
}

// DistanceStruct wraps the central angle between two coordinates.
type DistanceStruct struct {
	C float64 // Must be multiplied to obtain distance. Public in order to allow unexpected calculations.
}

func newDistanceStruct(distance float64) DistanceStruct {
	return DistanceStruct{C: distance}
}

func (d DistanceStruct) Kilometers() float64 {
	return d.C * earthRadiusKilometers
}

func (d DistanceStruct) Miles() float64 {
	return d.C * earthRadiusMiles
}

func (d DistanceStruct) NauticalMiles() float64 {
	return d.C * earthRadiusNauticalMiles
}

// Distance calculates distance using the haversine formula.
//
//nolint:mnd // readability of mathematic formula
func Distance(p, q Coordinates) DistanceStruct {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLat := toPos.Latitude - fromPos.Latitude
	deltaLon := toPos.Longitude - fromPos.Longitude

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromPos.Latitude)*
			math.Cos(toPos.Latitude)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return newDistanceStruct(c)
}

// toRadians converts degrees to radians.
func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0 //nolint:mnd // readability
}

// toDegrees converts radians to degrees.
func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Bearing calculates the initial bearing (forward azimuth) from point p to point q.
func Bearing(p, q Coordinates) float64 {
	fLat := toRadians(p.Latitude)
	fLong := toRadians(p.Longitude)
	tLat := toRadians(q.Latitude)
	tLong := toRadians(q.Longitude)

	dLon := tLong - fLong

	y := math.Sin(dLon) * math.Cos(tLat)
	x := math.Cos(fLat)*math.Sin(tLat) - math.Sin(fLat)*math.Cos(tLat)*math.Cos(dLon)

	brng := math.Atan2(y, x)

	// Normalize the bearing to a value between 0 and 360 degrees.
	// The result from Atan2 ranges from -180 to +180.
	return math.Mod(toDegrees(brng)+360.0, 360.0) //nolint:mnd // readability
}

var compassPoints = []string{ //nolint:gochecknoglobals // static lookup table
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassDirection converts a heading in degrees into a 16-wind compass label.
func CompassDirection(bearing float64) string {
	normalized := math.Mod(math.Mod(bearing, 360.0)+360.0, 360.0)

	step := 360.0 / float64(len(compassPoints))
	idx := int(math.Floor(normalized/step + 0.5))

	return compassPoints[idx%len(compassPoints)]
}
