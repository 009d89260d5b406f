package geo

import "math"

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371

// Distance returns the haversine great-circle distance between a and b in
// kilometers. Any non-finite coordinate yields NaN, never zero.
func Distance(a, b Point) float64 {
	if !finite(a.Latitude) || !finite(a.Longitude) || !finite(b.Latitude) || !finite(b.Longitude) {
		return math.NaN()
	}

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Known reports whether d is a usable distance.
func Known(d float64) bool {
	return !math.IsNaN(d)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
