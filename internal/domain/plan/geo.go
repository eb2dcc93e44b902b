package plan

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6_371_000.0

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DetourRatio returns the ratio of origin→via→destination distance to the
// direct origin→destination distance. A ratio of 1.0 means the via point lies
// exactly on the great-circle path.
func DetourRatio(origin, via, destination Coordinates) float64 {
	direct := HaversineMeters(origin, destination)
	if direct == 0 {
		return math.Inf(1)
	}
	return (HaversineMeters(origin, via) + HaversineMeters(via, destination)) / direct
}
