// Package geo provides pure geometric helpers for route generation.
package geo

import (
	"math"

	"github.com/pawpath/routegen/internal/models"
)

// earthRadiusMeters is the mean radius of the Earth.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two points in
// meters, computed with the haversine formula on WGS84 coordinates.
func DistanceMeters(from, to models.Coordinates) float64 {
	latFrom := degToRad(from.Latitude)
	latTo := degToRad(to.Latitude)
	dLat := degToRad(to.Latitude - from.Latitude)
	dLng := degToRad(to.Longitude - from.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	haversin := sinLat*sinLat + math.Cos(latFrom)*math.Cos(latTo)*sinLng*sinLng

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(haversin))
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
