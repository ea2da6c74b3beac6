package geo

import (
	"math"

	"github.com/home-harbor/api-go/models"
)

const earthRadiusKm = 6371.0

// Distance computes the great-circle distance between two points
// using the Haversine formula. Returns distance in kilometers.
func Distance(a, b models.GeoPoint) float64 {
	lat1Rad := degreesToRadians(a.Latitude)
	lat2Rad := degreesToRadians(b.Latitude)
	deltaLat := degreesToRadians(b.Latitude - a.Latitude)
	deltaLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
