package geo

import (
	"math"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Point is a coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultLocation is used when neither a real nor a manually supplied
// location exists.
var DefaultLocation = Point{Latitude: 40.7128, Longitude: -74.0060}

// Distance returns the great-circle distance between two points in kilometers.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Nearest returns the charger minimizing great-circle distance from origin.
// Ties resolve to the first minimal element in list order. The second return
// value is false when the list is empty.
func Nearest(origin Point, chargers []models.Charger) (models.Charger, bool) {
	if len(chargers) == 0 {
		return models.Charger{}, false
	}

	best := 0
	bestDist := Distance(origin, Point{Latitude: chargers[0].Latitude, Longitude: chargers[0].Longitude})
	for i := 1; i < len(chargers); i++ {
		d := Distance(origin, Point{Latitude: chargers[i].Latitude, Longitude: chargers[i].Longitude})
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return chargers[best], true
}
