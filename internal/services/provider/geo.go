package provider

import (
	"math"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
)

const (
	// DefaultRadius is the search radius in metres when none is given
	DefaultRadius = 1000
	// DetailZoomLevel is the map zoom from which results are no longer sorted by distance
	DetailZoomLevel = 12

	metresPerDegree = 111320.0
)

// EffectiveRadius shrinks the requested radius by 10% since targets are
// selected by bounding box rather than true distance.
func EffectiveRadius(radius int) int {
	return int(float64(radius) * 0.9)
}

// BoundingBox returns the box around center extending radius metres in each direction
func BoundingBox(center repository.Point, radius int) repository.GeoBox {
	dLat := float64(radius) / metresPerDegree

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	dLng := 180.0
	if cosLat > 1e-6 {
		dLng = math.Min(180, float64(radius)/(metresPerDegree*cosLat))
	}

	return repository.GeoBox{
		MinLat: math.Max(-90, center.Lat-dLat),
		MaxLat: math.Min(90, center.Lat+dLat),
		MinLng: math.Max(-180, center.Lng-dLng),
		MaxLng: math.Min(180, center.Lng+dLng),
	}
}
