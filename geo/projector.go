package geo

import (
	"math"

	"github.com/home-harbor/api-go/models"
)

// WebMercator projects lng/lat onto the standard slippy-map pixel
// plane: world coordinates in [0,1] scaled by tile extent and 2^zoom.
// It is the projector used when marker clicks are resolved on the
// server rather than against a live map object.
type WebMercator struct {
	// Extent is the tile size in pixels. Zero means 256.
	Extent int
	// Zoom reported by CurrentZoom.
	Zoom int
}

func (m WebMercator) extent() float64 {
	if m.Extent <= 0 {
		return 256
	}
	return float64(m.Extent)
}

func (m WebMercator) Project(p models.GeoPoint, zoom int) Pixel {
	sin := math.Sin(degreesToRadians(p.Latitude))
	x := (p.Longitude + 180) / 360
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi

	scale := math.Pow(2, float64(zoom))
	return Pixel{
		X: x * scale * m.extent(),
		Y: y * scale * m.extent(),
	}
}

func (m WebMercator) CurrentZoom() int {
	return m.Zoom
}
