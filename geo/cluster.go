package geo

import (
	"math"

	"github.com/home-harbor/api-go/models"
)

const (
	// DefaultPixelRadius is the on-screen distance within which two
	// markers are considered overlapping.
	DefaultPixelRadius = 60.0

	// maxClusterZoom is the zoom level at and above which markers are
	// assumed visually separated and clustering is skipped outright.
	maxClusterZoom = 13
)

// Pixel is an on-screen coordinate produced by a Projector.
type Pixel struct {
	X float64
	Y float64
}

// Projector converts geographic coordinates to on-screen pixels for
// the current viewport. It is the only thing the clusterer needs from
// the map-rendering layer.
type Projector interface {
	Project(p models.GeoPoint, zoom int) Pixel
	CurrentZoom() int
}

// ClusterResult is what a marker click resolves to: one listing, or a
// group of listings that overlap it on screen.
type ClusterResult struct {
	Single *models.Listing  `json:"single,omitempty"`
	Center models.GeoPoint  `json:"center,omitempty"`
	Group  []models.Listing `json:"group,omitempty"`
}

func (r ClusterResult) IsGroup() bool {
	return len(r.Group) > 0
}

func single(l models.Listing) ClusterResult {
	return ClusterResult{Single: &l}
}

// ResolveClick decides whether the clicked marker should open alone or
// as a "nearby listings" group. Distances are measured in screen
// pixels at the given zoom, so the decision tracks what the user
// actually sees at any latitude.
//
// The scan is a single pass around the clicked marker: candidates are
// grouped by their distance to the click, not to each other. Two
// grouped listings can therefore be further apart than pixelRadius,
// and a listing near a grouped one but far from the click stays out.
// Listings without usable coordinates must not be in visible; they
// are skipped if they are.
func ResolveClick(clicked models.Listing, visible []models.Listing, projector Projector, zoom int, pixelRadius float64) ClusterResult {
	if zoom >= maxClusterZoom {
		return single(clicked)
	}
	if !clicked.Mappable() {
		return single(clicked)
	}

	origin := projector.Project(clicked.Location(), zoom)

	group := []models.Listing{clicked}
	for _, candidate := range visible {
		if candidate.ID == clicked.ID || !candidate.Mappable() {
			continue
		}
		if pixelDistance(origin, projector.Project(candidate.Location(), zoom)) <= pixelRadius {
			group = append(group, candidate)
		}
	}

	if len(group) > 1 {
		return ClusterResult{Center: clicked.Location(), Group: group}
	}
	return single(clicked)
}

// FilterMappable drops listings that cannot be placed on the map,
// leaving a visible set safe to hand to ResolveClick.
func FilterMappable(listings []models.Listing) []models.Listing {
	mappable := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Mappable() {
			mappable = append(mappable, l)
		}
	}
	return mappable
}

func pixelDistance(a, b Pixel) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
