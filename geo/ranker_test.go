package geo

import (
	"testing"

	"github.com/home-harbor/api-go/models"
)

func TestRankNearestOrdersByDistance(t *testing.T) {
	reference := models.Listing{ID: 1, Latitude: 23.0225, Longitude: 72.5714}

	candidates := []models.Listing{
		{ID: 4, Latitude: 23.0225, Longitude: 72.5714 + 0.30},
		{ID: 2, Latitude: 23.0225, Longitude: 72.5714 + 0.01},
		{ID: 3, Latitude: 23.0225, Longitude: 72.5714 + 0.10},
	}

	ranked := RankNearest(reference, candidates, 10)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked listings, got %d", len(ranked))
	}
	for i, wantID := range []uint{2, 3, 4} {
		if ranked[i].ID != wantID {
			t.Errorf("Position %d: expected listing %d, got %d", i, wantID, ranked[i].ID)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Errorf("Distances not ascending at position %d: %f < %f", i, ranked[i].Distance, ranked[i-1].Distance)
		}
	}
}

func TestRankNearestExcludesReferenceAndSentinels(t *testing.T) {
	reference := models.Listing{ID: 1, Latitude: 23.0225, Longitude: 72.5714}

	candidates := []models.Listing{
		reference, // the listing being viewed
		{ID: 2, Latitude: 0, Longitude: 0},
		{ID: 3, Latitude: 23.03, Longitude: 72.58},
	}

	ranked := RankNearest(reference, candidates, 10)

	if len(ranked) != 1 {
		t.Fatalf("Expected only the one valid neighbor, got %d", len(ranked))
	}
	if ranked[0].ID != 3 {
		t.Errorf("Expected listing 3, got %d", ranked[0].ID)
	}
}

func TestRankNearestTruncatesToTopN(t *testing.T) {
	reference := models.Listing{ID: 1, Latitude: 23.0225, Longitude: 72.5714}

	var candidates []models.Listing
	for i := uint(2); i <= 8; i++ {
		candidates = append(candidates, models.Listing{
			ID:        i,
			Latitude:  23.0225,
			Longitude: 72.5714 + float64(i)*0.01,
		})
	}

	ranked := RankNearest(reference, candidates, 3)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 listings, got %d", len(ranked))
	}
	if ranked[0].ID != 2 {
		t.Errorf("Expected the closest listing first, got %d", ranked[0].ID)
	}
}

func TestRankNearestFewerCandidatesThanTopN(t *testing.T) {
	reference := models.Listing{ID: 1, Latitude: 23.0225, Longitude: 72.5714}
	candidates := []models.Listing{
		{ID: 2, Latitude: 23.03, Longitude: 72.58},
	}

	ranked := RankNearest(reference, candidates, 5)

	if len(ranked) != 1 {
		t.Errorf("Expected all valid candidates when fewer than topN, got %d", len(ranked))
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Ahmedabad to Mumbai is roughly 440 km great-circle.
	ahmedabad := models.GeoPoint{Latitude: 23.0225, Longitude: 72.5714}
	mumbai := models.GeoPoint{Latitude: 19.0760, Longitude: 72.8777}

	d := Distance(ahmedabad, mumbai)

	if d < 430 || d > 450 {
		t.Errorf("Expected ~440 km, got %f", d)
	}

	if Distance(ahmedabad, ahmedabad) != 0 {
		t.Error("Distance from a point to itself must be zero")
	}
}
