package geo

import (
	"sort"

	"github.com/home-harbor/api-go/models"
)

// RankNearest orders candidates by great-circle distance to the
// reference listing and returns the closest topN, nearest first. The
// reference itself and any candidate without usable coordinates are
// left out; ties keep their input order. Fewer than topN valid
// candidates just means a shorter result.
func RankNearest(reference models.Listing, candidates []models.Listing, topN int) []models.Listing {
	origin := reference.Location()

	ranked := make([]models.Listing, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == reference.ID || !candidate.Mappable() {
			continue
		}
		candidate.Distance = Distance(origin, candidate.Location())
		ranked = append(ranked, candidate)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
