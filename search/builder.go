package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/home-harbor/api-go/models"
)

// Defaults applied when the corresponding parameter is missing or
// unparseable.
const (
	DefaultLimit = 9
	DefaultSort  = "createdAt"
	DefaultOrder = "desc"
)

// Params carries the raw, optional, stringly-typed search parameters
// exactly as they arrive on the query string. Every field may be
// empty; Build resolves each one to a documented default.
type Params struct {
	SearchTerm string
	Type       string
	Offer      string
	Furnished  string
	Parking    string
	MinPrice   string
	MaxPrice   string
	Sort       string
	Order      string
	Limit      string
	StartIndex string
	Lat        string
	Lng        string
	RadiusKm   string
	ShowAll    string
}

// Caller identifies who is searching. The zero value is an anonymous
// caller and gets the most restrictive visibility.
type Caller struct {
	UserID uint
	Role   models.Role
}

// Build turns raw parameters plus the caller's identity into a Query.
// It is pure and total: malformed optional input falls back to the
// defaults above instead of failing, so two calls with the same
// arguments always produce the same Query.
func Build(params Params, caller Caller) Query {
	q := Query{
		Term:      strings.TrimSpace(params.SearchTerm),
		Offer:     ParseTriState(params.Offer).BoolSet(),
		Furnished: ParseTriState(params.Furnished).BoolSet(),
		Parking:   ParseTriState(params.Parking).BoolSet(),
		Types:     typeSet(params.Type),
		Sort:      defaultString(params.Sort, DefaultSort),
		Order:     defaultString(params.Order, DefaultOrder),
		Limit:     parseIntDefault(params.Limit, DefaultLimit),
		Offset:    parseIntDefault(params.StartIndex, 0),
	}

	minPrice := parseIntDefault(params.MinPrice, 0)
	maxPrice := parseIntDefault(params.MaxPrice, math.MaxInt)
	if minPrice > 0 || maxPrice < math.MaxInt {
		q.Price = priceClause(minPrice, maxPrice)
	}

	q.Visibility = visibility(params.ShowAll, caller)

	if geo, ok := geoClause(params.Lat, params.Lng, params.RadiusKm); ok {
		q.Geo = &geo
	}

	return q
}

// priceClause builds the three-branch fallback over the two price
// columns. See PriceClause for why there are three.
func priceClause(min, max int) *PriceClause {
	offer := true
	noOffer := false
	return &PriceClause{
		Min: min,
		Max: max,
		Alternatives: []PriceAlternative{
			{OfferEquals: &offer, Column: ColumnDiscountPrice},
			{OfferEquals: &noOffer, Column: ColumnRegularPrice},
			{OfferEquals: &offer, DiscountAbsent: true, Column: ColumnRegularPrice},
		},
	}
}

// visibility resolves who may see what. showAll is honored only for
// callers whose role actually grants wider visibility; everyone else,
// including anonymous callers and unknown roles, sees approved
// listings only.
func visibility(showAll string, caller Caller) Visibility {
	if parseBoolDefault(showAll, false) {
		switch caller.Role {
		case models.RoleAdmin:
			return Visibility{}
		case models.RoleOwner:
			owner := caller.UserID
			return Visibility{OwnerID: &owner}
		}
	}
	return Visibility{Statuses: []models.ListingStatus{models.StatusApproved}}
}

// geoClause is added only when all three coordinates parse; a partial
// location is treated as no location at all. The radius arrives in
// kilometers and the store works in meters.
func geoClause(lat, lng, radiusKm string) (GeoClause, bool) {
	latitude, err1 := strconv.ParseFloat(lat, 64)
	longitude, err2 := strconv.ParseFloat(lng, 64)
	radius, err3 := strconv.ParseFloat(radiusKm, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return GeoClause{}, false
	}
	return GeoClause{
		Center:            models.GeoPoint{Longitude: longitude, Latitude: latitude},
		MaxDistanceMeters: radius * 1000,
	}, true
}

func typeSet(t string) []models.ListingType {
	if t == "" || t == "all" {
		return []models.ListingType{models.ListingSale, models.ListingRent}
	}
	return []models.ListingType{models.ListingType(t)}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Helper functions for parsing query parameters
func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return val
}

func parseBoolDefault(s string, fallback bool) bool {
	if s == "" {
		return fallback
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return val
}
