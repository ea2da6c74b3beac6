package search

import (
	"github.com/home-harbor/api-go/models"
)

// TriState is the three-valued form of the raw offer/furnished/parking
// query parameters. The quirk inherited from the public search surface
// is that an explicit "false" means the same thing as leaving the
// parameter out entirely: no constraint. That equivalence is resolved
// once, in ParseTriState/BoolSet, and nowhere else.
type TriState int

const (
	TriUnset TriState = iota
	TriFalse
	TriTrue
)

// ParseTriState maps a raw query-string value onto a TriState.
// Anything that is not a literal "true" or "false" counts as unset.
func ParseTriState(s string) TriState {
	switch s {
	case "true":
		return TriTrue
	case "false":
		return TriFalse
	default:
		return TriUnset
	}
}

// BoolSet converts a TriState into the membership set the store
// matches against. Only an explicit "true" narrows the set; "false"
// and unset both match listings with the flag in either state.
func (t TriState) BoolSet() []bool {
	if t == TriTrue {
		return []bool{true}
	}
	return []bool{true, false}
}

// PriceColumn names the listing column a price alternative ranges over.
type PriceColumn string

const (
	ColumnRegularPrice  PriceColumn = "regular_price"
	ColumnDiscountPrice PriceColumn = "discount_price"
)

// PriceAlternative is one branch of the price clause disjunction.
// OfferEquals constrains the offer flag when non-nil, and
// DiscountAbsent additionally requires discount_price to be missing.
type PriceAlternative struct {
	OfferEquals    *bool
	DiscountAbsent bool
	Column         PriceColumn
}

// PriceClause is a bounded range matched against one of two price
// columns through three OR-composed alternatives:
//
//  1. offer listings, matched on their discount price
//  2. non-offer listings, matched on their regular price
//  3. offer listings with no discount price recorded, matched on
//     their regular price
//
// The third branch exists because older listings predate the discount
// price field; collapsing it into the first would silently drop them
// from every price-filtered search. A data migration backfilling
// discount_price would let this branch be deleted.
type PriceClause struct {
	Min          int
	Max          int
	Alternatives []PriceAlternative
}

// Visibility restricts which listings a caller may see. A nil
// Statuses slice means no status restriction; a non-nil OwnerID
// restricts to that owner's listings regardless of status.
type Visibility struct {
	Statuses []models.ListingStatus
	OwnerID  *uint
}

// GeoClause asks the store for listings within MaxDistanceMeters of
// Center, ordered nearest first.
type GeoClause struct {
	Center            models.GeoPoint
	MaxDistanceMeters float64
}

// Query is the storage-agnostic description of one listing search.
// It is built per request, executed once, and discarded.
type Query struct {
	Term       string
	Offer      []bool
	Furnished  []bool
	Parking    []bool
	Types      []models.ListingType
	Price      *PriceClause
	Visibility Visibility
	Geo        *GeoClause
	Sort       string
	Order      string
	Limit      int
	Offset     int
}
