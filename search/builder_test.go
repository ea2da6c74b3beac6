package search

import (
	"math"
	"reflect"
	"testing"

	"github.com/home-harbor/api-go/models"
)

func TestTriStateBoolSet(t *testing.T) {
	cases := []struct {
		raw  string
		want []bool
	}{
		{"", []bool{true, false}},
		{"false", []bool{true, false}},
		{"true", []bool{true}},
		{"garbage", []bool{true, false}},
	}

	for _, tc := range cases {
		got := ParseTriState(tc.raw).BoolSet()
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseTriState(%q).BoolSet() = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestBuildDefaults(t *testing.T) {
	q := Build(Params{}, Caller{})

	if q.Limit != 9 {
		t.Errorf("Expected default limit 9, got %d", q.Limit)
	}
	if q.Offset != 0 {
		t.Errorf("Expected default offset 0, got %d", q.Offset)
	}
	if q.Sort != "createdAt" || q.Order != "desc" {
		t.Errorf("Expected default sort createdAt desc, got %s %s", q.Sort, q.Order)
	}
	if q.Price != nil {
		t.Error("Expected no price clause when min and max are unset")
	}
	if q.Geo != nil {
		t.Error("Expected no geo clause when coordinates are unset")
	}
	if !reflect.DeepEqual(q.Types, []models.ListingType{models.ListingSale, models.ListingRent}) {
		t.Errorf("Expected both listing types by default, got %v", q.Types)
	}
}

func TestBuildMalformedNumbersFallBack(t *testing.T) {
	q := Build(Params{Limit: "abc", StartIndex: "-", MinPrice: "x", MaxPrice: "y"}, Caller{})

	if q.Limit != 9 || q.Offset != 0 {
		t.Errorf("Expected limit 9 offset 0, got %d %d", q.Limit, q.Offset)
	}
	if q.Price != nil {
		t.Error("Expected malformed prices to resolve to unset, not a clause")
	}
}

func TestBuildTypeFilter(t *testing.T) {
	all := Build(Params{Type: "all"}, Caller{})
	if len(all.Types) != 2 {
		t.Errorf("Expected type=all to match both types, got %v", all.Types)
	}

	rent := Build(Params{Type: "rent"}, Caller{})
	if !reflect.DeepEqual(rent.Types, []models.ListingType{models.ListingRent}) {
		t.Errorf("Expected type=rent only, got %v", rent.Types)
	}
}

func TestBuildPriceClauseShape(t *testing.T) {
	q := Build(Params{MinPrice: "400", MaxPrice: "600"}, Caller{})

	if q.Price == nil {
		t.Fatal("Expected a price clause")
	}
	if q.Price.Min != 400 || q.Price.Max != 600 {
		t.Errorf("Expected range [400,600], got [%d,%d]", q.Price.Min, q.Price.Max)
	}
	if len(q.Price.Alternatives) != 3 {
		t.Fatalf("Expected 3 alternatives, got %d", len(q.Price.Alternatives))
	}

	first := q.Price.Alternatives[0]
	if first.Column != ColumnDiscountPrice || first.OfferEquals == nil || !*first.OfferEquals {
		t.Errorf("Expected first branch to range discount_price for offers, got %+v", first)
	}
	second := q.Price.Alternatives[1]
	if second.Column != ColumnRegularPrice || second.OfferEquals == nil || *second.OfferEquals {
		t.Errorf("Expected second branch to range regular_price for non-offers, got %+v", second)
	}
	third := q.Price.Alternatives[2]
	if third.Column != ColumnRegularPrice || !third.DiscountAbsent || third.OfferEquals == nil || !*third.OfferEquals {
		t.Errorf("Expected third branch to fall back to regular_price for offers without a discount, got %+v", third)
	}
}

func TestBuildPriceClauseOnlyMin(t *testing.T) {
	q := Build(Params{MinPrice: "100"}, Caller{})
	if q.Price == nil {
		t.Fatal("Expected a price clause when only minPrice is set")
	}
	if q.Price.Max != math.MaxInt {
		t.Errorf("Expected max to default to MaxInt, got %d", q.Price.Max)
	}
}

// matchesPrice evaluates the clause the way the store renders it, so
// the fallback semantics encoded in the descriptor can be checked
// without a database.
func matchesPrice(clause *PriceClause, l models.Listing) bool {
	for _, alt := range clause.Alternatives {
		if alt.OfferEquals != nil && l.Offer != *alt.OfferEquals {
			continue
		}
		if alt.DiscountAbsent && l.DiscountPrice != nil {
			continue
		}
		var value int
		switch alt.Column {
		case ColumnDiscountPrice:
			if l.DiscountPrice == nil {
				continue
			}
			value = *l.DiscountPrice
		case ColumnRegularPrice:
			value = l.RegularPrice
		}
		if value >= clause.Min && value <= clause.Max {
			return true
		}
	}
	return false
}

func TestPriceFallbackSemantics(t *testing.T) {
	discount := 500
	offerListing := models.Listing{Offer: true, DiscountPrice: &discount, RegularPrice: 1000}
	legacyOffer := models.Listing{Offer: true, RegularPrice: 1000}
	plain := models.Listing{RegularPrice: 1000}

	narrow := Build(Params{MinPrice: "400", MaxPrice: "600"}, Caller{}).Price
	wide := Build(Params{MinPrice: "900", MaxPrice: "1100"}, Caller{}).Price

	if !matchesPrice(narrow, offerListing) {
		t.Error("Offer listing with discount 500 should match [400,600]")
	}
	if matchesPrice(wide, offerListing) {
		t.Error("Offer listing with discount 500 should not match [900,1100] via its regular price")
	}
	if !matchesPrice(wide, legacyOffer) {
		t.Error("Offer listing without a discount price should match [900,1100] via regular price fallback")
	}
	if !matchesPrice(wide, plain) {
		t.Error("Non-offer listing should match [900,1100] via regular price")
	}
}

func TestVisibilityPrecedence(t *testing.T) {
	approvedOnly := []models.ListingStatus{models.StatusApproved}

	anonymous := Build(Params{ShowAll: "true"}, Caller{})
	if !reflect.DeepEqual(anonymous.Visibility.Statuses, approvedOnly) || anonymous.Visibility.OwnerID != nil {
		t.Errorf("Anonymous showAll must stay approved-only, got %+v", anonymous.Visibility)
	}

	buyer := Build(Params{ShowAll: "true"}, Caller{UserID: 7, Role: models.RoleBuyer})
	if !reflect.DeepEqual(buyer.Visibility.Statuses, approvedOnly) {
		t.Errorf("Buyer showAll must stay approved-only, got %+v", buyer.Visibility)
	}

	owner := Build(Params{ShowAll: "true"}, Caller{UserID: 7, Role: models.RoleOwner})
	if owner.Visibility.OwnerID == nil || *owner.Visibility.OwnerID != 7 {
		t.Errorf("Owner showAll must restrict to own listings, got %+v", owner.Visibility)
	}
	if owner.Visibility.Statuses != nil {
		t.Errorf("Owner showAll must include every status of their own listings, got %+v", owner.Visibility)
	}

	admin := Build(Params{ShowAll: "true"}, Caller{UserID: 1, Role: models.RoleAdmin})
	if admin.Visibility.Statuses != nil || admin.Visibility.OwnerID != nil {
		t.Errorf("Admin showAll must lift all restrictions, got %+v", admin.Visibility)
	}

	ownerNoFlag := Build(Params{}, Caller{UserID: 7, Role: models.RoleOwner})
	if !reflect.DeepEqual(ownerNoFlag.Visibility.Statuses, approvedOnly) {
		t.Errorf("Without showAll even owners see approved listings only, got %+v", ownerNoFlag.Visibility)
	}
}

func TestGeoClause(t *testing.T) {
	q := Build(Params{Lat: "23.0225", Lng: "72.5714", RadiusKm: "5"}, Caller{})
	if q.Geo == nil {
		t.Fatal("Expected a geo clause when lat, lng and radius all parse")
	}
	if q.Geo.MaxDistanceMeters != 5000 {
		t.Errorf("Expected radius converted to 5000 meters, got %f", q.Geo.MaxDistanceMeters)
	}
	if q.Geo.Center.Latitude != 23.0225 || q.Geo.Center.Longitude != 72.5714 {
		t.Errorf("Unexpected geo center %+v", q.Geo.Center)
	}

	partial := Build(Params{Lat: "23.0225", Lng: "72.5714"}, Caller{})
	if partial.Geo != nil {
		t.Error("Expected no geo clause when radius is missing")
	}

	malformed := Build(Params{Lat: "23.0225", Lng: "east", RadiusKm: "5"}, Caller{})
	if malformed.Geo != nil {
		t.Error("Expected no geo clause when a coordinate fails to parse")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	params := Params{
		SearchTerm: "villa",
		Type:       "sale",
		Offer:      "true",
		MinPrice:   "100",
		MaxPrice:   "900",
		Lat:        "23.0225",
		Lng:        "72.5714",
		RadiusKm:   "10",
		ShowAll:    "true",
	}
	caller := Caller{UserID: 3, Role: models.RoleOwner}

	first := Build(params, caller)
	second := Build(params, caller)

	if !reflect.DeepEqual(first, second) {
		t.Error("Build must produce identical queries for identical inputs")
	}
}
