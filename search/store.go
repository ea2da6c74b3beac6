package search

import (
	"context"
	"fmt"

	"github.com/home-harbor/api-go/models"
	"gorm.io/gorm"
)

// haversine distance in meters, computed in SQL so the radius filter
// runs on the database side. Placeholders: center lat, center lng,
// center lat again.
const distanceExpr = "(6371000 * acos(cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))"

// sortColumns whitelists the sort keys the public surface accepts
// against real columns. Anything else falls back to created_at so a
// verbatim pass-through key can never reach the ORDER BY raw.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"created_at":    "created_at",
	"regularPrice":  "regular_price",
	"regular_price": "regular_price",
	"name":          "name",
	"bedrooms":      "bedrooms",
	"bathrooms":     "bathrooms",
}

// ListingStore executes listing queries against Postgres.
type ListingStore struct {
	DB *gorm.DB
}

func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{DB: db}
}

// Execute runs a Query and returns the matching listings. The query
// descriptor is consumed as-is; every defaulting decision has already
// been made by Build.
func (s *ListingStore) Execute(ctx context.Context, q Query) ([]models.Listing, error) {
	db := s.DB.WithContext(ctx).Model(&models.Listing{})

	if q.Term != "" {
		db = db.Where("name ILIKE ?", "%"+q.Term+"%")
	}

	// Membership filters only narrow when a single value survived the
	// tri-state conversion; a {true,false} set matches everything.
	if len(q.Offer) == 1 {
		db = db.Where("offer = ?", q.Offer[0])
	}
	if len(q.Furnished) == 1 {
		db = db.Where("furnished = ?", q.Furnished[0])
	}
	if len(q.Parking) == 1 {
		db = db.Where("parking = ?", q.Parking[0])
	}
	if len(q.Types) == 1 {
		db = db.Where("type = ?", q.Types[0])
	} else if len(q.Types) > 1 {
		db = db.Where("type IN ?", q.Types)
	}

	if q.Price != nil {
		db = db.Where(s.priceCondition(q.Price))
	}

	if q.Visibility.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.Visibility.OwnerID)
	}
	if q.Visibility.Statuses != nil {
		db = db.Where("status IN ?", q.Visibility.Statuses)
	}

	if q.Geo != nil {
		lat := q.Geo.Center.Latitude
		lng := q.Geo.Center.Longitude
		db = db.
			Select("*, "+distanceExpr+" AS distance", lat, lng, lat).
			Where(distanceExpr+" <= ?", lat, lng, lat, q.Geo.MaxDistanceMeters)
	}

	db = db.Order(orderClause(q.Sort, q.Order)).
		Offset(q.Offset).
		Limit(q.Limit)

	var listings []models.Listing
	if err := db.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// priceCondition renders the clause's alternatives as one
// parenthesised OR group.
func (s *ListingStore) priceCondition(clause *PriceClause) *gorm.DB {
	var cond *gorm.DB
	for _, alt := range clause.Alternatives {
		branch := s.alternativeCondition(alt, clause.Min, clause.Max)
		if cond == nil {
			cond = branch
		} else {
			cond = cond.Or(branch)
		}
	}
	return cond
}

func (s *ListingStore) alternativeCondition(alt PriceAlternative, min, max int) *gorm.DB {
	branch := s.DB.Where(fmt.Sprintf("%s BETWEEN ? AND ?", alt.Column), min, max)
	if alt.OfferEquals != nil {
		branch = branch.Where("offer = ?", *alt.OfferEquals)
	}
	if alt.DiscountAbsent {
		branch = branch.Where("discount_price IS NULL")
	}
	return branch
}

func orderClause(sort, order string) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return column + " " + order
}
