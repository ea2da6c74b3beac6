package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// GeoPoint is a (longitude, latitude) pair. Valid ranges are
// [-180, 180] for longitude and [-90, 90] for latitude; (0, 0) is
// treated as the "no location" sentinel throughout the service.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (p GeoPoint) IsZero() bool {
	return p.Longitude == 0 && p.Latitude == 0
}

type Listing struct {
	ID            uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Address       string         `json:"address" gorm:"not null"`
	Latitude      float64        `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude     float64        `json:"longitude" gorm:"type:decimal(11,8)"`
	RegularPrice  int            `json:"regularPrice" gorm:"not null"`
	DiscountPrice *int           `json:"discountPrice,omitempty"`
	Offer         bool           `json:"offer" gorm:"not null;default:false"`
	Type          ListingType    `json:"type" gorm:"type:varchar(8);not null"`
	Furnished     bool           `json:"furnished" gorm:"not null;default:false"`
	Parking       bool           `json:"parking" gorm:"not null;default:false"`
	Bedrooms      int            `json:"bedrooms" gorm:"default:1"`
	Bathrooms     int            `json:"bathrooms" gorm:"default:1"`
	ImageURLs     pq.StringArray `json:"imageUrls" gorm:"type:text[]"`
	Status        ListingStatus  `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	OwnerID       uint           `json:"ownerId" gorm:"not null;index"`
	Owner         User           `json:"-" gorm:"foreignKey:OwnerID"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	Distance      float64        `json:"distance,omitempty" gorm:"-"`
}

// Location returns the listing's coordinates as a GeoPoint. The
// point is recomputed by the geocoder whenever the address changes;
// listings that were never geocoded carry the (0, 0) sentinel.
func (l *Listing) Location() GeoPoint {
	return GeoPoint{Longitude: l.Longitude, Latitude: l.Latitude}
}

// Mappable reports whether the listing can be placed on the map.
// Sentinel (0, 0) coordinates mean the geocoder never ran, not a
// property in the Gulf of Guinea.
func (l *Listing) Mappable() bool {
	return !l.Location().IsZero()
}
