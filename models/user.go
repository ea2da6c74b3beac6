package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleBuyer Role = "buyer"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Avatar    string         `json:"avatar"`
	Role      Role           `gorm:"type:varchar(16);not null;default:buyer" json:"role"`
	Listings  []Listing      `json:"listings,omitempty" gorm:"foreignKey:OwnerID"`
}
