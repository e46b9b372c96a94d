package model

import (
	"time"

	"github.com/google/uuid"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name   string  `gorm:"type:varchar(255);not null"`
	Email  string  `gorm:"type:varchar(255);uniqueIndex"`
	Level  float64 `gorm:"type:numeric(4,2);not null;default:0"`
	Gender string  `gorm:"type:varchar(16)"`

	// Wallet. Credits are currency in integer cents, points are loyalty
	// units. BlockedX is the part of the total held against pending
	// bookings; available = total - blocked.
	Credits        int64 `gorm:"not null;default:0"`
	BlockedCredits int64 `gorm:"not null;default:0"`
	Points         int64 `gorm:"not null;default:0"`
	BlockedPoints  int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AvailableCredits returns the credits not held against pending bookings.
func (u *User) AvailableCredits() int64 {
	return u.Credits - u.BlockedCredits
}

// AvailablePoints returns the points not held against pending bookings.
func (u *User) AvailablePoints() int64 {
	return u.Points - u.BlockedPoints
}
