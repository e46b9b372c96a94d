package model

import (
	"time"

	"github.com/google/uuid"
)

// clubs
type Club struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name     string `gorm:"type:varchar(255);not null"`
	TimeZone string `gorm:"type:varchar(64);not null;default:'UTC'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Courts []Court `gorm:"foreignKey:ClubID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// courts
type Court struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ClubID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_courts_club_number,priority:1"`

	// Court selection on confirmation is first-available by ascending
	// number, so the pair is kept unique per club.
	Number   int  `gorm:"not null;uniqueIndex:idx_courts_club_number,priority:2"`
	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Club *Club `gorm:"foreignKey:ClubID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
