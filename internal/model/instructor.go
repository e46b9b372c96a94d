package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LevelRange is one configured skill band of an instructor. Bands are
// ordered and non-overlapping; the first band containing a player's level
// classifies an open slot on its first booking.
type LevelRange struct {
	MinLevel float64 `json:"min_level"`
	MaxLevel float64 `json:"max_level"`
}

// instructors
type Instructor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ClubID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name     string `gorm:"type:varchar(255);not null"`
	IsActive bool   `gorm:"not null;default:true;index"`

	// Ordered list of LevelRange, stored as JSON (JSONB on Postgres).
	LevelRanges datatypes.JSON `gorm:"type:jsonb"`

	// Working window used by the proposal generator, "15:04" club-local.
	WorkStart string `gorm:"type:varchar(5);not null;default:'09:00'"`
	WorkEnd   string `gorm:"type:varchar(5);not null;default:'21:00'"`

	// Bitmask of active weekdays, bit 1<<time.Weekday (Sunday = bit 0).
	// The generator only lays out classes on set days.
	WorkdayMask int `gorm:"not null;default:127"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Club *Club `gorm:"foreignKey:ClubID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// WorkdaysAll marks every weekday active.
const WorkdaysAll = 127

// WorksOn reports whether the instructor teaches on the given weekday.
func (i *Instructor) WorksOn(day time.Weekday) bool {
	return i.WorkdayMask&(1<<uint(day)) != 0
}

// Ranges decodes the configured level bands. An instructor with no
// configured ranges gets an empty list, which classifies every level as
// open.
func (i *Instructor) Ranges() ([]LevelRange, error) {
	if len(i.LevelRanges) == 0 {
		return nil, nil
	}
	var ranges []LevelRange
	if err := json.Unmarshal(i.LevelRanges, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}
