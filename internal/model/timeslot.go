package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Explicit lifecycle state of a class slot. A proposal is fully open and
// competes for bookings; the first booking classifies it; a confirmed slot
// has a court assigned and is schedule-blocked.
type SlotState string

const (
	SlotStateProposal   SlotState = "proposal"
	SlotStateClassified SlotState = "classified"
	SlotStateConfirmed  SlotState = "confirmed"
)

// LevelOpen marks a slot (or a classification result) open to any level.
const LevelOpen = "ABIERTO"

// Gender categories assigned on first booking.
const (
	GenderMale   = "masculino"
	GenderFemale = "femenino"
	GenderMixed  = "mixto"
)

// time_slots
type TimeSlot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ClubID       uuid.UUID `gorm:"type:uuid;not null;index"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Court reference stays null until the slot confirms. CourtNumber is
	// denormalized for display and must agree with CourtID.
	CourtID     *uuid.UUID `gorm:"type:uuid;index"`
	CourtNumber *int

	StartsAt time.Time `gorm:"not null;index"`
	EndsAt   time.Time `gorm:"not null"`

	MaxPlayers int `gorm:"not null;default:4"`

	// Pricing supplied at generation time; the booking core only reads it.
	// Currency amounts are integer cents, PointsPrice is per seat.
	TotalPrice       int64 `gorm:"not null;default:0"`
	InstructorPrice  int64 `gorm:"not null;default:0"`
	CourtRentalPrice int64 `gorm:"not null;default:0"`
	PointsPrice      int64 `gorm:"not null;default:0"`

	Level          string  `gorm:"type:varchar(32);not null;default:'ABIERTO';index"`
	GenderCategory *string `gorm:"type:varchar(16)"`

	State SlotState `gorm:"type:varchar(16);not null;default:'proposal';index"`

	// Seats freed by cancellation on a confirmed class, re-offered as
	// points-only inventory.
	HasRecycledSlots        bool `gorm:"not null;default:false"`
	AvailableRecycledSlots  int  `gorm:"not null;default:0"`
	RecycledSlotsOnlyPoints bool `gorm:"not null;default:false"`

	// Seat indices an operator marked as reservable with points only.
	CreditsSlots datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Club       *Club       `gorm:"foreignKey:ClubID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Court      *Court      `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// PricePerSeat is the credits charge for one seat.
func (s *TimeSlot) PricePerSeat() int64 {
	if s.MaxPlayers <= 0 {
		return s.TotalPrice
	}
	return s.TotalPrice / int64(s.MaxPlayers)
}

// CreditsSlotIndices decodes the operator-marked points-only seat indices.
func (s *TimeSlot) CreditsSlotIndices() ([]int, error) {
	if len(s.CreditsSlots) == 0 {
		return nil, nil
	}
	var idx []int
	if err := json.Unmarshal(s.CreditsSlots, &idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// SetCreditsSlotIndices encodes the points-only seat index list.
func (s *TimeSlot) SetCreditsSlotIndices(idx []int) error {
	if idx == nil {
		idx = []int{}
	}
	raw, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	s.CreditsSlots = datatypes.JSON(raw)
	return nil
}
