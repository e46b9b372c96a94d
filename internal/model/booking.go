package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCredits PaymentMethod = "credits"
	PaymentPoints  PaymentMethod = "points"
)

// bookings
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TimeSlotID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Seats consumed by this booking, 1..4.
	GroupSize int `gorm:"not null;default:1"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index"`

	// Credits held while the booking is alive; refunded by unblocking.
	AmountBlocked int64 `gorm:"not null;default:0"`

	// Points purchases are settled immediately; refunded by crediting back.
	PaidWithPoints bool  `gorm:"not null;default:false"`
	PointsUsed     int64 `gorm:"not null;default:0"`

	// Set when this booking's seats were freed on a confirmed class and
	// re-offered as points-only inventory.
	IsRecycled bool `gorm:"not null;default:false"`

	CancelledAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Slot *TimeSlot `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// Active reports whether the booking still consumes seats.
func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}
