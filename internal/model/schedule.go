package model

import (
	"time"

	"github.com/google/uuid"
)

// court_schedules — derived 30-minute occupancy blocks written when a slot
// confirms and deleted when it un-confirms. The unique index on
// (court_id, starts_at) makes two confirmed classes on the same court and
// block impossible: the losing transaction rolls back on conflict.
type CourtSchedule struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CourtID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_court_block,priority:1"`
	TimeSlotID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartsAt time.Time `gorm:"not null;uniqueIndex:idx_court_block,priority:2"`
	EndsAt   time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`

	Court *Court    `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Slot  *TimeSlot `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// instructor_schedules — same occupancy mechanism for instructors.
type InstructorSchedule struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_instructor_block,priority:1"`
	TimeSlotID   uuid.UUID `gorm:"type:uuid;not null;index"`

	StartsAt time.Time `gorm:"not null;uniqueIndex:idx_instructor_block,priority:2"`
	EndsAt   time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Slot       *TimeSlot   `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
