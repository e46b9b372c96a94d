package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are generated application-side so the same models work on Postgres
// and on the sqlite databases used in development and tests.

func (u *User) BeforeCreate(*gorm.DB) error               { ensureID(&u.ID); return nil }
func (c *Club) BeforeCreate(*gorm.DB) error               { ensureID(&c.ID); return nil }
func (c *Court) BeforeCreate(*gorm.DB) error              { ensureID(&c.ID); return nil }
func (i *Instructor) BeforeCreate(*gorm.DB) error         { ensureID(&i.ID); return nil }
func (s *TimeSlot) BeforeCreate(*gorm.DB) error           { ensureID(&s.ID); return nil }
func (b *Booking) BeforeCreate(*gorm.DB) error            { ensureID(&b.ID); return nil }
func (t *WalletTransaction) BeforeCreate(*gorm.DB) error  { ensureID(&t.ID); return nil }
func (c *CourtSchedule) BeforeCreate(*gorm.DB) error      { ensureID(&c.ID); return nil }
func (i *InstructorSchedule) BeforeCreate(*gorm.DB) error { ensureID(&i.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
