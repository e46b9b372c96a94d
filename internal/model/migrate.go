package model

import "gorm.io/gorm"

// AutoMigrate migrates every entity of the booking core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Club{},
		&Court{},
		&Instructor{},
		&TimeSlot{},
		&Booking{},
		&WalletTransaction{},
		&CourtSchedule{},
		&InstructorSchedule{},
	)
}
