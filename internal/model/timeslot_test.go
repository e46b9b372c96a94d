package model

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Time columns must survive a write/read cycle on both supported drivers;
// sqlite in particular rejects column types its driver cannot scan back
// into time.Time, so the models leave type selection to the dialect.
func TestTimeColumnsRoundTripOnSqlite(t *testing.T) {
	db := newTestDB(t)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slot := TimeSlot{
		ClubID:       uuid.New(),
		InstructorID: uuid.New(),
		StartsAt:     start,
		EndsAt:       start.Add(90 * time.Minute),
		MaxPlayers:   4,
		Level:        LevelOpen,
		State:        SlotStateProposal,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("create slot: %v", err)
	}

	var got TimeSlot
	if err := db.First(&got, "id = ?", slot.ID).Error; err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if !got.StartsAt.Equal(start) || !got.EndsAt.Equal(start.Add(90*time.Minute)) {
		t.Fatalf("slot times = %v / %v, want %v / +90m", got.StartsAt, got.EndsAt, start)
	}

	cancelled := start.Add(-time.Hour)
	booking := Booking{
		UserID:      uuid.New(),
		TimeSlotID:  slot.ID,
		GroupSize:   1,
		Status:      BookingStatusCancelled,
		CancelledAt: &cancelled,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	var gotBooking Booking
	if err := db.First(&gotBooking, "id = ?", booking.ID).Error; err != nil {
		t.Fatalf("read booking: %v", err)
	}
	if gotBooking.CancelledAt == nil || !gotBooking.CancelledAt.Equal(cancelled) {
		t.Fatalf("cancelledAt = %v, want %v", gotBooking.CancelledAt, cancelled)
	}

	block := CourtSchedule{
		CourtID:    uuid.New(),
		TimeSlotID: slot.ID,
		StartsAt:   start,
		EndsAt:     start.Add(30 * time.Minute),
	}
	if err := db.Create(&block).Error; err != nil {
		t.Fatalf("create block: %v", err)
	}
	var gotBlock CourtSchedule
	if err := db.First(&gotBlock, "id = ?", block.ID).Error; err != nil {
		t.Fatalf("read block: %v", err)
	}
	if !gotBlock.StartsAt.Equal(start) {
		t.Fatalf("block start = %v, want %v", gotBlock.StartsAt, start)
	}
}
