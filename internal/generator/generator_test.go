package generator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/padelpoint/club-core/internal/model"
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

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedInstructor(t *testing.T, db *gorm.DB, workStart, workEnd string) model.Instructor {
	t.Helper()

	club := model.Club{Name: "Padel Point Norte", TimeZone: "UTC"}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	instructor := model.Instructor{
		ClubID:      club.ID,
		Name:        "Carlos",
		IsActive:    true,
		WorkStart:   workStart,
		WorkEnd:     workEnd,
		WorkdayMask: model.WorkdaysAll,
	}
	if err := db.Create(&instructor).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	return instructor
}

func countSlots(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.TimeSlot{}).Count(&count).Error; err != nil {
		t.Fatalf("count slots: %v", err)
	}
	return count
}

func TestRun_CreatesProposalsAcrossHorizon(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "09:00", "13:00")

	// 09:00-13:00 fits two 90-minute classes per day once the 30-minute
	// spacing between them is honoured, three days ahead.
	gen := New(db, Options{HorizonDays: 3, ClassMinutes: 90, TotalPrice: 6000, PointsPrice: 100})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := countSlots(t, db); got != 6 {
		t.Fatalf("slots = %d, want 6", got)
	}

	var slots []model.TimeSlot
	if err := db.Order("starts_at ASC").Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}
	for _, slot := range slots {
		if slot.State != model.SlotStateProposal {
			t.Fatalf("slot state = %s, want proposal", slot.State)
		}
		if slot.Level != model.LevelOpen {
			t.Fatalf("slot level = %q, want %s", slot.Level, model.LevelOpen)
		}
		if slot.InstructorID != instructor.ID {
			t.Fatalf("slot belongs to wrong instructor")
		}
		if slot.EndsAt.Sub(slot.StartsAt) != 90*time.Minute {
			t.Fatalf("class length = %v, want 90m", slot.EndsAt.Sub(slot.StartsAt))
		}
		if slot.TotalPrice != 6000 || slot.PointsPrice != 100 {
			t.Fatalf("pricing = %d/%d, want 6000/100", slot.TotalPrice, slot.PointsPrice)
		}
	}

	first, second := slots[0], slots[1]
	if first.StartsAt.Hour() != 9 || first.StartsAt.Minute() != 0 {
		t.Fatalf("first class at %v, want 09:00", first.StartsAt)
	}
	// Same-day classes are spaced so both can confirm on one court and
	// one instructor despite the pre-class buffer.
	if !second.StartsAt.Equal(first.EndsAt.Add(30 * time.Minute)) {
		t.Fatalf("second class at %v, want 30m after %v", second.StartsAt, first.EndsAt)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := newTestDB(t)
	seedInstructor(t, db, "09:00", "12:00")

	gen := New(db, Options{HorizonDays: 2, ClassMinutes: 90})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := countSlots(t, db)

	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if after := countSlots(t, db); after != before {
		t.Fatalf("second run created slots: %d -> %d", before, after)
	}
}

func TestRun_LeavesClassifiedSlotsAlone(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "09:00", "10:30")

	gen := New(db, Options{HorizonDays: 1, ClassMinutes: 90})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// A booking classified the slot in the meantime.
	var slot model.TimeSlot
	if err := db.First(&slot, "instructor_id = ?", instructor.ID).Error; err != nil {
		t.Fatalf("load slot: %v", err)
	}
	slot.State = model.SlotStateClassified
	slot.Level = "3-5"
	if err := db.Save(&slot).Error; err != nil {
		t.Fatalf("save slot: %v", err)
	}

	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := countSlots(t, db); got != 1 {
		t.Fatalf("slots = %d, want 1 (classified slot suppresses regeneration)", got)
	}
}

func TestRun_SkipsInactiveInstructors(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "09:00", "12:00")
	if err := db.Model(&model.Instructor{}).Where("id = ?", instructor.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	gen := New(db, Options{HorizonDays: 3, ClassMinutes: 90})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := countSlots(t, db); got != 0 {
		t.Fatalf("slots = %d, want 0 for inactive instructor", got)
	}
}

func TestRun_HonorsWorkdayMask(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "09:00", "13:00")

	// Mondays only.
	mask := 1 << uint(time.Monday)
	if err := db.Model(&model.Instructor{}).Where("id = ?", instructor.ID).Update("workday_mask", mask).Error; err != nil {
		t.Fatalf("set mask: %v", err)
	}

	gen := New(db, Options{HorizonDays: 7, ClassMinutes: 90})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// One Monday in a 7-day horizon, two classes in the window.
	if got := countSlots(t, db); got != 2 {
		t.Fatalf("slots = %d, want 2", got)
	}
	var slots []model.TimeSlot
	if err := db.Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}
	for _, slot := range slots {
		if slot.StartsAt.Weekday() != time.Monday {
			t.Fatalf("class generated on %s, mask allows Monday only", slot.StartsAt.Weekday())
		}
	}
}

func TestRun_ShortWindowNoClasses(t *testing.T) {
	db := newTestDB(t)
	seedInstructor(t, db, "09:00", "10:00")

	gen := New(db, Options{HorizonDays: 1, ClassMinutes: 90})
	if err := gen.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := countSlots(t, db); got != 0 {
		t.Fatalf("slots = %d, want 0 (window shorter than a class)", got)
	}
}
