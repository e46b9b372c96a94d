package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/padelpoint/club-core/internal/model"
)

// newTestDB opens a private in-memory database per test. One connection,
// so transactions serialize the same way the per-slot lock assumes.
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

// fixture is a club with courts, one instructor and one open proposal slot.
type fixture struct {
	club       model.Club
	courts     []model.Court
	instructor model.Instructor
	slot       model.TimeSlot
}

func seedFixture(t *testing.T, db *gorm.DB, numCourts int) *fixture {
	t.Helper()

	f := &fixture{
		club: model.Club{Name: "Padel Point Centro", TimeZone: "UTC"},
	}
	if err := db.Create(&f.club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}

	for n := 1; n <= numCourts; n++ {
		court := model.Court{ClubID: f.club.ID, Number: n, IsActive: true}
		if err := db.Create(&court).Error; err != nil {
			t.Fatalf("seed court %d: %v", n, err)
		}
		f.courts = append(f.courts, court)
	}

	ranges, err := json.Marshal([]model.LevelRange{
		{MinLevel: 1, MaxLevel: 2.75},
		{MinLevel: 3, MaxLevel: 5},
	})
	if err != nil {
		t.Fatalf("marshal ranges: %v", err)
	}
	f.instructor = model.Instructor{
		ClubID:      f.club.ID,
		Name:        "Marta",
		IsActive:    true,
		LevelRanges: datatypes.JSON(ranges),
		WorkStart:   "09:00",
		WorkEnd:     "21:00",
		WorkdayMask: model.WorkdaysAll,
	}
	if err := db.Create(&f.instructor).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}

	start := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)
	f.slot = model.TimeSlot{
		ClubID:       f.club.ID,
		InstructorID: f.instructor.ID,
		StartsAt:     start,
		EndsAt:       start.Add(90 * time.Minute),
		MaxPlayers:   4,
		TotalPrice:   6000,
		PointsPrice:  100,
		Level:        model.LevelOpen,
		State:        model.SlotStateProposal,
	}
	if err := db.Create(&f.slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return f
}

func seedUser(t *testing.T, db *gorm.DB, name string, level float64, gender string, credits, points int64) model.User {
	t.Helper()
	u := model.User{
		Name:    name,
		Email:   name + "@test.local",
		Level:   level,
		Gender:  gender,
		Credits: credits,
		Points:  points,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func getSlot(t *testing.T, db *gorm.DB, id uuid.UUID) *model.TimeSlot {
	t.Helper()
	var slot model.TimeSlot
	if err := db.First(&slot, "id = ?", id).Error; err != nil {
		t.Fatalf("load slot: %v", err)
	}
	return &slot
}

func getUser(t *testing.T, db *gorm.DB, id uuid.UUID) *model.User {
	t.Helper()
	var u model.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return &u
}

func getBooking(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Booking {
	t.Helper()
	var b model.Booking
	if err := db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	return &b
}

func mustBook(t *testing.T, svc *BookingService, slotID uuid.UUID, user model.User, groupSize int, method model.PaymentMethod) *model.Booking {
	t.Helper()
	b, err := svc.Book(context.Background(), BookRequest{
		TimeSlotID:    slotID.String(),
		UserID:        user.ID.String(),
		GroupSize:     groupSize,
		PaymentMethod: method,
	})
	if err != nil {
		t.Fatalf("book for %s: %v", user.Name, err)
	}
	return b
}
