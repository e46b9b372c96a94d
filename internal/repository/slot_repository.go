package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type SlotRepository interface {
	// Find a slot by ID.
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	// Find a slot by ID holding a row lock for the rest of the transaction.
	GetByIDLocked(ctx context.Context, id string) (*model.TimeSlot, error)
	// Create a slot.
	Create(ctx context.Context, slot *model.TimeSlot) error
	// Persist all columns of a loaded slot.
	Save(ctx context.Context, slot *model.TimeSlot) error
	// Bookable slots of a club in an interval: proposals, classified slots
	// and confirmed slots that still hold recycled seats.
	ListBookable(ctx context.Context, clubID string, from, to time.Time) ([]model.TimeSlot, error)
	// Whether any slot already exists for the instructor at this start.
	ExistsForInstructorStart(ctx context.Context, instructorID string, startsAt time.Time) (bool, error)
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) GetByIDLocked(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := forUpdate(r.db.WithContext(ctx)).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *GormSlotRepository) Save(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *GormSlotRepository) ListBookable(
	ctx context.Context,
	clubID string,
	from, to time.Time,
) ([]model.TimeSlot, error) {
	// A full unconfirmed slot (stuck because no court was free) is not
	// bookable either, so seat occupancy is checked inline.
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Where(`(state = ? AND available_recycled_slots > 0)
			OR (state <> ? AND max_players > (
				SELECT COALESCE(SUM(group_size), 0) FROM bookings
				WHERE bookings.time_slot_id = time_slots.id AND bookings.status <> ?))`,
			model.SlotStateConfirmed, model.SlotStateConfirmed, model.BookingStatusCancelled).
		Order("starts_at ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) ExistsForInstructorStart(
	ctx context.Context,
	instructorID string,
	startsAt time.Time,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("instructor_id = ? AND starts_at = ?", instructorID, startsAt).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
