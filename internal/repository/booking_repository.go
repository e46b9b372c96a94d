package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type BookingRepository interface {
	// Create a new booking.
	Create(ctx context.Context, booking *model.Booking) error
	// Find a booking by ID.
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// Find a booking by ID holding a row lock.
	GetByIDLocked(ctx context.Context, id string) (*model.Booking, error)
	// Seats consumed by non-cancelled bookings of a slot.
	CountActiveSeats(ctx context.Context, slotID string) (int, error)
	// Whether the user already holds a non-cancelled booking on the slot.
	UserHasActive(ctx context.Context, slotID, userID string) (bool, error)
	// Persist a loaded booking.
	Save(ctx context.Context, booking *model.Booking) error
	// Flip every pending booking of a slot to the given status.
	UpdatePendingStatus(ctx context.Context, slotID string, status model.BookingStatus) error
	// Bookings of a user, newest first.
	ListByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]model.Booking, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) GetByIDLocked(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := forUpdate(r.db.WithContext(ctx)).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) CountActiveSeats(ctx context.Context, slotID string) (int, error) {
	var seats int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("COALESCE(SUM(group_size), 0)").
		Where("time_slot_id = ? AND status <> ?", slotID, model.BookingStatusCancelled).
		Scan(&seats).Error
	if err != nil {
		return 0, err
	}
	return int(seats), nil
}

func (r *GormBookingRepository) UserHasActive(ctx context.Context, slotID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("time_slot_id = ? AND user_id = ? AND status <> ?", slotID, userID, model.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *GormBookingRepository) UpdatePendingStatus(
	ctx context.Context,
	slotID string,
	status model.BookingStatus,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("time_slot_id = ? AND status = ?", slotID, model.BookingStatusPending).
		Update("status", status).
		Error
}

func (r *GormBookingRepository) ListByUser(
	ctx context.Context,
	userID string,
	from, to time.Time,
	limit int,
) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
