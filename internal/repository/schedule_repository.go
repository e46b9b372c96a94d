package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/schedule"
)

type ScheduleRepository interface {
	// Occupancy of a court intersecting [from, to).
	ListCourtRanges(ctx context.Context, courtID string, from, to time.Time) ([]schedule.TimeRange, error)
	// Occupancy of an instructor intersecting [from, to).
	ListInstructorRanges(ctx context.Context, instructorID string, from, to time.Time) ([]schedule.TimeRange, error)
	// Write the occupancy blocks of a confirming slot.
	CreateCourtBlocks(ctx context.Context, blocks []model.CourtSchedule) error
	CreateInstructorBlocks(ctx context.Context, blocks []model.InstructorSchedule) error
	// Release every block held by a slot (un-confirm).
	DeleteBySlot(ctx context.Context, slotID string) error
}

type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) ListCourtRanges(
	ctx context.Context,
	courtID string,
	from, to time.Time,
) ([]schedule.TimeRange, error) {
	var blocks []model.CourtSchedule
	err := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Order("starts_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]schedule.TimeRange, 0, len(blocks))
	for _, b := range blocks {
		ranges = append(ranges, schedule.TimeRange{Start: b.StartsAt, End: b.EndsAt})
	}
	return ranges, nil
}

func (r *GormScheduleRepository) ListInstructorRanges(
	ctx context.Context,
	instructorID string,
	from, to time.Time,
) ([]schedule.TimeRange, error) {
	var blocks []model.InstructorSchedule
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Order("starts_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]schedule.TimeRange, 0, len(blocks))
	for _, b := range blocks {
		ranges = append(ranges, schedule.TimeRange{Start: b.StartsAt, End: b.EndsAt})
	}
	return ranges, nil
}

func (r *GormScheduleRepository) CreateCourtBlocks(ctx context.Context, blocks []model.CourtSchedule) error {
	if len(blocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&blocks).Error
}

func (r *GormScheduleRepository) CreateInstructorBlocks(ctx context.Context, blocks []model.InstructorSchedule) error {
	if len(blocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&blocks).Error
}

func (r *GormScheduleRepository) DeleteBySlot(ctx context.Context, slotID string) error {
	if err := r.db.WithContext(ctx).
		Delete(&model.CourtSchedule{}, "time_slot_id = ?", slotID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&model.InstructorSchedule{}, "time_slot_id = ?", slotID).Error
}
