package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type CourtRepository interface {
	// Active courts of a club, ascending by court number. Order matters:
	// confirmation picks the first free one.
	ListActiveByClub(ctx context.Context, clubID string) ([]model.Court, error)
}

type GormCourtRepository struct {
	db *gorm.DB
}

func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

func (r *GormCourtRepository) ListActiveByClub(ctx context.Context, clubID string) ([]model.Court, error) {
	var courts []model.Court
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND is_active = ?", clubID, true).
		Order("number ASC").
		Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}
