package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type InstructorRepository interface {
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	ListActive(ctx context.Context) ([]model.Instructor, error)
}

type GormInstructorRepository struct {
	db *gorm.DB
}

func NewGormInstructorRepository(db *gorm.DB) *GormInstructorRepository {
	return &GormInstructorRepository{db: db}
}

func (r *GormInstructorRepository) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var i model.Instructor
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *GormInstructorRepository) ListActive(ctx context.Context) ([]model.Instructor, error) {
	var instructors []model.Instructor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&instructors).Error
	if err != nil {
		return nil, err
	}
	return instructors, nil
}
