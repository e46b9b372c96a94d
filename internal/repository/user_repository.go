package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDLocked(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error

	// Wallet mutations. The guarded calls enforce the balance invariants
	// in the UPDATE itself (available >= amount, blocked floored at zero)
	// and report whether the row qualified.
	AddBlockedCredits(ctx context.Context, userID string, amount int64) (bool, error)
	ReleaseBlockedCredits(ctx context.Context, userID string, amount int64) error
	SubtractCredits(ctx context.Context, userID string, amount int64) (bool, error)
	AddCredits(ctx context.Context, userID string, amount int64) error
	SubtractPoints(ctx context.Context, userID string, amount int64) (bool, error)
	AddPoints(ctx context.Context, userID string, amount int64) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetByIDLocked(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := forUpdate(r.db.WithContext(ctx)).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// AddBlockedCredits holds amount against the user's credits. The WHERE
// clause is the funds check: it only matches while available covers the
// new hold.
func (r *GormUserRepository) AddBlockedCredits(ctx context.Context, userID string, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND credits - blocked_credits >= ?", userID, amount).
		Update("blocked_credits", gorm.Expr("blocked_credits + ?", amount))
	return res.RowsAffected > 0, res.Error
}

func (r *GormUserRepository) ReleaseBlockedCredits(ctx context.Context, userID string, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("blocked_credits", gorm.Expr(
			"CASE WHEN blocked_credits >= ? THEN blocked_credits - ? ELSE 0 END", amount, amount)).
		Error
}

func (r *GormUserRepository) SubtractCredits(ctx context.Context, userID string, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND credits - blocked_credits >= ?", userID, amount).
		Update("credits", gorm.Expr("credits - ?", amount))
	return res.RowsAffected > 0, res.Error
}

func (r *GormUserRepository) AddCredits(ctx context.Context, userID string, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", amount)).
		Error
}

func (r *GormUserRepository) SubtractPoints(ctx context.Context, userID string, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND points - blocked_points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	return res.RowsAffected > 0, res.Error
}

func (r *GormUserRepository) AddPoints(ctx context.Context, userID string, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount)).
		Error
}
