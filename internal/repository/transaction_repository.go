package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
)

type TransactionRepository interface {
	// Append a ledger entry. The ledger is append-only: there is no
	// update or delete on purpose.
	Append(ctx context.Context, tx *model.WalletTransaction) error
	// Entries of a user in chronological order.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.WalletTransaction, error)
}

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Append(ctx context.Context, tx *model.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *GormTransactionRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]model.WalletTransaction, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var txs []model.WalletTransaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
