package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
)

// WalletService is the ledger over a user's credits and points. Every
// mutation runs a guarded update on the user row and appends an immutable
// WalletTransaction with post-mutation snapshots, so replaying a user's
// entries from zero reproduces the current balances.
type WalletService struct {
	users repository.UserRepository
	txs   repository.TransactionRepository
}

// NewWalletService builds a ledger bound to db, which may be a transaction
// handle: booking flows construct one inside their own transaction.
func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{
		users: repository.NewGormUserRepository(db),
		txs:   repository.NewGormTransactionRepository(db),
	}
}

// Refs ties a ledger entry to the booking and slot that caused it.
type Refs struct {
	BookingID  *uuid.UUID
	TimeSlotID *uuid.UUID
}

// BlockCredits holds amount against pending spending. Fails with
// ErrInsufficientFunds when available credits do not cover it.
func (w *WalletService) BlockCredits(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	ok, err := w.users.AddBlockedCredits(ctx, userID.String(), amount)
	if err != nil {
		return fmt.Errorf("block credits: %w", err)
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return w.append(ctx, userID, model.WalletCredits, model.ActionBlock, amount, concept, refs)
}

// UnblockCredits releases a hold, flooring the blocked amount at zero.
func (w *WalletService) UnblockCredits(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	if err := w.users.ReleaseBlockedCredits(ctx, userID.String(), amount); err != nil {
		return fmt.Errorf("unblock credits: %w", err)
	}
	return w.append(ctx, userID, model.WalletCredits, model.ActionUnblock, amount, concept, refs)
}

// DebitPoints spends points immediately (recycled-seat and points
// purchases settle at booking time).
func (w *WalletService) DebitPoints(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	ok, err := w.users.SubtractPoints(ctx, userID.String(), amount)
	if err != nil {
		return fmt.Errorf("debit points: %w", err)
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return w.append(ctx, userID, model.WalletPoints, model.ActionSubtract, amount, concept, refs)
}

// RefundPoints credits previously spent points back.
func (w *WalletService) RefundPoints(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	if err := w.users.AddPoints(ctx, userID.String(), amount); err != nil {
		return fmt.Errorf("refund points: %w", err)
	}
	return w.append(ctx, userID, model.WalletPoints, model.ActionRefund, amount, concept, refs)
}

// DebitCredits spends credits directly (operator adjustments).
func (w *WalletService) DebitCredits(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	ok, err := w.users.SubtractCredits(ctx, userID.String(), amount)
	if err != nil {
		return fmt.Errorf("debit credits: %w", err)
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return w.append(ctx, userID, model.WalletCredits, model.ActionSubtract, amount, concept, refs)
}

// CreditCredits adds credits (operator adjustments, external top-ups).
func (w *WalletService) CreditCredits(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	if err := w.users.AddCredits(ctx, userID.String(), amount); err != nil {
		return fmt.Errorf("credit credits: %w", err)
	}
	return w.append(ctx, userID, model.WalletCredits, model.ActionAdd, amount, concept, refs)
}

// CreditPoints adds loyalty points.
func (w *WalletService) CreditPoints(ctx context.Context, userID uuid.UUID, amount int64, concept string, refs Refs) error {
	if amount < 0 {
		return ErrInvalidArgument
	}
	if err := w.users.AddPoints(ctx, userID.String(), amount); err != nil {
		return fmt.Errorf("credit points: %w", err)
	}
	return w.append(ctx, userID, model.WalletPoints, model.ActionAdd, amount, concept, refs)
}

// Balances returns the user's wallet snapshot.
func (w *WalletService) Balances(ctx context.Context, userID string) (*model.User, error) {
	return w.users.GetByID(ctx, userID)
}

// History returns a user's ledger entries, oldest first.
func (w *WalletService) History(ctx context.Context, userID string, limit int) ([]model.WalletTransaction, error) {
	return w.txs.ListByUser(ctx, userID, limit)
}

func (w *WalletService) append(
	ctx context.Context,
	userID uuid.UUID,
	kind model.WalletKind,
	action model.WalletAction,
	amount int64,
	concept string,
	refs Refs,
) error {
	// Snapshot after the mutation; the caller's transaction makes the
	// pair atomic.
	u, err := w.users.GetByID(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("wallet snapshot: %w", err)
	}

	entry := &model.WalletTransaction{
		UserID:     userID,
		BookingID:  refs.BookingID,
		TimeSlotID: refs.TimeSlotID,
		Kind:       kind,
		Action:     action,
		Amount:     amount,
		Concept:    concept,
	}
	switch kind {
	case model.WalletCredits:
		entry.BalanceAfter = u.Credits
		entry.BlockedAfter = u.BlockedCredits
	case model.WalletPoints:
		entry.BalanceAfter = u.Points
		entry.BlockedAfter = u.BlockedPoints
	}

	if err := w.txs.Append(ctx, entry); err != nil {
		return fmt.Errorf("append wallet transaction: %w", err)
	}
	return nil
}
