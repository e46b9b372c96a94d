package model

import (
	"time"

	"github.com/google/uuid"
)

// Wallet kind a transaction applies to.
type WalletKind string

const (
	WalletCredits WalletKind = "credits"
	WalletPoints  WalletKind = "points"
)

// Ledger action. Add/subtract move the total balance, block/unblock move
// the held amount, refund is an add recorded as such for auditing.
type WalletAction string

const (
	ActionAdd      WalletAction = "add"
	ActionSubtract WalletAction = "subtract"
	ActionBlock    WalletAction = "block"
	ActionUnblock  WalletAction = "unblock"
	ActionRefund   WalletAction = "refund"
)

// wallet_transactions — immutable ledger. Rows are only ever appended;
// corrections are new rows, never edits. Replaying a user's rows from zero
// must reproduce the current balances.
type WalletTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	BookingID  *uuid.UUID `gorm:"type:uuid;index"`
	TimeSlotID *uuid.UUID `gorm:"type:uuid;index"`

	Kind   WalletKind   `gorm:"type:varchar(16);not null"`
	Action WalletAction `gorm:"type:varchar(16);not null"`
	Amount int64        `gorm:"not null"`

	// Post-mutation snapshots for reconciliation.
	BalanceAfter int64 `gorm:"not null"`
	BlockedAfter int64 `gorm:"not null"`

	Concept string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`

	User    *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Booking *Booking  `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Slot    *TimeSlot `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
