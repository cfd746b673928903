package models

import "time"

// Transaction kinds recorded in the points ledger.
const (
	TxKindCheckin  = "checkin"
	TxKindUpload   = "upload"
	TxKindPurchase = "purchase"
	TxKindOther    = "other"
)

// PointTransaction is one immutable ledger entry for a balance change.
// BalanceAfter snapshots the user's balance right after the change, so the
// entries of a user always sum to the current balance.
type PointTransaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Amount       int       `gorm:"not null" json:"amount"`
	Kind         string    `gorm:"size:16;not null" json:"kind"`
	Description  string    `gorm:"size:500" json:"description"`
	BalanceAfter int       `gorm:"not null" json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}
