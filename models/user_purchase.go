package models

import "time"

// UserPurchase records ownership of one shop item. The unique index over
// (user_id, item_id) prevents repurchase even under concurrent attempts.
type UserPurchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_purchase_user_item;not null" json:"user_id"`
	ItemID    uint      `gorm:"uniqueIndex:idx_purchase_user_item;not null" json:"item_id"`
	CreatedAt time.Time `json:"purchased_at"`
}
