package models

import "time"

// Shop item categories. Frame, badge and theme items are equippable; avatar
// items are applied as the avatar URL directly.
const (
	ItemCategoryAvatar = "avatar"
	ItemCategoryFrame  = "frame"
	ItemCategoryBadge  = "badge"
	ItemCategoryTheme  = "theme"
)

// ShopItem is a purchasable cosmetic. ItemURL carries the payload: an image
// URL for avatars/frames/badges, a JSON style descriptor for themes.
type ShopItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    string    `gorm:"size:16;not null" json:"category"`
	ItemURL     string    `gorm:"size:500;not null" json:"item_url"`
	Price       int       `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
