package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// Slot names one of the user's equippable cosmetic slots.
type Slot string

const (
	SlotFrame Slot = "frame"
	SlotBadge Slot = "badge"
	SlotTheme Slot = "theme"
)

// ParseSlot maps a request value onto a known slot.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotFrame, SlotBadge, SlotTheme:
		return Slot(s), nil
	}
	return "", fmt.Errorf("unknown equip slot %q", s)
}

func (s Slot) column() string {
	switch s {
	case SlotFrame:
		return "avatar_frame_id"
	case SlotBadge:
		return "badge_id"
	case SlotTheme:
		return "theme_id"
	}
	return ""
}

func (s Slot) category() string {
	switch s {
	case SlotFrame:
		return models.ItemCategoryFrame
	case SlotBadge:
		return models.ItemCategoryBadge
	case SlotTheme:
		return models.ItemCategoryTheme
	}
	return ""
}

// Equip points a slot at an owned item of the matching category. Equipping an
// item of the wrong category or one the user never bought fails with
// ErrPreconditionNotMet and changes nothing.
func Equip(db *gorm.DB, userID uint, slot Slot, itemID uint) error {
	col := slot.column()
	if col == "" {
		return fmt.Errorf("unknown equip slot %q", slot)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.ShopItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if item.Category != slot.category() {
			return ErrPreconditionNotMet
		}

		var owned int64
		if err := tx.Model(&models.UserPurchase{}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned == 0 {
			return ErrPreconditionNotMet
		}

		return setSlot(tx, userID, col, itemID)
	})
}

// Unequip clears a slot. Clearing an already-empty slot is a no-op.
func Unequip(db *gorm.DB, userID uint, slot Slot) error {
	col := slot.column()
	if col == "" {
		return fmt.Errorf("unknown equip slot %q", slot)
	}
	return setSlot(db, userID, col, nil)
}

func setSlot(tx *gorm.DB, userID uint, column string, value interface{}) error {
	var n int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn(column, value).Error
}
