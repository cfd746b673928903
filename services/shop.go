package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// Purchase buys a shop item for the user: ownership record, balance debit and
// ledger entry commit or roll back together. The early ownership check gives a
// friendly rejection; the unique index on (user_id, item_id) is the
// authoritative guard, so a concurrent duplicate attempt aborts the whole unit
// at commit time and reports ErrAlreadyOwned without a partial debit.
// Returns the balance after the purchase.
func Purchase(db *gorm.DB, userID, itemID uint) (int, error) {
	var newBalance int
	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.ShopItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !item.IsAvailable {
			return ErrNotFound
		}

		var owned int64
		if err := tx.Model(&models.UserPurchase{}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}

		if err := tx.Create(&models.UserPurchase{UserID: userID, ItemID: itemID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyOwned
			}
			return err
		}

		balance, _, err := ApplyDelta(tx, userID, -item.Price, models.TxKindPurchase,
			"purchase: "+item.Name)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Owns reports whether the user holds an ownership record for the item.
func Owns(db *gorm.DB, userID, itemID uint) (bool, error) {
	var n int64
	err := db.Model(&models.UserPurchase{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&n).Error
	return n > 0, err
}

// Inventory lists the items the user owns, most recently bought first.
func Inventory(db *gorm.DB, userID uint) ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := db.
		Joins("JOIN user_purchases ON user_purchases.item_id = shop_items.id").
		Where("user_purchases.user_id = ?", userID).
		Order("user_purchases.id DESC").
		Find(&items).Error
	return items, err
}
