package services

import (
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// ApplyDelta changes a user's point balance by amount and appends the matching
// ledger entry, both through the caller's transaction. It is the only place
// that writes users.current_points, so balance and ledger cannot drift apart.
//
// The balance update is a single conditional UPDATE: the row is only touched
// when current_points + amount stays non-negative, which makes a debit safe
// against a concurrent spend that a prior read did not see. Returns the new
// balance and the created entry id.
func ApplyDelta(tx *gorm.DB, userID uint, amount int, kind, description string) (int, uint, error) {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Where("current_points + ? >= 0", amount).
		UpdateColumn("current_points", gorm.Expr("current_points + ?", amount))
	if res.Error != nil {
		return 0, 0, res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return 0, 0, err
		}
		if n == 0 {
			return 0, 0, ErrNotFound
		}
		return 0, 0, ErrInsufficientBalance
	}

	var user models.User
	if err := tx.Select("current_points").First(&user, userID).Error; err != nil {
		return 0, 0, err
	}

	entry := models.PointTransaction{
		UserID:       userID,
		Amount:       amount,
		Kind:         kind,
		Description:  description,
		BalanceAfter: user.CurrentPoints,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, 0, err
	}
	return user.CurrentPoints, entry.ID, nil
}

// History returns the user's most recent ledger entries, newest first.
func History(db *gorm.DB, userID uint, limit int) ([]models.PointTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.PointTransaction
	err := db.Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
