package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// Vote casts the user's single vote on a poll. The vote row is keyed on the
// option's parent post, so picking a second option of the same poll is
// rejected just like picking the same one twice, and no counter is ever
// incremented a second time for that voter. Returns the option with its
// updated count.
func Vote(db *gorm.DB, userID, optionID uint) (*models.PollOption, error) {
	var option models.PollOption
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&option, optionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		vote := models.PollVote{UserID: userID, PostID: option.PostID, OptionID: optionID}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPerformed
			}
			return err
		}

		if err := tx.Model(&models.PollOption{}).Where("id = ?", optionID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
			return err
		}
		return tx.First(&option, optionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &option, nil
}
