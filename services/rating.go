package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// RatingScores carries the five 1-5 sub-scores of a resource review.
type RatingScores struct {
	Completeness int `json:"completeness" binding:"required,min=1,max=5"`
	Accuracy     int `json:"accuracy" binding:"required,min=1,max=5"`
	Relevance    int `json:"relevance" binding:"required,min=1,max=5"`
	Readability  int `json:"readability" binding:"required,min=1,max=5"`
	Credibility  int `json:"credibility" binding:"required,min=1,max=5"`
}

// Rate creates a rating for a resource the user has downloaded before. The
// download gate and the one-rating-per-resource rule are both checked inside
// one transaction; the unique index on (user_id, resource_id) closes the
// double-submit race.
//
// The gate is advisory at this layer only: nothing in the schema ties a rating
// row to a download row, so a write that bypasses this function can violate
// it. That mirrors the platform's historical behavior and is covered by a test
// rather than silently tightened.
func Rate(db *gorm.DB, userID, resourceID uint, scores RatingScores, comment string, anonymous bool) (*models.ResourceRating, error) {
	rating := models.ResourceRating{
		UserID:       userID,
		ResourceID:   resourceID,
		Completeness: scores.Completeness,
		Accuracy:     scores.Accuracy,
		Relevance:    scores.Relevance,
		Readability:  scores.Readability,
		Credibility:  scores.Credibility,
		Comment:      comment,
		IsAnonymous:  anonymous,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Resource{}).Where("id = ?", resourceID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}

		var downloaded int64
		if err := tx.Model(&models.DownloadHistory{}).
			Where("user_id = ? AND resource_id = ?", userID, resourceID).
			Count(&downloaded).Error; err != nil {
			return err
		}
		if downloaded == 0 {
			return ErrPreconditionNotMet
		}

		var existing int64
		if err := tx.Model(&models.ResourceRating{}).
			Where("user_id = ? AND resource_id = ?", userID, resourceID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyPerformed
		}

		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPerformed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingsOf lists a resource's ratings with their authors, newest first.
func RatingsOf(db *gorm.DB, resourceID uint) ([]models.ResourceRating, error) {
	var ratings []models.ResourceRating
	err := db.Preload("User").
		Where("resource_id = ?", resourceID).
		Order("id DESC").
		Find(&ratings).Error
	return ratings, err
}

// DeleteRating removes a rating, but only for its author.
func DeleteRating(db *gorm.DB, userID, ratingID uint) error {
	var rating models.ResourceRating
	if err := db.First(&rating, ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rating.UserID != userID {
		return ErrPreconditionNotMet
	}
	return db.Delete(&rating).Error
}
