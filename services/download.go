package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
)

// RecordDownload bumps the resource's download counter and makes sure a
// download-history row exists for (user, resource). The row is the interaction
// that later gates rating; repeat downloads leave it untouched.
func RecordDownload(db *gorm.DB, userID, resourceID uint) (*models.Resource, error) {
	var resource models.Resource
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&resource, resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Resource{}).Where("id = ?", resourceID).
			UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
			return err
		}
		resource.DownloadCount++

		err := tx.Create(&models.DownloadHistory{UserID: userID, ResourceID: resourceID}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// DownloadsOf lists a user's download history, newest first.
func DownloadsOf(db *gorm.DB, userID uint) ([]models.DownloadHistory, error) {
	var history []models.DownloadHistory
	err := db.Preload("Resource").Preload("Resource.Uploader").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&history).Error
	return history, err
}
