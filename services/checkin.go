package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/config"
	"github.com/ndhuresource/ndhulearn/models"
)

const dateLayout = "2006-01-02"

// CheckinResult reports the outcome of a successful daily check-in.
type CheckinResult struct {
	PointsEarned int `json:"points_earned"`
	Balance      int `json:"current_points"`
	Streak       int `json:"streak"`
}

// Checkin performs the daily check-in for a user: one check-in record, one
// balance credit, one ledger entry and the counter bumps, all in a single
// transaction. A second call on the same calendar day returns
// ErrAlreadyPerformed; the unique index on (user_id, checkin_date) backstops
// the race between two concurrent first calls.
func Checkin(db *gorm.DB, userID uint, now time.Time) (*CheckinResult, error) {
	date := now.Format(dateLayout)
	reward := config.Get().CheckinRewardPoints

	var out CheckinResult
	err := db.Transaction(func(tx *gorm.DB) error {
		streak := 1
		var last models.DailyCheckin
		err := tx.Where("user_id = ?", userID).Order("checkin_date DESC").First(&last).Error
		switch {
		case err == nil:
			if last.CheckinDate == date {
				return ErrAlreadyPerformed
			}
			if last.CheckinDate == now.AddDate(0, 0, -1).Format(dateLayout) {
				streak = last.Streak + 1
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		record := models.DailyCheckin{
			UserID:       userID,
			CheckinDate:  date,
			PointsEarned: reward,
			Streak:       streak,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPerformed
			}
			return err
		}

		balance, _, err := ApplyDelta(tx, userID, reward, models.TxKindCheckin,
			fmt.Sprintf("daily check-in (%s)", date))
		if err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"total_checkins":   gorm.Expr("total_checkins + 1"),
				"consecutive_days": streak,
			}).Error; err != nil {
			return err
		}

		out = CheckinResult{PointsEarned: reward, Balance: balance, Streak: streak}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AwardUploadBonus credits the fixed upload reward inside the upload
// workflow's transaction. The upload itself is the idempotence boundary: one
// successful upload, one credit.
func AwardUploadBonus(tx *gorm.DB, userID uint, resourceTitle string) (int, error) {
	reward := config.Get().UploadRewardPoints
	balance, _, err := ApplyDelta(tx, userID, reward, models.TxKindUpload,
		"upload reward: "+resourceTitle)
	return balance, err
}
