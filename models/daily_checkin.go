package models

import "time"

// DailyCheckin records one daily check-in. The unique index over
// (user_id, checkin_date) is what makes the action idempotent; the date is
// stored as YYYY-MM-DD so the boundary is a calendar day, not 24 hours.
type DailyCheckin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_checkin_user_date;not null" json:"user_id"`
	CheckinDate  string    `gorm:"size:10;uniqueIndex:idx_checkin_user_date;not null" json:"checkin_date"`
	PointsEarned int       `json:"points_earned"`
	Streak       int       `gorm:"default:1" json:"streak"`
	CreatedAt    time.Time `json:"created_at"`
}
