package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a registered student. Passwords are stored as bcrypt hashes only.
// The three equip pointers reference ShopItem rows the user owns; nil means the
// slot is empty.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	StudentID       string     `gorm:"size:20;uniqueIndex;not null" json:"student_id"`
	Username        string     `gorm:"size:50;not null" json:"username"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	IsVerified      bool       `gorm:"default:false" json:"is_verified"`
	CurrentPoints   int        `gorm:"default:0" json:"current_points"`
	TotalCheckins   int        `gorm:"default:0" json:"total_checkins"`
	ConsecutiveDays int        `gorm:"default:0" json:"consecutive_days"`
	AvatarURL       string     `gorm:"size:500" json:"avatar_url"`
	AvatarFrameID   *uint      `json:"avatar_frame_id"`
	BadgeID         *uint      `json:"badge_id"`
	ThemeID         *uint      `json:"theme_id"`
	LastLogin       *time.Time `json:"last_login"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate normalizes the email and ensures timestamps are set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate keeps the email normalized and refreshes UpdatedAt.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if u.Email != "" {
		u.Email = strings.ToLower(u.Email)
	}
	u.UpdatedAt = time.Now()
	return nil
}
