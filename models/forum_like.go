package models

import "time"

// ForumLike marks that a user liked a post; liking is a toggle, so rows come
// and go, but never more than one per (user, post).
type ForumLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_like_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:idx_like_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
