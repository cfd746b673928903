package models

import "time"

// ResourceRating is one user's review of a resource across five 1-5 scores.
// At most one rating per (user, resource), backed by the unique index.
type ResourceRating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_rating_user_resource;not null" json:"user_id"`
	ResourceID   uint      `gorm:"index;uniqueIndex:idx_rating_user_resource;not null" json:"resource_id"`
	Completeness int       `gorm:"not null" json:"completeness"`
	Accuracy     int       `gorm:"not null" json:"accuracy"`
	Relevance    int       `gorm:"not null" json:"relevance"`
	Readability  int       `gorm:"not null" json:"readability"`
	Credibility  int       `gorm:"not null" json:"credibility"`
	Comment      string    `gorm:"type:text" json:"comment"`
	IsAnonymous  bool      `gorm:"default:false" json:"is_anonymous"`
	CreatedAt    time.Time `json:"rating_time"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
}
