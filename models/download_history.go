package models

import "time"

// DownloadHistory records that a user downloaded a resource at least once.
// Ratings are gated on the existence of a row here. The unique index keeps it
// one row per (user, resource); repeat downloads only bump the resource
// counter.
type DownloadHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_download_user_resource;not null" json:"user_id"`
	ResourceID uint      `gorm:"uniqueIndex:idx_download_user_resource;not null" json:"resource_id"`
	CreatedAt  time.Time `json:"download_time"`
	Resource   Resource  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resource"`
}
