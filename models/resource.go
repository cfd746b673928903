package models

import "time"

// Resource is a user-uploaded study file attached to a course.
type Resource struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"index;not null" json:"course_id"`
	UploaderID    uint      `gorm:"index;not null" json:"uploader_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	FileURL       string    `gorm:"size:500;not null" json:"file_url"`
	FilePath      string    `gorm:"size:1024" json:"-"`
	FileType      string    `gorm:"size:50" json:"file_type"`
	AcademicYear  string    `gorm:"size:20" json:"academic_year"`
	DownloadCount int       `gorm:"default:0" json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Uploader      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"uploader"`
	Course        Course    `json:"course"`
}
