package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

// ResourceController manages study-resource upload, listing, download and
// deletion. A successful upload credits the fixed upload reward in the same
// transaction that creates the resource.
type ResourceController struct {
	db *gorm.DB
}

// NewResourceController creates a new controller instance.
func NewResourceController(db *gorm.DB) *ResourceController {
	return &ResourceController{db: db}
}

// ListResources returns resources, optionally filtered by course.
func (r *ResourceController) ListResources(ctx *gin.Context) {
	page, pageSize := pagination(ctx)

	query := r.db.Model(&models.Resource{})
	if courseID, err := strconv.Atoi(ctx.Query("course_id")); err == nil && courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to count resources")
		return
	}

	var resources []models.Resource
	if err := query.Preload("Uploader").Preload("Course").
		Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&resources).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load resources")
		return
	}

	utils.Success(ctx, gin.H{
		"items": resources,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

// GetResource returns one resource with uploader and course.
func (r *ResourceController) GetResource(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid resource id")
		return
	}

	var resource models.Resource
	if err := r.db.Preload("Uploader").Preload("Course").First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40460, "resource not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load resource")
		return
	}
	utils.Success(ctx, resource)
}

// Upload stores the file, creates the resource row and credits the upload
// reward, the latter two in one transaction.
func (r *ResourceController) Upload(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	title := strings.TrimSpace(ctx.PostForm("title"))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40060, "title is required")
		return
	}
	courseID, err := strconv.Atoi(ctx.PostForm("course_id"))
	if err != nil || courseID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40061, "valid course_id is required")
		return
	}

	var course models.Course
	if err := r.db.First(&course, courseID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40461, "course not found")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "file is required")
		return
	}

	url, path, err := utils.SaveUploadedFile(ctx, file)
	if err != nil {
		utils.Sugar.Errorf("failed to store upload: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to store file")
		return
	}

	resource := models.Resource{
		CourseID:     uint(courseID),
		UploaderID:   userID,
		Title:        title,
		Description:  strings.TrimSpace(ctx.PostForm("description")),
		FileURL:      url,
		FilePath:     path,
		FileType:     strings.TrimSpace(ctx.PostForm("file_type")),
		AcademicYear: strings.TrimSpace(ctx.PostForm("academic_year")),
	}

	var balance int
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resource).Error; err != nil {
			return err
		}
		b, err := services.AwardUploadBonus(tx, userID, resource.Title)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		utils.RemoveStoredFile(path)
		respondServiceError(ctx, err, 50064, "failed to create resource")
		return
	}

	InvalidateStatsCache()
	utils.Created(ctx, gin.H{
		"resource":       resource,
		"current_points": balance,
	})
}

// Download records the download interaction and returns the file URL.
func (r *ResourceController) Download(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid resource id")
		return
	}

	resource, err := services.RecordDownload(r.db, userID, id)
	if err != nil {
		respondServiceError(ctx, err, 50065, "failed to record download")
		return
	}

	utils.Success(ctx, gin.H{
		"url":            resource.FileURL,
		"download_count": resource.DownloadCount,
	})
}

// MyDownloads lists the user's download history.
func (r *ResourceController) MyDownloads(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	history, err := services.DownloadsOf(r.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to load download history")
		return
	}
	utils.Success(ctx, history)
}

// DeleteResource removes an owned resource and its stored file.
func (r *ResourceController) DeleteResource(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid resource id")
		return
	}

	var resource models.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40460, "resource not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load resource")
		return
	}
	if resource.UploaderID != userID {
		utils.Error(ctx, http.StatusForbidden, 40360, "only the uploader can delete this resource")
		return
	}

	if err := r.db.Delete(&resource).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50067, "failed to delete resource")
		return
	}
	utils.RemoveStoredFile(resource.FilePath)
	InvalidateStatsCache()
	utils.Success(ctx, gin.H{"message": "resource deleted"})
}
