package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/utils"
)

// CatalogController serves the read-only course catalog resources hang off.
type CatalogController struct {
	db *gorm.DB
}

// NewCatalogController creates a new controller instance.
func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{db: db}
}

// ListCourses returns all courses, optionally filtered by department.
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	query := c.db.Model(&models.Course{})
	if dep := ctx.Query("department"); dep != "" {
		query = query.Where("department = ?", dep)
	}

	var courses []models.Course
	if err := query.Order("name").Find(&courses).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load courses")
		return
	}
	utils.Success(ctx, courses)
}
