package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

// RatingController exposes download-gated resource reviews.
type RatingController struct {
	db *gorm.DB
}

// NewRatingController creates a new controller instance.
func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{db: db}
}

// CreateRating submits a review for a resource the user has downloaded.
func (r *RatingController) CreateRating(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ResourceID uint `json:"resource_id" binding:"required"`
		services.RatingScores
		Comment     string `json:"comment"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	rating, err := services.Rate(r.db, userID, req.ResourceID, req.RatingScores,
		utils.Sanitize(req.Comment), req.IsAnonymous)
	if err != nil {
		respondServiceError(ctx, err, 50070, "failed to create rating")
		return
	}

	utils.Created(ctx, rating)
}

// ListRatings returns all reviews of a resource.
func (r *RatingController) ListRatings(ctx *gin.Context) {
	resourceID, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid resource id")
		return
	}

	ratings, err := services.RatingsOf(r.db, resourceID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load ratings")
		return
	}
	utils.Success(ctx, ratings)
}

// DeleteRating removes the caller's own review.
func (r *RatingController) DeleteRating(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid rating id")
		return
	}

	if err := services.DeleteRating(r.db, userID, id); err != nil {
		respondServiceError(ctx, err, 50072, "failed to delete rating")
		return
	}
	utils.Success(ctx, gin.H{"message": "rating deleted"})
}
