package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

// PointsController exposes the daily check-in and the points ledger.
type PointsController struct {
	db *gorm.DB
}

// NewPointsController creates a new controller instance.
func NewPointsController(db *gorm.DB) *PointsController {
	return &PointsController{db: db}
}

// DailyCheckin performs today's check-in for the authenticated user.
func (p *PointsController) DailyCheckin(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	result, err := services.Checkin(p.db, userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrAlreadyPerformed) {
			utils.Error(ctx, http.StatusBadRequest, 40030, "already checked in today")
			return
		}
		respondServiceError(ctx, err, 50030, "failed to record check-in")
		return
	}

	utils.Success(ctx, result)
}

// CheckinStatus returns the user's balance and check-in counters.
func (p *PointsController) CheckinStatus(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load user")
		return
	}

	today := time.Now().Format("2006-01-02")
	var checkedToday int64
	if err := p.db.Model(&models.DailyCheckin{}).
		Where("user_id = ? AND checkin_date = ?", userID, today).
		Count(&checkedToday).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load check-in state")
		return
	}

	utils.Success(ctx, gin.H{
		"current_points":   user.CurrentPoints,
		"total_checkins":   user.TotalCheckins,
		"consecutive_days": user.ConsecutiveDays,
		"checked_in_today": checkedToday > 0,
	})
}

// History returns the user's recent ledger entries.
func (p *PointsController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit := 50
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		limit = v
	}

	entries, err := services.History(p.db, userID, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load point history")
		return
	}
	utils.Success(ctx, entries)
}
