package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/utils"
)

// StatsController serves public platform aggregates.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new controller instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// statsCachePrefix keys the cached aggregates; writers that change the
// counters invalidate it through InvalidateStatsCache.
const statsCachePrefix = "cache:stats:"

// InvalidateStatsCache drops the cached aggregates after a counter-changing
// write (registration, resource upload or deletion).
func InvalidateStatsCache() {
	utils.InvalidateByPrefix(statsCachePrefix)
}

// GetStats returns platform-wide counters. Cheap enough to compute per
// request, but cached briefly to keep the landing page off the database.
func (s *StatsController) GetStats(ctx *gin.Context) {
	const cacheKey = statsCachePrefix + "global"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var users, resources, downloads int64
	if err := s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to load stats")
		return
	}
	if err := s.db.Model(&models.Resource{}).Count(&resources).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to load stats")
		return
	}
	if err := s.db.Model(&models.DownloadHistory{}).Count(&downloads).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to load stats")
		return
	}

	var circulating int64
	if err := s.db.Model(&models.User{}).
		Select("COALESCE(SUM(current_points), 0)").Scan(&circulating).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to load stats")
		return
	}

	stats := gin.H{
		"users":              users,
		"resources":          resources,
		"downloads":          downloads,
		"points_circulating": circulating,
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: stats}
	utils.CacheSetJSON(cacheKey, wrapper, time.Minute)
	utils.Success(ctx, stats)
}
