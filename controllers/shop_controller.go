package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

// ShopController exposes the cosmetics shop: catalog, purchase, inventory.
type ShopController struct {
	db *gorm.DB
}

// NewShopController creates a new controller instance.
func NewShopController(db *gorm.DB) *ShopController {
	return &ShopController{db: db}
}

// ListItems returns available items, optionally filtered by category.
// The catalog changes rarely, so responses are cached in Redis.
func (s *ShopController) ListItems(ctx *gin.Context) {
	category := ctx.Query("category")
	cacheKey := "cache:shop:items:" + category
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	query := s.db.Where("is_available = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.ShopItem
	if err := query.Order("id").Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load shop items")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: items}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)
	utils.Success(ctx, items)
}

// BuyItem purchases an item with points.
func (s *ShopController) BuyItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ItemID uint `json:"item_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	balance, err := services.Purchase(s.db, userID, req.ItemID)
	if err != nil {
		respondServiceError(ctx, err, 50041, "failed to purchase item")
		return
	}

	utils.Success(ctx, gin.H{
		"message":        "purchase successful",
		"current_points": balance,
	})
}

// Inventory lists the items the user owns.
func (s *ShopController) Inventory(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	items, err := services.Inventory(s.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load inventory")
		return
	}
	utils.Success(ctx, items)
}
