package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

// ProfileController serves the user's profile with its equipped cosmetics and
// the equip/unequip transitions.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a new controller instance.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetProfile returns the account together with the payloads of equipped items
// (frame image URL, badge image URL, theme style descriptor).
func (p *ProfileController) GetProfile(ctx *gin.Context) {
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
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load profile")
		return
	}

	payload := gin.H{
		"user":         user,
		"avatar_frame": p.itemPayload(user.AvatarFrameID),
		"badge":        p.itemPayload(user.BadgeID),
		"theme_styles": p.itemPayload(user.ThemeID),
	}
	utils.Success(ctx, payload)
}

func (p *ProfileController) itemPayload(itemID *uint) interface{} {
	if itemID == nil {
		return nil
	}
	var item models.ShopItem
	if err := p.db.First(&item, *itemID).Error; err != nil {
		return nil
	}
	return item.ItemURL
}

// UpdateProfile changes username, avatar or password.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Username  *string `json:"username"`
		AvatarURL *string `json:"avatar_url"`
		Password  *string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	if req.Username != nil {
		if name := strings.TrimSpace(*req.Username); name != "" {
			user.Username = name
		}
	}
	if req.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		if len(*req.Password) < 6 {
			utils.Error(ctx, http.StatusBadRequest, 40051, "password too short")
			return
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to process password")
			return
		}
		user.PasswordHash = hash
	}

	if err := p.db.Save(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to update profile")
		return
	}
	utils.Success(ctx, user)
}

// Equip points one of the cosmetic slots at an owned item.
func (p *ProfileController) Equip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Slot   string `json:"slot" binding:"required"`
		ItemID uint   `json:"item_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	slot, err := services.ParseSlot(req.Slot)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "unknown equip slot")
		return
	}

	if err := services.Equip(p.db, userID, slot, req.ItemID); err != nil {
		respondServiceError(ctx, err, 50053, "failed to equip item")
		return
	}
	utils.Success(ctx, gin.H{"message": "equipped"})
}

// Unequip clears one of the cosmetic slots.
func (p *ProfileController) Unequip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	slot, err := services.ParseSlot(req.Slot)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "unknown equip slot")
		return
	}

	if err := services.Unequip(p.db, userID, slot); err != nil {
		respondServiceError(ctx, err, 50054, "failed to unequip item")
		return
	}
	utils.Success(ctx, gin.H{"message": "unequipped"})
}
