package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/config"
	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/utils"
)

// AuthController handles registration, login and session endpoints.
// Registration is restricted to the university mail domain and gated on a
// mailed verification code.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

const tokenDuration = 72 * time.Hour

func universityEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(config.Get().EmailDomain))
}

// SendEmailCode mails a one-time verification code, with a resend cooldown.
func (a *AuthController) SendEmailCode(ctx *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !universityEmail(email) {
		utils.Error(ctx, http.StatusBadRequest, 40010, "a university mailbox is required")
		return
	}

	if !utils.EmailCooldownTrySet(email, time.Minute) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "verification code already sent, try again later")
		return
	}

	code := utils.GenerateVerificationCode(6)
	utils.SaveCode(email, code, 10*time.Minute)

	body := "Your NDHULearn verification code is: " + code + "\nIt expires in 10 minutes."
	if err := utils.SendMail(email, "NDHULearn verification code", body); err != nil {
		utils.Sugar.Errorf("failed to send verification mail to %s: %v", email, err)
		utils.Error(ctx, http.StatusBadGateway, 50210, "failed to send verification email")
		return
	}

	utils.Success(ctx, gin.H{"message": "verification code sent"})
}

// Register creates a verified account after checking the mailed code.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		StudentID string `json:"student_id" binding:"required,max=20"`
		Username  string `json:"username" binding:"required,min=1,max=50"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6,max=64"`
		Code      string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !universityEmail(email) {
		utils.Error(ctx, http.StatusBadRequest, 40010, "a university mailbox is required")
		return
	}

	if !utils.VerifyAndConsumeCode(email, strings.TrimSpace(req.Code)) {
		utils.Error(ctx, http.StatusBadRequest, 40011, "verification code invalid or expired")
		return
	}

	var existing models.User
	if err := a.db.Where("student_id = ? OR email = ?", req.StudentID, email).
		First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40910, "student id or email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to process password")
		return
	}

	user := models.User{
		StudentID:    strings.TrimSpace(req.StudentID),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: hash,
		IsVerified:   true,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40910, "student id or email already registered")
			return
		}
		utils.Sugar.Errorf("failed to create user: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create account")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to issue token")
		return
	}

	InvalidateStatsCache()
	utils.Created(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authenticates with student id (or email) and password.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		StudentID string `json:"student_id" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	ident := strings.TrimSpace(req.StudentID)
	var user models.User
	if err := a.db.Where("student_id = ? OR email = ?", ident, strings.ToLower(ident)).
		First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "invalid credentials")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := a.db.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		utils.Sugar.Warnf("failed to update last login for user %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid authorization header")
		return
	}
	tokenStr := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(tokenStr)
	if err == nil && claims.ExpiresAt != nil {
		utils.BlacklistToken(tokenStr, claims.ExpiresAt.Time)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's account.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load user")
		return
	}
	utils.Success(ctx, user)
}
