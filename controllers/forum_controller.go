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

// ForumController manages discussion posts, comments, likes and polls.
type ForumController struct {
	db *gorm.DB
}

// NewForumController creates a new controller instance.
func NewForumController(db *gorm.DB) *ForumController {
	return &ForumController{db: db}
}

const (
	minPollOptions = 2
	maxPollOptions = 4
)

// ListPosts returns forum posts with their poll options, newest first.
func (f *ForumController) ListPosts(ctx *gin.Context) {
	page, pageSize := pagination(ctx)

	query := f.db.Model(&models.ForumPost{})
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to count posts")
		return
	}

	var posts []models.ForumPost
	if err := query.Preload("User").Preload("PollOptions").
		Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load posts")
		return
	}

	utils.Success(ctx, gin.H{
		"items": posts,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

// GetPost returns one post with comments and poll options.
func (f *ForumController) GetPost(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid post id")
		return
	}

	var post models.ForumPost
	if err := f.db.Preload("User").Preload("PollOptions").
		Preload("Comments").Preload("Comments.User").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40480, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load post")
		return
	}
	utils.Success(ctx, post)
}

// CreatePost creates a post, optionally with a poll of 2-4 options.
func (f *ForumController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title       string   `json:"title" binding:"required,min=1"`
		Content     string   `json:"content" binding:"required"`
		Category    string   `json:"category"`
		PollOptions []string `json:"poll_options"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40080, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)
	category := req.Category
	if category == "" {
		category = "general"
	}

	options := make([]string, 0, len(req.PollOptions))
	for _, opt := range req.PollOptions {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, utils.Sanitize(opt))
		}
	}
	if len(req.PollOptions) > 0 && len(options) < minPollOptions {
		utils.Error(ctx, http.StatusBadRequest, 40081, "a poll needs at least two options")
		return
	}
	if len(options) > maxPollOptions {
		utils.Error(ctx, http.StatusBadRequest, 40082, "a poll can have at most four options")
		return
	}

	post := models.ForumPost{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: category,
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for _, opt := range options {
			if err := tx.Create(&models.PollOption{PostID: post.ID, OptionText: opt}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.Sugar.Errorf("failed to create post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to create post")
		return
	}

	utils.Created(ctx, post)
}

// CreateComment replies to a post.
func (f *ForumController) CreateComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var post models.ForumPost
	if err := f.db.First(&post, postID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40480, "post not found")
		return
	}

	comment := models.ForumComment{
		PostID:  postID,
		UserID:  userID,
		Content: utils.Sanitize(req.Content),
	}
	if err := f.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50084, "failed to create comment")
		return
	}
	utils.Created(ctx, comment)
}

// ToggleLike likes or unlikes a post and reports the new state.
func (f *ForumController) ToggleLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID, ok := paramUint(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid post id")
		return
	}

	var liked bool
	var likeCount int
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var post models.ForumPost
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrNotFound
			}
			return err
		}

		var existing models.ForumLike
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			res := tx.Delete(&existing)
			if res.Error != nil {
				return res.Error
			}
			// Only the call that actually removed the row may decrement, and
			// the counter never goes below zero.
			if res.RowsAffected == 1 {
				if err := tx.Model(&models.ForumPost{}).
					Where("id = ? AND like_count > 0", postID).
					UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
					return err
				}
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.ForumLike{UserID: userID, PostID: postID}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return services.ErrAlreadyPerformed
				}
				return err
			}
			if err := tx.Model(&models.ForumPost{}).Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&models.ForumPost{}).Select("like_count").
			Where("id = ?", postID).Scan(&likeCount).Error
	})
	if err != nil {
		respondServiceError(ctx, err, 50085, "failed to toggle like")
		return
	}

	utils.Success(ctx, gin.H{
		"liked":      liked,
		"like_count": likeCount,
	})
}

// VotePoll casts the user's single vote on a post's poll.
func (f *ForumController) VotePoll(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		OptionID uint `json:"option_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	option, err := services.Vote(f.db, userID, req.OptionID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyPerformed) {
			utils.Error(ctx, http.StatusBadRequest, 40083, "you already voted in this poll")
			return
		}
		respondServiceError(ctx, err, 50086, "failed to cast vote")
		return
	}

	utils.Success(ctx, option)
}
