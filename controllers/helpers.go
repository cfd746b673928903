package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndhuresource/ndhulearn/middleware"
	"github.com/ndhuresource/ndhulearn/services"
	"github.com/ndhuresource/ndhulearn/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func paramUint(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(ctx.Param(name)), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func pagination(ctx *gin.Context) (int, int) {
	page, pageSize := 1, 20
	if p, err := strconv.Atoi(ctx.Query("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(ctx.Query("page_size")); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

// respondServiceError maps the workflow error kinds onto HTTP responses.
// Unknown errors are persistence failures: the transaction rolled back and the
// client may retry the whole action.
func respondServiceError(ctx *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, "record not found")
	case errors.Is(err, services.ErrAlreadyPerformed):
		utils.Error(ctx, http.StatusBadRequest, 40030, "action already performed")
	case errors.Is(err, services.ErrAlreadyOwned):
		utils.Error(ctx, http.StatusBadRequest, 40031, "item already owned")
	case errors.Is(err, services.ErrInsufficientBalance):
		utils.Error(ctx, http.StatusBadRequest, 40032, "insufficient points")
	case errors.Is(err, services.ErrPreconditionNotMet):
		utils.Error(ctx, http.StatusForbidden, 40330, "precondition not met")
	default:
		utils.Sugar.Errorf("%s: %v", fallbackMsg, err)
		utils.Error(ctx, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
