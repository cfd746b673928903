package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndhuresource/ndhulearn/config"
	"github.com/ndhuresource/ndhulearn/controllers"
	"github.com/ndhuresource/ndhulearn/middleware"
	"github.com/ndhuresource/ndhulearn/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	// Serve uploaded resource files
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	pointsController := controllers.NewPointsController(db)
	shopController := controllers.NewShopController(db)
	profileController := controllers.NewProfileController(db)
	resourceController := controllers.NewResourceController(db)
	ratingController := controllers.NewRatingController(db)
	forumController := controllers.NewForumController(db)
	catalogController := controllers.NewCatalogController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/stats", statsController.GetStats)
	api.GET("/courses", catalogController.ListCourses)
	api.GET("/resources", resourceController.ListResources)
	api.GET("/resources/:id", resourceController.GetResource)
	api.GET("/resources/:id/ratings", ratingController.ListRatings)
	api.GET("/shop/items", shopController.ListItems)
	api.GET("/forum/posts", forumController.ListPosts)
	api.GET("/forum/posts/:id", forumController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/profile", profileController.GetProfile)
	protected.PATCH("/profile", profileController.UpdateProfile)
	protected.POST("/profile/equip", profileController.Equip)
	protected.POST("/profile/unequip", profileController.Unequip)

	protected.POST("/points/checkin", pointsController.DailyCheckin)
	protected.GET("/points/status", pointsController.CheckinStatus)
	protected.GET("/points/history", pointsController.History)

	protected.POST("/shop/buy", shopController.BuyItem)
	protected.GET("/shop/inventory", shopController.Inventory)

	protected.POST("/resources", resourceController.Upload)
	protected.GET("/resources/:id/download", resourceController.Download)
	protected.DELETE("/resources/:id", resourceController.DeleteResource)
	protected.GET("/downloads", resourceController.MyDownloads)

	protected.POST("/ratings", ratingController.CreateRating)
	protected.DELETE("/ratings/:id", ratingController.DeleteRating)

	protected.POST("/forum/posts", forumController.CreatePost)
	protected.POST("/forum/posts/:id/comments", forumController.CreateComment)
	protected.POST("/forum/posts/:id/like", forumController.ToggleLike)
	protected.POST("/forum/vote", forumController.VotePoll)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
