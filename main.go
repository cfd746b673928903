package main

import (
	"github.com/ndhuresource/ndhulearn/config"
	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/routes"
	"github.com/ndhuresource/ndhulearn/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.PointTransaction{},
		&models.DailyCheckin{},
		&models.ShopItem{},
		&models.UserPurchase{},
		&models.Course{},
		&models.Resource{},
		&models.DownloadHistory{},
		&models.ResourceRating{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.ForumLike{},
		&models.PollOption{},
		&models.PollVote{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
