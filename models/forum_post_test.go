package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

// Migration must accept the full model set; the post associations hang off
// PostID on the children, not the default ForumPostID.
func TestMigrateAllModels(t *testing.T) {
	db := openModelDB(t)
	require.NoError(t, db.AutoMigrate(
		&User{},
		&PointTransaction{},
		&DailyCheckin{},
		&ShopItem{},
		&UserPurchase{},
		&Course{},
		&Resource{},
		&DownloadHistory{},
		&ResourceRating{},
		&ForumPost{},
		&ForumComment{},
		&ForumLike{},
		&PollOption{},
		&PollVote{},
	))
}

func TestForumPostAssociationsPreload(t *testing.T) {
	db := openModelDB(t)
	require.NoError(t, db.AutoMigrate(&User{}, &ForumPost{}, &ForumComment{}, &PollOption{}))

	author := User{StudentID: "411021090", Username: "author", Email: "411021090@gms.ndhu.edu.tw", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)

	post := ForumPost{UserID: author.ID, Title: "exam tips", Content: "share yours"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&ForumComment{PostID: post.ID, UserID: author.ID, Content: "start early"}).Error)
	require.NoError(t, db.Create(&[]PollOption{
		{PostID: post.ID, OptionText: "yes"},
		{PostID: post.ID, OptionText: "no"},
	}).Error)

	var loaded ForumPost
	require.NoError(t, db.Preload("Comments").Preload("PollOptions").First(&loaded, post.ID).Error)
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "start early", loaded.Comments[0].Content)
	require.Len(t, loaded.PollOptions, 2)
	assert.Equal(t, post.ID, loaded.PollOptions[0].PostID)
}
