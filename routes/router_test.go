package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndhuresource/ndhulearn/models"
	"github.com/ndhuresource/ndhulearn/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("GIN_LOG_PATH", filepath.Join(os.TempDir(), "ndhulearn-gin-test.log"))
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))
	return SetupRouter(db), db
}

func authHeaderFor(t *testing.T, db *gorm.DB, studentID string) (string, *models.User) {
	t.Helper()
	user := models.User{
		StudentID:    studentID,
		Username:     "student " + studentID,
		Email:        studentID + "@gms.ndhu.edu.tw",
		PasswordHash: "x",
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateToken(user.ID, user.Username, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token, &user
}

func doJSON(r http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestUnknownAPIRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/points/checkin"},
		{http.MethodPost, "/api/v1/shop/buy"},
		{http.MethodPost, "/api/v1/ratings"},
		{http.MethodGet, "/api/v1/profile"},
	} {
		w := doJSON(r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestCheckinEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	auth, user := authHeaderFor(t, db, "411021080")

	w := doJSON(r, http.MethodPost, "/api/v1/points/checkin", auth, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.TotalCheckins)
	assert.Positive(t, fresh.CurrentPoints)

	// Same day again is rejected without a second credit.
	w = doJSON(r, http.MethodPost, "/api/v1/points/checkin", auth, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	auth, user := authHeaderFor(t, db, "411021081")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("current_points", 50).Error)

	item := models.ShopItem{Name: "gold-frame", Category: models.ItemCategoryFrame, ItemURL: "/x.png", Price: 30, IsAvailable: true}
	require.NoError(t, db.Create(&item).Error)

	w := doJSON(r, http.MethodPost, "/api/v1/shop/buy", auth, gin.H{"item_id": item.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 20, balanceIn(t, db, user.ID))

	w = doJSON(r, http.MethodPost, "/api/v1/shop/buy", auth, gin.H{"item_id": item.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 20, balanceIn(t, db, user.ID))
}

func TestToggleLikeEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	auth, user := authHeaderFor(t, db, "411021083")

	post := models.ForumPost{UserID: user.ID, Title: "like me", Content: "x"}
	require.NoError(t, db.Create(&post).Error)
	path := "/api/v1/forum/posts/" + strconv.Itoa(int(post.ID)) + "/like"

	w := doJSON(r, http.MethodPost, path, auth, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, likeCountOf(t, db, post.ID))

	w = doJSON(r, http.MethodPost, path, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, likeCountOf(t, db, post.ID))
}

func TestUnlikeNeverDrivesCounterNegative(t *testing.T) {
	r, db := newTestRouter(t)
	auth, user := authHeaderFor(t, db, "411021084")

	// Counter already at zero with a stale like row, as after a lost race.
	post := models.ForumPost{UserID: user.ID, Title: "stale like", Content: "x"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.ForumLike{UserID: user.ID, PostID: post.ID}).Error)

	path := "/api/v1/forum/posts/" + strconv.Itoa(int(post.ID)) + "/like"
	w := doJSON(r, http.MethodPost, path, auth, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"liked":false`)
	assert.Equal(t, 0, likeCountOf(t, db, post.ID))
}

func TestStatsEndpointReflectsDeletes(t *testing.T) {
	r, db := newTestRouter(t)
	auth, uploader := authHeaderFor(t, db, "411021085")

	course := models.Course{Name: "Databases", Department: "CSIE"}
	require.NoError(t, db.Create(&course).Error)
	res := models.Resource{CourseID: course.ID, UploaderID: uploader.ID, Title: "er diagrams", FileURL: "/f.pdf"}
	require.NoError(t, db.Create(&res).Error)

	w := doJSON(r, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resources":1`)

	w = doJSON(r, http.MethodDelete, "/api/v1/resources/"+strconv.Itoa(int(res.ID)), auth, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resources":0`)
}

func likeCountOf(t *testing.T, db *gorm.DB, postID uint) int {
	t.Helper()
	var post models.ForumPost
	require.NoError(t, db.First(&post, postID).Error)
	return post.LikeCount
}

func TestPublicResourceListing(t *testing.T) {
	r, db := newTestRouter(t)
	_, uploader := authHeaderFor(t, db, "411021082")

	course := models.Course{Name: "Algorithms", Department: "CSIE"}
	require.NoError(t, db.Create(&course).Error)
	res := models.Resource{CourseID: course.ID, UploaderID: uploader.ID, Title: "greedy notes", FileURL: "/f.pdf"}
	require.NoError(t, db.Create(&res).Error)

	w := doJSON(r, http.MethodGet, "/api/v1/resources", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "greedy notes")
}

func balanceIn(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.CurrentPoints
}
