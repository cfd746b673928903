package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuresource/ndhulearn/models"
)

func allFives() RatingScores {
	return RatingScores{Completeness: 5, Accuracy: 5, Relevance: 5, Readability: 5, Credibility: 5}
}

func TestRateAfterDownload(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021040", 0)
	reviewer := newTestUser(t, db, "411021041", 0)
	res := newTestResource(t, db, uploader.ID, "calc-notes")

	_, err := RecordDownload(db, reviewer.ID, res.ID)
	require.NoError(t, err)

	rating, err := Rate(db, reviewer.ID, res.ID, allFives(), "very complete", false)
	require.NoError(t, err)
	assert.NotZero(t, rating.ID)
	assert.Equal(t, 5, rating.Accuracy)
}

func TestRateWithoutDownload(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021042", 0)
	reviewer := newTestUser(t, db, "411021043", 0)
	res := newTestResource(t, db, uploader.ID, "linear-algebra")

	_, err := Rate(db, reviewer.ID, res.ID, allFives(), "", false)
	require.ErrorIs(t, err, ErrPreconditionNotMet)
}

func TestRateTwice(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021044", 0)
	reviewer := newTestUser(t, db, "411021045", 0)
	res := newTestResource(t, db, uploader.ID, "stats-hw")

	_, err := RecordDownload(db, reviewer.ID, res.ID)
	require.NoError(t, err)
	_, err = Rate(db, reviewer.ID, res.ID, allFives(), "first", false)
	require.NoError(t, err)

	_, err = Rate(db, reviewer.ID, res.ID, allFives(), "second", false)
	require.ErrorIs(t, err, ErrAlreadyPerformed)

	var n int64
	require.NoError(t, db.Model(&models.ResourceRating{}).
		Where("user_id = ? AND resource_id = ?", reviewer.ID, res.ID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRateUnknownResource(t *testing.T) {
	db := newTestDB(t)
	reviewer := newTestUser(t, db, "411021046", 0)

	_, err := Rate(db, reviewer.ID, 9999, allFives(), "", false)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestRateDirectInsertBypassesGate documents that the download gate lives in
// the workflow, not the schema: a raw insert can create a rating with no
// download row behind it. Tightening this would need a storage-level link
// between ratings and downloads.
func TestRateDirectInsertBypassesGate(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021047", 0)
	reviewer := newTestUser(t, db, "411021048", 0)
	res := newTestResource(t, db, uploader.ID, "ungated")

	raw := models.ResourceRating{
		UserID: reviewer.ID, ResourceID: res.ID,
		Completeness: 1, Accuracy: 1, Relevance: 1, Readability: 1, Credibility: 1,
	}
	require.NoError(t, db.Create(&raw).Error)

	var downloads int64
	require.NoError(t, db.Model(&models.DownloadHistory{}).
		Where("user_id = ?", reviewer.ID).Count(&downloads).Error)
	assert.EqualValues(t, 0, downloads)
}

func TestDeleteRatingAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021049", 0)
	author := newTestUser(t, db, "411021050", 0)
	other := newTestUser(t, db, "411021051", 0)
	res := newTestResource(t, db, uploader.ID, "db-notes")

	_, err := RecordDownload(db, author.ID, res.ID)
	require.NoError(t, err)
	rating, err := Rate(db, author.ID, res.ID, allFives(), "", false)
	require.NoError(t, err)

	err = DeleteRating(db, other.ID, rating.ID)
	require.ErrorIs(t, err, ErrPreconditionNotMet)

	require.NoError(t, DeleteRating(db, author.ID, rating.ID))
	err = DeleteRating(db, author.ID, rating.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
