package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuresource/ndhulearn/models"
)

func TestRecordDownload(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021070", 0)
	downloader := newTestUser(t, db, "411021071", 0)
	res := newTestResource(t, db, uploader.ID, "compilers-final")

	got, err := RecordDownload(db, downloader.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DownloadCount)
	assert.Equal(t, res.FileURL, got.FileURL)
}

func TestRecordDownloadRepeatKeepsOneHistoryRow(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021072", 0)
	downloader := newTestUser(t, db, "411021073", 0)
	res := newTestResource(t, db, uploader.ID, "networks-slides")

	for i := 0; i < 3; i++ {
		_, err := RecordDownload(db, downloader.ID, res.ID)
		require.NoError(t, err)
	}

	// Counter reflects every download, history stays one row.
	var fresh models.Resource
	require.NoError(t, db.First(&fresh, res.ID).Error)
	assert.Equal(t, 3, fresh.DownloadCount)

	var rows int64
	require.NoError(t, db.Model(&models.DownloadHistory{}).
		Where("user_id = ? AND resource_id = ?", downloader.ID, res.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestRecordDownloadUnknownResource(t *testing.T) {
	db := newTestDB(t)
	downloader := newTestUser(t, db, "411021074", 0)

	_, err := RecordDownload(db, downloader.ID, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadsOf(t *testing.T) {
	db := newTestDB(t)
	uploader := newTestUser(t, db, "411021075", 0)
	downloader := newTestUser(t, db, "411021076", 0)
	first := newTestResource(t, db, uploader.ID, "week-1")
	second := newTestResource(t, db, uploader.ID, "week-2")

	_, err := RecordDownload(db, downloader.ID, first.ID)
	require.NoError(t, err)
	_, err = RecordDownload(db, downloader.ID, second.ID)
	require.NoError(t, err)

	history, err := DownloadsOf(db, downloader.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ResourceID)
	assert.Equal(t, "week-2", history[0].Resource.Title)
	assert.Equal(t, uploader.ID, history[0].Resource.Uploader.ID)
}
