package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuresource/ndhulearn/models"
)

func TestVoteCountsOnce(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "411021060", 0)
	voter := newTestUser(t, db, "411021061", 0)
	options := newTestPoll(t, db, author.ID)

	option, err := Vote(db, voter.ID, options[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, option.VoteCount)

	_, err = Vote(db, voter.ID, options[0].ID)
	require.ErrorIs(t, err, ErrAlreadyPerformed)

	var fresh models.PollOption
	require.NoError(t, db.First(&fresh, options[0].ID).Error)
	assert.Equal(t, 1, fresh.VoteCount)
}

func TestVoteOnePerPoll(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "411021062", 0)
	voter := newTestUser(t, db, "411021063", 0)
	options := newTestPoll(t, db, author.ID)

	_, err := Vote(db, voter.ID, options[0].ID)
	require.NoError(t, err)

	// Switching to another option of the same poll is still a second vote.
	_, err = Vote(db, voter.ID, options[1].ID)
	require.ErrorIs(t, err, ErrAlreadyPerformed)

	var second models.PollOption
	require.NoError(t, db.First(&second, options[1].ID).Error)
	assert.Equal(t, 0, second.VoteCount)

	var votes int64
	require.NoError(t, db.Model(&models.PollVote{}).Where("user_id = ?", voter.ID).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)
}

func TestVoteSeededRowBlocksCounter(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "411021068", 0)
	voter := newTestUser(t, db, "411021069", 0)
	options := newTestPoll(t, db, author.ID)

	// A vote row written outside the workflow is caught by the unique index.
	require.NoError(t, db.Create(&models.PollVote{
		UserID: voter.ID, PostID: options[0].PostID, OptionID: options[0].ID,
	}).Error)

	_, err := Vote(db, voter.ID, options[1].ID)
	require.ErrorIs(t, err, ErrAlreadyPerformed)

	var fresh models.PollOption
	require.NoError(t, db.First(&fresh, options[1].ID).Error)
	assert.Equal(t, 0, fresh.VoteCount)
}

func TestVoteDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "411021064", 0)
	first := newTestUser(t, db, "411021065", 0)
	second := newTestUser(t, db, "411021066", 0)
	options := newTestPoll(t, db, author.ID)

	_, err := Vote(db, first.ID, options[0].ID)
	require.NoError(t, err)
	option, err := Vote(db, second.ID, options[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, option.VoteCount)
}

func TestVoteUnknownOption(t *testing.T) {
	db := newTestDB(t)
	voter := newTestUser(t, db, "411021067", 0)

	_, err := Vote(db, voter.ID, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
