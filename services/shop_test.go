package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuresource/ndhulearn/models"
)

func TestPurchaseSuccess(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021020", 50)
	item := newTestItem(t, db, "gold-frame", models.ItemCategoryFrame, 30)

	balance, err := Purchase(db, user.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	owned, err := Owns(db, user.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	assert.Equal(t, 20, balanceOf(t, db, user.ID))
	assert.Equal(t, -30, ledgerSum(t, db, user.ID))
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021021", 15)
	item := newTestItem(t, db, "night-theme", models.ItemCategoryTheme, 20)

	_, err := Purchase(db, user.ID, item.ID)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// The ownership insert rolled back with the debit.
	owned, err := Owns(db, user.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, owned)
	assert.Equal(t, 15, balanceOf(t, db, user.ID))
	assert.Equal(t, 0, ledgerSum(t, db, user.ID))
}

func TestPurchaseTwice(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021022", 100)
	item := newTestItem(t, db, "star-badge", models.ItemCategoryBadge, 25)

	_, err := Purchase(db, user.ID, item.ID)
	require.NoError(t, err)

	_, err = Purchase(db, user.ID, item.ID)
	require.ErrorIs(t, err, ErrAlreadyOwned)

	// Charged exactly once.
	assert.Equal(t, 75, balanceOf(t, db, user.ID))
	assert.Equal(t, -25, ledgerSum(t, db, user.ID))

	var purchases int64
	require.NoError(t, db.Model(&models.UserPurchase{}).
		Where("user_id = ? AND item_id = ?", user.ID, item.ID).
		Count(&purchases).Error)
	assert.EqualValues(t, 1, purchases)
}

func TestPurchaseSeededOwnershipBlocksDebit(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021025", 100)
	item := newTestItem(t, db, "seeded-frame", models.ItemCategoryFrame, 40)

	// An ownership row written outside the workflow still blocks the purchase.
	require.NoError(t, db.Create(&models.UserPurchase{UserID: user.ID, ItemID: item.ID}).Error)

	_, err := Purchase(db, user.ID, item.ID)
	require.ErrorIs(t, err, ErrAlreadyOwned)
	assert.Equal(t, 100, balanceOf(t, db, user.ID))
	assert.Equal(t, 0, ledgerSum(t, db, user.ID))
}

func TestPurchaseUnknownOrUnavailableItem(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021023", 100)

	_, err := Purchase(db, user.ID, 9999)
	require.ErrorIs(t, err, ErrNotFound)

	item := newTestItem(t, db, "retired-frame", models.ItemCategoryFrame, 10)
	require.NoError(t, db.Model(item).UpdateColumn("is_available", false).Error)

	_, err = Purchase(db, user.ID, item.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryListsOwnedItems(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "411021024", 100)
	first := newTestItem(t, db, "frame-a", models.ItemCategoryFrame, 10)
	second := newTestItem(t, db, "badge-b", models.ItemCategoryBadge, 10)
	newTestItem(t, db, "never-bought", models.ItemCategoryTheme, 10)

	_, err := Purchase(db, user.ID, first.ID)
	require.NoError(t, err)
	_, err = Purchase(db, user.ID, second.ID)
	require.NoError(t, err)

	items, err := Inventory(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Most recent purchase first.
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}
