package repository

import (
	"context"
	"testing"
	"time"

	"collegium/repository/testutil"
	"collegium/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopOfferRepository_InsertAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShopOfferRepository(testDB.DB)
	ctx := context.Background()

	t.Run("get absent offer returns nil", func(t *testing.T) {
		offer, err := repo.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, offer)
	})

	t.Run("insert assigns id", func(t *testing.T) {
		offer := testutil.CreateTestOffer(123456, 20000, "mage_grimoire", 40)
		require.NoError(t, repo.Insert(ctx, offer))

		assert.NotZero(t, offer.ID)
		assert.False(t, offer.CreatedAt.IsZero())

		loaded, err := repo.GetByID(ctx, offer.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "mage_grimoire", loaded.ItemKey)
		assert.Equal(t, int64(40), loaded.Price)
		assert.Nil(t, loaded.PurchasedAt)
		assert.False(t, loaded.Purchased())
	})
}

func TestShopOfferRepository_GetForUserDay(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShopOfferRepository(testDB.DB)
	ctx := context.Background()

	const day = 20000
	keys := []string{"mage_grimoire", "mage_orbe", "xp_potion_daily"}
	for _, key := range keys {
		require.NoError(t, repo.Insert(ctx, testutil.CreateTestOffer(123456, day, key, 40)))
	}
	// Noise: another user and another day
	require.NoError(t, repo.Insert(ctx, testutil.CreateTestOffer(999999, day, "mage_baton", 200)))
	require.NoError(t, repo.Insert(ctx, testutil.CreateTestOffer(123456, day+1, "mage_fiole", 40)))

	offers, err := repo.GetForUserDay(ctx, 123456, day)
	require.NoError(t, err)
	require.Len(t, offers, 3)

	// Insertion order is preserved
	for i, key := range keys {
		assert.Equal(t, key, offers[i].ItemKey)
	}

	empty, err := repo.GetForUserDay(ctx, 123456, day-1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestShopOfferRepository_MarkPurchased(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShopOfferRepository(testDB.DB)
	ctx := context.Background()

	offer := testutil.CreateTestOffer(123456, 20000, "mage_grimoire", 40)
	require.NoError(t, repo.Insert(ctx, offer))

	boughtAt := time.Now()
	require.NoError(t, repo.MarkPurchased(ctx, offer.ID, boughtAt))

	loaded, err := repo.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.PurchasedAt)
	assert.True(t, loaded.Purchased())
	assert.WithinDuration(t, boughtAt, *loaded.PurchasedAt, time.Second)

	t.Run("second purchase fails", func(t *testing.T) {
		err := repo.MarkPurchased(ctx, offer.ID, time.Now())
		assert.ErrorIs(t, err, service.ErrOfferAlreadyPurchased)
	})

	t.Run("unknown offer fails", func(t *testing.T) {
		err := repo.MarkPurchased(ctx, 424242, time.Now())
		assert.ErrorIs(t, err, service.ErrOfferAlreadyPurchased)
	})
}

func TestShopOfferRepository_DeleteOlderThan(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShopOfferRepository(testDB.DB)
	ctx := context.Background()

	const today = 20000
	require.NoError(t, repo.Insert(ctx, testutil.CreateTestOffer(123456, today-10, "mage_grimoire", 40)))
	require.NoError(t, repo.Insert(ctx, testutil.CreateTestOffer(123456, today-8, "mage_fiole", 40)))
	kept := testutil.CreateTestOffer(123456, today, "mage_orbe", 90)
	require.NoError(t, repo.Insert(ctx, kept))

	deleted, err := repo.DeleteOlderThan(ctx, today-7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	offers, err := repo.GetForUserDay(ctx, 123456, today)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "mage_orbe", offers[0].ItemKey)

	// Nothing left to purge
	deleted, err = repo.DeleteOlderThan(ctx, today-7)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
