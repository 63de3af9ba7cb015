package repository

import (
	"context"
	"testing"
	"time"

	"collegium/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyClaimRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewDailyClaimRepository(testDB.DB)
	ctx := context.Background()

	t.Run("never claimed returns nil", func(t *testing.T) {
		claim, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		assert.Nil(t, claim)
	})

	t.Run("upsert creates row", func(t *testing.T) {
		original := testutil.CreateTestDailyClaim(123456, 1, 0)
		require.NoError(t, repo.Upsert(ctx, original))

		claim, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, int64(123456), claim.DiscordID)
		assert.Equal(t, 1, claim.Streak)
		assert.WithinDuration(t, original.LastClaimAt, claim.LastClaimAt, time.Second)
	})

	t.Run("upsert overwrites row", func(t *testing.T) {
		updated := testutil.CreateTestDailyClaim(123456, 4, 0)
		require.NoError(t, repo.Upsert(ctx, updated))

		claim, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, 4, claim.Streak)
		assert.WithinDuration(t, updated.LastClaimAt, claim.LastClaimAt, time.Second)
	})

	t.Run("rows are per user", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestDailyClaim(999999, 7, 24*time.Hour)))

		claim, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, 4, claim.Streak)
	})
}
