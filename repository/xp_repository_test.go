package repository

import (
	"context"
	"testing"
	"time"

	"collegium/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPRepository_Totals(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewXPRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		total, err := repo.TotalForUser(ctx, 123456)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("sums deltas", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, 123456, 25, "100000000000000001"))
		require.NoError(t, repo.Insert(ctx, 123456, 15, "100000000000000001"))
		require.NoError(t, repo.Insert(ctx, 123456, 100, "100000000000000002"))

		total, err := repo.TotalForUser(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(140), total)
	})

	t.Run("windowed sum excludes older entries", func(t *testing.T) {
		total, err := repo.TotalForUserSince(ctx, 123456, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(140), total)

		total, err = repo.TotalForUserSince(ctx, 123456, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestXPRepository_TopSince(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewXPRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, 111, 50, "100000000000000001"))
	require.NoError(t, repo.Insert(ctx, 111, 30, "100000000000000001"))
	require.NoError(t, repo.Insert(ctx, 222, 200, "100000000000000002"))
	require.NoError(t, repo.Insert(ctx, 333, 10, ""))

	since := time.Now().Add(-time.Hour)

	entries, err := repo.TopSince(ctx, since, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(222), entries[0].DiscordID)
	assert.Equal(t, int64(200), entries[0].XP)
	assert.Equal(t, int64(111), entries[1].DiscordID)
	assert.Equal(t, int64(80), entries[1].XP)
	assert.Equal(t, int64(333), entries[2].DiscordID)

	t.Run("honors limit", func(t *testing.T) {
		entries, err := repo.TopSince(ctx, since, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("empty window", func(t *testing.T) {
		entries, err := repo.TopSince(ctx, time.Now().Add(time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestXPRepository_ByHouse(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewXPRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, 123456, 60, "100000000000000001"))
	require.NoError(t, repo.Insert(ctx, 123456, 40, "100000000000000001"))
	require.NoError(t, repo.Insert(ctx, 123456, 25, "100000000000000002"))
	require.NoError(t, repo.Insert(ctx, 999999, 500, "100000000000000001"))

	byHouse, err := repo.ByHouse(ctx, 123456)
	require.NoError(t, err)
	require.Len(t, byHouse, 2)

	assert.Equal(t, "100000000000000001", byHouse[0].HouseRoleID)
	assert.Equal(t, int64(100), byHouse[0].XP)
	assert.Equal(t, "100000000000000002", byHouse[1].HouseRoleID)
	assert.Equal(t, int64(25), byHouse[1].XP)
}
