package service

import (
	"context"
	"testing"
	"time"

	"collegium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockXPRepo := new(MockXPRepository)

	mockUoW.SetRepositories(nil, nil, mockXPRepo, nil, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := NewStatsService(mockFactory, testCatalog(t))

	entries := []*models.LeaderboardEntry{
		{DiscordID: 111, XP: 500},
		{DiscordID: 222, XP: 300},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockXPRepo.On("TopSince", ctx, mock.MatchedBy(func(since time.Time) bool {
		// Trailing thirty day window
		return time.Since(since) > 29*24*time.Hour && time.Since(since) < 31*24*time.Hour
	}), 10).Return(entries, nil)

	result, err := service.Leaderboard(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, entries, result)

	mockXPRepo.AssertExpectations(t)
}

func TestStatsService_Profile(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockXPRepo := new(MockXPRepository)
	mockLootRepo := new(MockLootRepository)

	mockUoW.SetRepositories(mockUserRepo, mockSessionRepo, mockXPRepo, mockLootRepo, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := NewStatsService(mockFactory, testCatalog(t))

	user := &models.User{DiscordID: 123456, Username: "testuser", Gold: 120}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(user, nil)
	mockXPRepo.On("TotalForUser", ctx, int64(123456)).Return(int64(180), nil)
	mockXPRepo.On("ByHouse", ctx, int64(123456)).Return([]*models.HouseXP{
		{HouseRoleID: "100000000000000001", XP: 180},
	}, nil)
	mockXPRepo.On("TotalForUserSince", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(int64(90), nil)
	mockSessionRepo.On("CountSince", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(int64(4), nil)
	mockSessionRepo.On("TopSkillsSince", ctx, int64(123456), mock.AnythingOfType("time.Time"), 3).Return([]*models.SkillMinutes{
		{Skill: "Maths", Minutes: 120},
	}, nil)
	mockSessionRepo.On("TopSkillsAllTime", ctx, int64(123456), 3).Return([]*models.SkillMinutes{
		{Skill: "Maths", Minutes: 300},
		{Skill: "Histoire", Minutes: 45},
	}, nil)
	mockLootRepo.On("OwnedKeys", ctx, int64(123456)).Return(map[string]struct{}{
		"mage_grimoire": {},
		"mage_orbe":     {},
	}, nil)

	profile, err := service.Profile(ctx, 123456, "testuser")

	require.NoError(t, err)
	assert.Equal(t, user, profile.User)
	assert.Equal(t, int64(180), profile.TotalXP)
	assert.Equal(t, 1, profile.Level.Level)
	assert.Equal(t, int64(80), profile.Level.Into)
	assert.Equal(t, int64(90), profile.Activity30d.XP)
	assert.Equal(t, int64(4), profile.Activity30d.Sessions)
	assert.Len(t, profile.TopSkills30d, 1)
	assert.Len(t, profile.TopSkillsAll, 2)

	// One collection row per non-empty house and rarity tier
	require.Len(t, profile.Collections, 3)
	common := profile.Collections[0]
	assert.Equal(t, "Mage", common.House)
	assert.Equal(t, "common", common.Rarity)
	assert.Equal(t, 1, common.Owned)
	assert.Equal(t, 2, common.Total)
	assert.False(t, common.Completed)

	rare := profile.Collections[1]
	assert.Equal(t, "rare", rare.Rarity)
	assert.True(t, rare.Completed)

	mockXPRepo.AssertExpectations(t)
	mockSessionRepo.AssertExpectations(t)
}

func TestStatsService_Inventory(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockLootRepo := new(MockLootRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockLootRepo, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := NewStatsService(mockFactory, testCatalog(t))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	items := []*models.OwnedItem{
		{ID: 2, DiscordID: 123456, ItemKey: "mage_orbe", Rarity: "rare"},
		{ID: 1, DiscordID: 123456, ItemKey: "mage_grimoire", Rarity: "common"},
	}

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(&models.User{DiscordID: 123456, Gold: 85}, nil)
	mockLootRepo.On("Recent", ctx, int64(123456), 25).Return(items, nil)

	gold, recent, err := service.Inventory(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, int64(85), gold)
	assert.Equal(t, items, recent)
}

func TestStatsService_Inventory_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockLootRepo := new(MockLootRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockLootRepo, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := NewStatsService(mockFactory, testCatalog(t))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(999)).Return(nil, nil)
	mockLootRepo.On("Recent", ctx, int64(999), 25).Return([]*models.OwnedItem{}, nil)

	gold, recent, err := service.Inventory(ctx, 999)

	require.NoError(t, err)
	assert.Zero(t, gold)
	assert.Empty(t, recent)
}
