package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"collegium/events"
	"collegium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testHouses() HouseDirectory {
	return HouseDirectory{"100000000000000001": "Mage"}
}

func allOwned() map[string]struct{} {
	return map[string]struct{}{
		"mage_grimoire": {},
		"mage_fiole":    {},
		"mage_orbe":     {},
		"mage_baton":    {},
	}
}

func TestFocusService_Start_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	_, err := service.Start(ctx, 123456, 0, "Maths", "", "100000000000000001")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Start(ctx, 123456, MaxSessionMinutes+1, "Maths", "", "100000000000000001")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFocusService_Start_RejectsSecondSession(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	session, err := service.Start(ctx, 123456, 30, "Maths", "Intégrales", "100000000000000001")
	require.NoError(t, err)
	assert.Equal(t, 30, session.Minutes)
	assert.Equal(t, "Maths", session.Skill)

	_, err = service.Start(ctx, 123456, 45, "Maths", "", "100000000000000001")
	assert.ErrorIs(t, err, ErrSessionAlreadyRunning)

	// Another user is unaffected
	_, err = service.Start(ctx, 999999, 45, "Histoire", "", "")
	assert.NoError(t, err)
}

func TestFocusService_Start_DefaultsSkill(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	session, err := service.Start(ctx, 123456, 25, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Général", session.Skill)
}

func TestFocusService_Validate_NoActiveSession(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	_, err := service.Validate(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestFocusService_Validate_TooEarly(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	_, err := service.Start(ctx, 123456, 60, "Maths", "", "100000000000000001")
	require.NoError(t, err)

	_, err = service.Validate(ctx, 123456)

	var tooEarly *TooEarlyError
	require.ErrorAs(t, err, &tooEarly)
	assert.Greater(t, tooEarly.Remaining, 59*time.Minute)
	assert.ErrorIs(t, err, ErrStateConflict)

	// The session stays registered for a later validate
	assert.NotNil(t, service.Active(123456))
}

func TestFocusService_Validate_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockXPRepo := new(MockXPRepository)
	mockLootRepo := new(MockLootRepository)

	mockUoW.SetRepositories(mockUserRepo, mockSessionRepo, mockXPRepo, mockLootRepo, nil, nil)
	recorder := &recordingPublisher{}
	mockUoW.SetEventBus(recorder)

	service := &focusService{
		uowFactory: mockFactory,
		registry:   newSessionRegistry(),
		roller:     NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))),
		houses:     testHouses(),
	}

	// An ended 30 minute session
	now := time.Now()
	require.NoError(t, service.registry.Put(&ActiveSession{
		DiscordID:   123456,
		StartedAt:   now.Add(-30 * time.Minute),
		TargetEnd:   now.Add(-5 * time.Minute),
		Minutes:     25,
		Skill:       "Maths",
		Subject:     "Intégrales",
		HouseRoleID: "100000000000000001",
	}))

	existingUser := &models.User{DiscordID: 123456, Username: "testuser", Gold: 10}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existingUser, nil)
	mockSessionRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		return s.DiscordID == 123456 &&
			s.Status == models.SessionStatusDone &&
			s.DurationMin == 30 &&
			s.Skill == "Maths" &&
			s.Subject == "Intégrales"
	})).Return(nil)
	mockXPRepo.On("Insert", ctx, int64(123456), int64(30), "100000000000000001").Return(nil)
	mockXPRepo.On("TotalForUser", ctx, int64(123456)).Return(int64(130), nil)
	mockUserRepo.On("AddGold", ctx, int64(123456), int64(2)).Return(nil)
	// Everything owned, so the loot roll cannot produce a drop
	mockLootRepo.On("OwnedKeys", ctx, int64(123456)).Return(allOwned(), nil)

	result, err := service.Validate(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusDone, result.Status)
	assert.Equal(t, 30, result.ElapsedMin)
	assert.Equal(t, int64(30), result.XP)
	assert.Equal(t, int64(2), result.Gold)
	assert.Nil(t, result.Drop)

	// Session is consumed
	assert.Nil(t, service.Active(123456))

	// XP award carries the post-insert total and a gold event follows
	require.NotEmpty(t, recorder.published)
	var sawXP, sawGold bool
	for _, ev := range recorder.published {
		switch e := ev.(type) {
		case events.XPAwardedEvent:
			sawXP = true
			assert.Equal(t, int64(30), e.Delta)
			assert.Equal(t, int64(130), e.TotalXP)
			assert.Equal(t, "focus", e.Source)
		case events.GoldChangedEvent:
			sawGold = true
			assert.Equal(t, int64(2), e.Delta)
		}
	}
	assert.True(t, sawXP)
	assert.True(t, sawGold)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockSessionRepo.AssertExpectations(t)
	mockXPRepo.AssertExpectations(t)
	mockLootRepo.AssertExpectations(t)
}

func TestFocusService_Abort_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockXPRepo := new(MockXPRepository)

	mockUoW.SetRepositories(mockUserRepo, mockSessionRepo, mockXPRepo, nil, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := &focusService{
		uowFactory: mockFactory,
		registry:   newSessionRegistry(),
		roller:     NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))),
		houses:     testHouses(),
	}

	now := time.Now()
	require.NoError(t, service.registry.Put(&ActiveSession{
		DiscordID:   123456,
		StartedAt:   now.Add(-10 * time.Minute),
		TargetEnd:   now.Add(50 * time.Minute),
		Minutes:     60,
		Skill:       "Maths",
		HouseRoleID: "100000000000000001",
	}))

	existingUser := &models.User{DiscordID: 123456, Username: "testuser"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existingUser, nil)
	mockSessionRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		return s.Status == models.SessionStatusAborted && s.DurationMin == 10
	})).Return(nil)
	mockXPRepo.On("Insert", ctx, int64(123456), int64(3), "100000000000000001").Return(nil)
	mockXPRepo.On("TotalForUser", ctx, int64(123456)).Return(int64(3), nil)

	result, err := service.Abort(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAborted, result.Status)
	assert.Equal(t, 10, result.ElapsedMin)
	assert.Equal(t, int64(3), result.XP)
	assert.Zero(t, result.Gold)
	assert.Nil(t, result.Drop)

	assert.Nil(t, service.Active(123456))

	// No gold is credited on abort
	mockUserRepo.AssertNotCalled(t, "AddGold")

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockSessionRepo.AssertExpectations(t)
	mockXPRepo.AssertExpectations(t)
}

func TestFocusService_Abort_NoActiveSession(t *testing.T) {
	ctx := context.Background()
	service := NewFocusService(new(MockUnitOfWorkFactory), NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))), testHouses())

	_, err := service.Abort(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestFocusService_Validate_SessionCreateErrorRollsBack(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockSessionRepo := new(MockSessionRepository)

	mockUoW.SetRepositories(mockUserRepo, mockSessionRepo, nil, nil, nil, nil)
	mockUoW.SetEventBus(&recordingPublisher{})

	service := &focusService{
		uowFactory: mockFactory,
		registry:   newSessionRegistry(),
		roller:     NewLootRoller(testCatalog(t), rand.New(rand.NewSource(1))),
		houses:     testHouses(),
	}

	now := time.Now()
	require.NoError(t, service.registry.Put(&ActiveSession{
		DiscordID: 123456,
		StartedAt: now.Add(-30 * time.Minute),
		TargetEnd: now.Add(-5 * time.Minute),
		Minutes:   25,
		Skill:     "Maths",
	}))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123456)).Return(&models.User{DiscordID: 123456}, nil)
	mockSessionRepo.On("Create", ctx, mock.Anything).Return(errors.New("database error"))

	_, err := service.Validate(ctx, 123456)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record session")

	mockUoW.AssertNotCalled(t, "Commit")
}
