package service

import (
	"context"
	"time"

	"collegium/events"
	"collegium/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, discordID int64, username string) (*models.User, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddGold(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DeductGold(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) GetGold(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) CountSince(ctx context.Context, discordID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, discordID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) TopSkillsSince(ctx context.Context, discordID int64, since time.Time, limit int) ([]*models.SkillMinutes, error) {
	args := m.Called(ctx, discordID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SkillMinutes), args.Error(1)
}

func (m *MockSessionRepository) TopSkillsAllTime(ctx context.Context, discordID int64, limit int) ([]*models.SkillMinutes, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SkillMinutes), args.Error(1)
}

// MockXPRepository is a mock implementation of XPRepository
type MockXPRepository struct {
	mock.Mock
}

func (m *MockXPRepository) Insert(ctx context.Context, discordID int64, delta int64, houseRoleID string) error {
	args := m.Called(ctx, discordID, delta, houseRoleID)
	return args.Error(0)
}

func (m *MockXPRepository) TotalForUser(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockXPRepository) TotalForUserSince(ctx context.Context, discordID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, discordID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockXPRepository) TopSince(ctx context.Context, since time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockXPRepository) ByHouse(ctx context.Context, discordID int64) ([]*models.HouseXP, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HouseXP), args.Error(1)
}

// MockLootRepository is a mock implementation of LootRepository
type MockLootRepository struct {
	mock.Mock
}

func (m *MockLootRepository) OwnedKeys(ctx context.Context, discordID int64) (map[string]struct{}, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockLootRepository) Insert(ctx context.Context, item *models.OwnedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockLootRepository) Recent(ctx context.Context, discordID int64, limit int) ([]*models.OwnedItem, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OwnedItem), args.Error(1)
}

// MockDailyClaimRepository is a mock implementation of DailyClaimRepository
type MockDailyClaimRepository struct {
	mock.Mock
}

func (m *MockDailyClaimRepository) Get(ctx context.Context, discordID int64) (*models.DailyClaim, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyClaim), args.Error(1)
}

func (m *MockDailyClaimRepository) Upsert(ctx context.Context, claim *models.DailyClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

// MockShopOfferRepository is a mock implementation of ShopOfferRepository
type MockShopOfferRepository struct {
	mock.Mock
}

func (m *MockShopOfferRepository) GetForUserDay(ctx context.Context, discordID int64, day int) ([]*models.ShopOffer, error) {
	args := m.Called(ctx, discordID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ShopOffer), args.Error(1)
}

func (m *MockShopOfferRepository) GetByID(ctx context.Context, id int64) (*models.ShopOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopOffer), args.Error(1)
}

func (m *MockShopOfferRepository) Insert(ctx context.Context, offer *models.ShopOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockShopOfferRepository) MarkPurchased(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockShopOfferRepository) DeleteOlderThan(ctx context.Context, day int) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// recordingPublisher collects events for assertion without mock setup
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. The repositories
// it hands out are configured with SetRepositories; Begin/Commit/Rollback
// expectations are set the usual way.
type MockUnitOfWork struct {
	mock.Mock

	userRepo       UserRepository
	sessionRepo    SessionRepository
	xpRepo         XPRepository
	lootRepo       LootRepository
	dailyClaimRepo DailyClaimRepository
	shopOfferRepo  ShopOfferRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repository mocks the unit of work should
// return. Pass nil for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(
	user UserRepository,
	session SessionRepository,
	xp XPRepository,
	loot LootRepository,
	dailyClaim DailyClaimRepository,
	shopOffer ShopOfferRepository,
) {
	m.userRepo = user
	m.sessionRepo = session
	m.xpRepo = xp
	m.lootRepo = loot
	m.dailyClaimRepo = dailyClaim
	m.shopOfferRepo = shopOffer
}

// SetEventBus wires the event publisher the unit of work should return.
// Tests that ignore events can pass a fresh recordingPublisher.
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) SessionRepository() SessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) XPRepository() XPRepository {
	return m.xpRepo
}

func (m *MockUnitOfWork) LootRepository() LootRepository {
	return m.lootRepo
}

func (m *MockUnitOfWork) DailyClaimRepository() DailyClaimRepository {
	return m.dailyClaimRepo
}

func (m *MockUnitOfWork) ShopOfferRepository() ShopOfferRepository {
	return m.shopOfferRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		m.eventBus = &recordingPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
