package service

import (
	"context"
	"time"

	"collegium/events"
	"collegium/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID, or nil if absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// Create creates a new user with zero gold
	Create(ctx context.Context, discordID int64, username string) (*models.User, error)

	// AddGold credits gold to a user atomically
	AddGold(ctx context.Context, discordID int64, amount int64) error

	// DeductGold debits gold atomically, failing with ErrInsufficientFunds
	// if the balance does not cover the amount
	DeductGold(ctx context.Context, discordID int64, amount int64) error

	// GetGold returns a user's current gold balance
	GetGold(ctx context.Context, discordID int64) (int64, error)
}

// SessionRepository defines the interface for focus session records
type SessionRepository interface {
	// Create persists a terminal (done or aborted) session
	Create(ctx context.Context, session *models.Session) error

	// CountSince counts a user's sessions recorded since the given time
	CountSince(ctx context.Context, discordID int64, since time.Time) (int64, error)

	// TopSkillsSince returns skills ranked by focus minutes since the given time
	TopSkillsSince(ctx context.Context, discordID int64, since time.Time, limit int) ([]*models.SkillMinutes, error)

	// TopSkillsAllTime returns skills ranked by all-time focus minutes
	TopSkillsAllTime(ctx context.Context, discordID int64, limit int) ([]*models.SkillMinutes, error)
}

// XPRepository defines the interface for the append-only XP ledger
type XPRepository interface {
	// Insert appends an XP delta for a user
	Insert(ctx context.Context, discordID int64, delta int64, houseRoleID string) error

	// TotalForUser returns a user's all-time XP sum
	TotalForUser(ctx context.Context, discordID int64) (int64, error)

	// TotalForUserSince returns a user's XP sum since the given time
	TotalForUserSince(ctx context.Context, discordID int64, since time.Time) (int64, error)

	// TopSince returns the highest XP earners since the given time
	TopSince(ctx context.Context, since time.Time, limit int) ([]*models.LeaderboardEntry, error)

	// ByHouse returns a user's all-time XP grouped by house role
	ByHouse(ctx context.Context, discordID int64) ([]*models.HouseXP, error)
}

// LootRepository defines the interface for loot ownership records
type LootRepository interface {
	// OwnedKeys returns the set of item keys the user owns
	OwnedKeys(ctx context.Context, discordID int64) (map[string]struct{}, error)

	// Insert records a new loot ownership; fails on duplicate (user, item)
	Insert(ctx context.Context, item *models.OwnedItem) error

	// Recent returns the user's most recently obtained items
	Recent(ctx context.Context, discordID int64, limit int) ([]*models.OwnedItem, error)
}

// DailyClaimRepository defines the interface for daily claim state
type DailyClaimRepository interface {
	// Get retrieves a user's claim row, or nil if they never claimed
	Get(ctx context.Context, discordID int64) (*models.DailyClaim, error)

	// Upsert writes the claim row, overwriting any previous one
	Upsert(ctx context.Context, claim *models.DailyClaim) error
}

// ShopOfferRepository defines the interface for per-user daily shop offers
type ShopOfferRepository interface {
	// GetForUserDay returns the offers generated for (user, day), oldest first
	GetForUserDay(ctx context.Context, discordID int64, day int) ([]*models.ShopOffer, error)

	// GetByID retrieves an offer by its ID, or nil if absent
	GetByID(ctx context.Context, id int64) (*models.ShopOffer, error)

	// Insert persists a newly generated offer
	Insert(ctx context.Context, offer *models.ShopOffer) error

	// MarkPurchased flags an unpurchased offer as bought; fails with
	// ErrOfferAlreadyPurchased if the purchased flag was already set
	MarkPurchased(ctx context.Context, id int64, at time.Time) error

	// DeleteOlderThan removes offers generated before the given day key
	DeleteOlderThan(ctx context.Context, day int) (int64, error)
}

// EventPublisher publishes events within a unit of work; they are emitted
// only after the transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents a transactional boundary over the repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	SessionRepository() SessionRepository
	XPRepository() XPRepository
	LootRepository() LootRepository
	DailyClaimRepository() DailyClaimRepository
	ShopOfferRepository() ShopOfferRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates one with zero gold
	GetOrCreateUser(ctx context.Context, discordID int64, username string) (*models.User, error)
}

// FocusService drives the focus session state machine
type FocusService interface {
	// Start registers a running session; fails with ErrSessionAlreadyRunning
	// if the user already has one
	Start(ctx context.Context, discordID int64, minutes int, skill, subject, houseRoleID string) (*ActiveSession, error)

	// Validate completes a session after its target end, credits full XP and
	// gold, rolls loot, and commits everything in one transaction
	Validate(ctx context.Context, discordID int64) (*models.SessionResult, error)

	// Abort ends a session early for reduced XP, no gold and no loot
	Abort(ctx context.Context, discordID int64) (*models.SessionResult, error)

	// Active returns the user's running session, or nil
	Active(discordID int64) *ActiveSession
}

// DailyService handles the daily reward claim
type DailyService interface {
	// Claim grants the daily reward, advancing or resetting the streak;
	// fails with a CooldownError inside the cooldown window
	Claim(ctx context.Context, discordID int64, username, houseRoleID string) (*models.DailyReward, error)

	// Status returns the user's claim row (nil if never claimed) and the
	// remaining cooldown (zero when claimable)
	Status(ctx context.Context, discordID int64) (*models.DailyClaim, time.Duration, error)
}

// ShopService generates daily offers and handles purchases
type ShopService interface {
	// Offers returns the user's offers for today, generating them first if
	// needed; repeated calls within a day return the same set
	Offers(ctx context.Context, discordID int64, username, houseRoleID string) ([]*models.ShopOffer, error)

	// Purchase buys an offer: checks ownership of the offer, purchase state
	// and gold, then debits, marks purchased, and grants the item or XP,
	// all within one transaction
	Purchase(ctx context.Context, discordID int64, offerID int64) (*models.PurchaseResult, error)
}

// StatsService aggregates read-only views: profile, leaderboard, inventory
type StatsService interface {
	// Leaderboard returns the top XP earners over the trailing 30 days
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// Profile assembles the character sheet for a user
	Profile(ctx context.Context, discordID int64, username string) (*models.Profile, error)

	// Inventory returns gold plus the most recent loot
	Inventory(ctx context.Context, discordID int64) (int64, []*models.OwnedItem, error)
}
