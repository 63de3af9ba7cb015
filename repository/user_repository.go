package repository

import (
	"context"
	"errors"
	"fmt"

	"collegium/database"
	"collegium/models"
	"collegium/service"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `
		SELECT discord_id, username, gold, created_at, updated_at
		FROM users
		WHERE discord_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Gold,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// Create creates a new user with zero gold
func (r *UserRepository) Create(ctx context.Context, discordID int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		RETURNING discord_id, username, gold, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, username).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Gold,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user with discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// AddGold credits gold to a user atomically
func (r *UserRepository) AddGold(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET gold = gold + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to add gold for user %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with discord ID %d not found", discordID)
	}

	return nil
}

// DeductGold debits gold atomically, failing if the balance does not cover it
func (r *UserRepository) DeductGold(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET gold = gold - $1, updated_at = NOW()
		WHERE discord_id = $2 AND gold >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to deduct gold for user %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		user, err := r.GetByDiscordID(ctx, discordID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user with discord ID %d not found", discordID)
		}
		return fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientFunds, user.Gold, amount)
	}

	return nil
}

// GetGold returns a user's current gold balance
func (r *UserRepository) GetGold(ctx context.Context, discordID int64) (int64, error) {
	query := `
		SELECT gold
		FROM users
		WHERE discord_id = $1
	`

	var gold int64
	err := r.q.QueryRow(ctx, query, discordID).Scan(&gold)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user with discord ID %d not found", discordID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get gold for user %d: %w", discordID, err)
	}

	return gold, nil
}
