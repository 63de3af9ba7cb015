package repository

import (
	"context"
	"errors"
	"fmt"

	"collegium/database"
	"collegium/models"
	"github.com/jackc/pgx/v5"
)

// DailyClaimRepository implements the service.DailyClaimRepository interface
type DailyClaimRepository struct {
	q queryable
}

// NewDailyClaimRepository creates a new daily claim repository
func NewDailyClaimRepository(db *database.DB) *DailyClaimRepository {
	return &DailyClaimRepository{q: db.Pool}
}

// newDailyClaimRepositoryWithTx creates a new daily claim repository with a transaction
func newDailyClaimRepositoryWithTx(tx queryable) *DailyClaimRepository {
	return &DailyClaimRepository{q: tx}
}

// Get retrieves a user's claim row, or nil if they never claimed
func (r *DailyClaimRepository) Get(ctx context.Context, discordID int64) (*models.DailyClaim, error) {
	query := `
		SELECT discord_id, last_claim_at, streak
		FROM daily_claims
		WHERE discord_id = $1
	`

	var claim models.DailyClaim
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&claim.DiscordID,
		&claim.LastClaimAt,
		&claim.Streak,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily claim for user %d: %w", discordID, err)
	}

	return &claim, nil
}

// Upsert writes the claim row, overwriting any previous one
func (r *DailyClaimRepository) Upsert(ctx context.Context, claim *models.DailyClaim) error {
	query := `
		INSERT INTO daily_claims (discord_id, last_claim_at, streak)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id)
		DO UPDATE SET last_claim_at = EXCLUDED.last_claim_at, streak = EXCLUDED.streak
	`

	if _, err := r.q.Exec(ctx, query, claim.DiscordID, claim.LastClaimAt, claim.Streak); err != nil {
		return fmt.Errorf("failed to upsert daily claim for user %d: %w", claim.DiscordID, err)
	}

	return nil
}
