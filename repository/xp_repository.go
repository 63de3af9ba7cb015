package repository

import (
	"context"
	"fmt"
	"time"

	"collegium/database"
	"collegium/models"
)

// XPRepository implements the service.XPRepository interface over the
// append-only xp_log table.
type XPRepository struct {
	q queryable
}

// NewXPRepository creates a new XP repository
func NewXPRepository(db *database.DB) *XPRepository {
	return &XPRepository{q: db.Pool}
}

// newXPRepositoryWithTx creates a new XP repository with a transaction
func newXPRepositoryWithTx(tx queryable) *XPRepository {
	return &XPRepository{q: tx}
}

// Insert appends an XP delta for a user
func (r *XPRepository) Insert(ctx context.Context, discordID int64, delta int64, houseRoleID string) error {
	query := `
		INSERT INTO xp_log (discord_id, delta, house_role_id)
		VALUES ($1, $2, $3)
	`

	if _, err := r.q.Exec(ctx, query, discordID, delta, houseRoleID); err != nil {
		return fmt.Errorf("failed to insert XP entry for user %d: %w", discordID, err)
	}

	return nil
}

// TotalForUser returns a user's all-time XP sum
func (r *XPRepository) TotalForUser(ctx context.Context, discordID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM xp_log
		WHERE discord_id = $1
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum XP for user %d: %w", discordID, err)
	}

	return total, nil
}

// TotalForUserSince returns a user's XP sum since the given time
func (r *XPRepository) TotalForUserSince(ctx context.Context, discordID int64, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM xp_log
		WHERE discord_id = $1 AND created_at >= $2
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, discordID, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum recent XP for user %d: %w", discordID, err)
	}

	return total, nil
}

// TopSince returns the highest XP earners since the given time
func (r *XPRepository) TopSince(ctx context.Context, since time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT discord_id, SUM(delta) as xp
		FROM xp_log
		WHERE created_at >= $1
		GROUP BY discord_id
		ORDER BY xp DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.DiscordID, &e.XP); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}

	return entries, nil
}

// ByHouse returns a user's all-time XP grouped by house role
func (r *XPRepository) ByHouse(ctx context.Context, discordID int64) ([]*models.HouseXP, error) {
	query := `
		SELECT house_role_id, SUM(delta) as xp
		FROM xp_log
		WHERE discord_id = $1
		GROUP BY house_role_id
		ORDER BY xp DESC
	`

	rows, err := r.q.Query(ctx, query, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query XP by house for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var out []*models.HouseXP
	for rows.Next() {
		var h models.HouseXP
		if err := rows.Scan(&h.HouseRoleID, &h.XP); err != nil {
			return nil, fmt.Errorf("failed to scan house XP row: %w", err)
		}
		out = append(out, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate house XP rows: %w", err)
	}

	return out, nil
}
