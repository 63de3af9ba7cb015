package repository

import (
	"context"
	"fmt"

	"collegium/database"
	"collegium/models"
)

// LootRepository implements the service.LootRepository interface
type LootRepository struct {
	q queryable
}

// NewLootRepository creates a new loot repository
func NewLootRepository(db *database.DB) *LootRepository {
	return &LootRepository{q: db.Pool}
}

// newLootRepositoryWithTx creates a new loot repository with a transaction
func newLootRepositoryWithTx(tx queryable) *LootRepository {
	return &LootRepository{q: tx}
}

// OwnedKeys returns the set of item keys the user owns
func (r *LootRepository) OwnedKeys(ctx context.Context, discordID int64) (map[string]struct{}, error) {
	query := `
		SELECT item_key
		FROM loot
		WHERE discord_id = $1
	`

	rows, err := r.q.Query(ctx, query, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query owned items for user %d: %w", discordID, err)
	}
	defer rows.Close()

	owned := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan item key: %w", err)
		}
		owned[key] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item keys: %w", err)
	}

	return owned, nil
}

// Insert records a new loot ownership. The loot_user_item_unique constraint
// rejects duplicates per (user, item).
func (r *LootRepository) Insert(ctx context.Context, item *models.OwnedItem) error {
	query := `
		INSERT INTO loot (discord_id, item_key, rarity, house_role_id, obtained_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		item.DiscordID,
		item.ItemKey,
		item.Rarity,
		item.HouseRoleID,
		item.ObtainedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to insert loot %s for user %d: %w", item.ItemKey, item.DiscordID, err)
	}

	return nil
}

// Recent returns the user's most recently obtained items
func (r *LootRepository) Recent(ctx context.Context, discordID int64, limit int) ([]*models.OwnedItem, error) {
	query := `
		SELECT id, discord_id, item_key, rarity, house_role_id, obtained_at
		FROM loot
		WHERE discord_id = $1
		ORDER BY obtained_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loot for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var items []*models.OwnedItem
	for rows.Next() {
		var item models.OwnedItem
		if err := rows.Scan(
			&item.ID,
			&item.DiscordID,
			&item.ItemKey,
			&item.Rarity,
			&item.HouseRoleID,
			&item.ObtainedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loot row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loot rows: %w", err)
	}

	return items, nil
}
