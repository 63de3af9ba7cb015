package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collegium/database"
	"collegium/models"
	"collegium/service"
	"github.com/jackc/pgx/v5"
)

// ShopOfferRepository implements the service.ShopOfferRepository interface
type ShopOfferRepository struct {
	q queryable
}

// NewShopOfferRepository creates a new shop offer repository
func NewShopOfferRepository(db *database.DB) *ShopOfferRepository {
	return &ShopOfferRepository{q: db.Pool}
}

// newShopOfferRepositoryWithTx creates a new shop offer repository with a transaction
func newShopOfferRepositoryWithTx(tx queryable) *ShopOfferRepository {
	return &ShopOfferRepository{q: tx}
}

const offerColumns = `id, discord_id, day, item_key, rarity, price, house_role_id, purchased_at, created_at`

func scanOffer(row pgx.Row) (*models.ShopOffer, error) {
	var offer models.ShopOffer
	err := row.Scan(
		&offer.ID,
		&offer.DiscordID,
		&offer.Day,
		&offer.ItemKey,
		&offer.Rarity,
		&offer.Price,
		&offer.HouseRoleID,
		&offer.PurchasedAt,
		&offer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetForUserDay returns the offers generated for (user, day), oldest first
func (r *ShopOfferRepository) GetForUserDay(ctx context.Context, discordID int64, day int) ([]*models.ShopOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM shop_offers
		WHERE discord_id = $1 AND day = $2
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, discordID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers for user %d day %d: %w", discordID, day, err)
	}
	defer rows.Close()

	var offers []*models.ShopOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offer rows: %w", err)
	}

	return offers, nil
}

// GetByID retrieves an offer by its ID, or nil if absent
func (r *ShopOfferRepository) GetByID(ctx context.Context, id int64) (*models.ShopOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM shop_offers
		WHERE id = $1
	`

	offer, err := scanOffer(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer %d: %w", id, err)
	}

	return offer, nil
}

// Insert persists a newly generated offer
func (r *ShopOfferRepository) Insert(ctx context.Context, offer *models.ShopOffer) error {
	query := `
		INSERT INTO shop_offers (discord_id, day, item_key, rarity, price, house_role_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		offer.DiscordID,
		offer.Day,
		offer.ItemKey,
		offer.Rarity,
		offer.Price,
		offer.HouseRoleID,
	).Scan(&offer.ID, &offer.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert offer %s for user %d: %w", offer.ItemKey, offer.DiscordID, err)
	}

	return nil
}

// MarkPurchased flags an unpurchased offer as bought. The purchased_at guard
// makes a second purchase of the same offer fail even across connections.
func (r *ShopOfferRepository) MarkPurchased(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE shop_offers
		SET purchased_at = $1
		WHERE id = $2 AND purchased_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark offer %d purchased: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrOfferAlreadyPurchased
	}

	return nil
}

// DeleteOlderThan removes offers generated before the given day key
func (r *ShopOfferRepository) DeleteOlderThan(ctx context.Context, day int) (int64, error) {
	query := `
		DELETE FROM shop_offers
		WHERE day < $1
	`

	result, err := r.q.Exec(ctx, query, day)
	if err != nil {
		return 0, fmt.Errorf("failed to delete offers older than day %d: %w", day, err)
	}

	return result.RowsAffected(), nil
}
