package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"collegium/catalog"
	"collegium/events"
	"collegium/models"
)

// EpochDay is the UTC calendar day key used to scope shop offers.
func EpochDay(t time.Time) int {
	return int(t.UnixMilli() / 86_400_000)
}

// offerSlotRarities are the target tiers of a generated offer set.
var offerSlotRarities = []catalog.Rarity{catalog.RarityCommon, catalog.RarityRare, catalog.RarityEpic}

type shopService struct {
	uowFactory    UnitOfWorkFactory
	catalog       *catalog.Catalog
	houses        HouseDirectory
	retentionDays int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewShopService creates the shop service. Offers older than
// retentionDays are purged opportunistically when the shop is opened.
func NewShopService(uowFactory UnitOfWorkFactory, cat *catalog.Catalog, houses HouseDirectory, rng *rand.Rand, retentionDays int) ShopService {
	return &shopService{
		uowFactory:    uowFactory,
		catalog:       cat,
		houses:        houses,
		retentionDays: retentionDays,
		rng:           rng,
	}
}

func (s *shopService) Offers(ctx context.Context, discordID int64, username, houseRoleID string) ([]*models.ShopOffer, error) {
	now := time.Now()
	day := EpochDay(now)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := ensureUser(ctx, uow, discordID, username); err != nil {
		return nil, err
	}

	offers, err := uow.ShopOfferRepository().GetForUserDay(ctx, discordID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	if len(offers) == 0 {
		if err := s.generateOffers(ctx, uow, discordID, houseRoleID, day); err != nil {
			return nil, err
		}
		offers, err = uow.ShopOfferRepository().GetForUserDay(ctx, discordID, day)
		if err != nil {
			return nil, fmt.Errorf("failed to reload offers: %w", err)
		}
	}

	// Opportunistic purge of stale offer rows
	if _, err := uow.ShopOfferRepository().DeleteOlderThan(ctx, day-s.retentionDays); err != nil {
		return nil, fmt.Errorf("failed to purge old offers: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return offers, nil
}

// generateOffers creates the daily offer set: one collectible per target
// rarity drawn from items the user does not own (with adjacent-rarity
// fallback), plus the forced XP potion consumable.
func (s *shopService) generateOffers(ctx context.Context, uow UnitOfWork, discordID int64, houseRoleID string, day int) error {
	owned, err := uow.LootRepository().OwnedKeys(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to load owned items: %w", err)
	}

	// Copy so items picked for earlier slots are excluded from later ones
	taken := make(map[string]struct{}, len(owned))
	for k := range owned {
		taken[k] = struct{}{}
	}

	house := s.houses.Name(houseRoleID)
	for _, rarity := range offerSlotRarities {
		item := s.pickOffer(taken, house, rarity)
		if item == nil {
			continue
		}
		taken[item.Key] = struct{}{}

		if err := uow.ShopOfferRepository().Insert(ctx, &models.ShopOffer{
			DiscordID:   discordID,
			Day:         day,
			ItemKey:     item.Key,
			Rarity:      string(item.Rarity),
			Price:       catalog.Prices[item.Rarity],
			HouseRoleID: houseRoleID,
		}); err != nil {
			return fmt.Errorf("failed to insert offer: %w", err)
		}
	}

	// Daily XP potion, outside the rarity logic
	if err := uow.ShopOfferRepository().Insert(ctx, &models.ShopOffer{
		DiscordID:   discordID,
		Day:         day,
		ItemKey:     catalog.XPPotionKey,
		Rarity:      string(catalog.RarityCommon),
		Price:       catalog.XPPotionPrice,
		HouseRoleID: houseRoleID,
	}); err != nil {
		return fmt.Errorf("failed to insert potion offer: %w", err)
	}

	return nil
}

// pickOffer selects an unowned item for a slot, trying the target rarity
// first, then lower tiers, then higher ones.
func (s *shopService) pickOffer(taken map[string]struct{}, house string, target catalog.Rarity) *catalog.Item {
	s.mu.Lock()
	pick := s.rng.Float64()
	s.mu.Unlock()

	if item := pickEligible(s.catalog, taken, house, target, pick); item != nil {
		return item
	}

	for tier := target.Index() + 1; tier < len(catalog.RarityOrder); tier++ {
		eligible := unownedAt(s.catalog, taken, house, catalog.RarityOrder[tier])
		if len(eligible) > 0 {
			item := eligible[int(pick*float64(len(eligible)))]
			return &item
		}
	}
	return nil
}

func unownedAt(cat *catalog.Catalog, taken map[string]struct{}, house string, rarity catalog.Rarity) []catalog.Item {
	var eligible []catalog.Item
	for _, it := range cat.Items(house, rarity) {
		if _, has := taken[it.Key]; !has {
			eligible = append(eligible, it)
		}
	}
	return eligible
}

func (s *shopService) Purchase(ctx context.Context, discordID int64, offerID int64) (*models.PurchaseResult, error) {
	now := time.Now()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	offer, err := uow.ShopOfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if offer.DiscordID != discordID {
		return nil, ErrNotYourOffer
	}
	if offer.Purchased() {
		return nil, ErrOfferAlreadyPurchased
	}

	if err := uow.UserRepository().DeductGold(ctx, discordID, offer.Price); err != nil {
		return nil, err
	}
	uow.EventBus().Publish(events.GoldChangedEvent{
		DiscordID: discordID,
		Delta:     -offer.Price,
		Source:    "shop",
	})

	if err := uow.ShopOfferRepository().MarkPurchased(ctx, offer.ID, now); err != nil {
		return nil, err
	}

	result := &models.PurchaseResult{Offer: offer}

	if offer.ItemKey == catalog.XPPotionKey {
		if _, err := awardXP(ctx, uow, discordID, catalog.XPPotionXP, offer.HouseRoleID, "potion"); err != nil {
			return nil, err
		}
		result.XPGranted = catalog.XPPotionXP
	} else {
		if err := uow.LootRepository().Insert(ctx, &models.OwnedItem{
			DiscordID:   discordID,
			ItemKey:     offer.ItemKey,
			Rarity:      offer.Rarity,
			HouseRoleID: offer.HouseRoleID,
			ObtainedAt:  now,
		}); err != nil {
			return nil, fmt.Errorf("failed to record loot: %w", err)
		}
		uow.EventBus().Publish(events.LootDroppedEvent{
			DiscordID: discordID,
			ItemKey:   offer.ItemKey,
			Rarity:    offer.Rarity,
			Source:    "shop",
		})
	}

	gold, err := uow.UserRepository().GetGold(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to read gold balance: %w", err)
	}
	result.GoldRemaining = gold

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}
