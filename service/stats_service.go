package service

import (
	"context"
	"fmt"
	"time"

	"collegium/catalog"
	"collegium/models"
)

// activityWindow is the trailing window used for leaderboards and the
// activity portion of profiles.
const activityWindow = 30 * 24 * time.Hour

const topSkillLimit = 3

type statsService struct {
	uowFactory UnitOfWorkFactory
	catalog    *catalog.Catalog
}

func NewStatsService(uowFactory UnitOfWorkFactory, cat *catalog.Catalog) StatsService {
	return &statsService{uowFactory: uowFactory, catalog: cat}
}

func (s *statsService) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.XPRepository().TopSince(ctx, time.Now().Add(-activityWindow), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entries, nil
}

func (s *statsService) Profile(ctx context.Context, discordID int64, username string) (*models.Profile, error) {
	since := time.Now().Add(-activityWindow)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := ensureUser(ctx, uow, discordID, username); err != nil {
		return nil, err
	}
	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	totalXP, err := uow.XPRepository().TotalForUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum XP: %w", err)
	}
	byHouse, err := uow.XPRepository().ByHouse(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to group XP by house: %w", err)
	}

	xp30, err := uow.XPRepository().TotalForUserSince(ctx, discordID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum recent XP: %w", err)
	}
	sessions30, err := uow.SessionRepository().CountSince(ctx, discordID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent sessions: %w", err)
	}

	skills30, err := uow.SessionRepository().TopSkillsSince(ctx, discordID, since, topSkillLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank recent skills: %w", err)
	}
	skillsAll, err := uow.SessionRepository().TopSkillsAllTime(ctx, discordID, topSkillLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank skills: %w", err)
	}

	owned, err := uow.LootRepository().OwnedKeys(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned items: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Profile{
		User:         user,
		TotalXP:      totalXP,
		Level:        LevelFromXP(totalXP),
		XPByHouse:    byHouse,
		Activity30d:  models.ActivityStats{XP: xp30, Sessions: sessions30},
		TopSkills30d: skills30,
		TopSkillsAll: skillsAll,
		Collections:  s.collections(owned),
	}, nil
}

// collections tallies owned items against the full catalog, one row per
// house and rarity pair that has items defined.
func (s *statsService) collections(owned map[string]struct{}) []*models.CollectionProgress {
	var out []*models.CollectionProgress
	for _, house := range s.catalog.Houses() {
		for _, rarity := range catalog.RarityOrder {
			items := s.catalog.Items(house, rarity)
			if len(items) == 0 {
				continue
			}
			count := 0
			for _, it := range items {
				if _, has := owned[it.Key]; has {
					count++
				}
			}
			out = append(out, &models.CollectionProgress{
				House:     house,
				Rarity:    string(rarity),
				Owned:     count,
				Total:     len(items),
				Completed: count == len(items),
			})
		}
	}
	return out
}

func (s *statsService) Inventory(ctx context.Context, discordID int64) (int64, []*models.OwnedItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get user: %w", err)
	}
	var gold int64
	if user != nil {
		gold = user.Gold
	}

	items, err := uow.LootRepository().Recent(ctx, discordID, 25)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load loot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return gold, items, nil
}
