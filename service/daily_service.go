package service

import (
	"context"
	"fmt"
	"time"

	"collegium/events"
	"collegium/models"
)

type dailyService struct {
	uowFactory UnitOfWorkFactory
	roller     *LootRoller
	houses     HouseDirectory
}

// NewDailyService creates the daily reward service.
func NewDailyService(uowFactory UnitOfWorkFactory, roller *LootRoller, houses HouseDirectory) DailyService {
	return &dailyService{
		uowFactory: uowFactory,
		roller:     roller,
		houses:     houses,
	}
}

func (s *dailyService) Claim(ctx context.Context, discordID int64, username, houseRoleID string) (*models.DailyReward, error) {
	now := time.Now()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claim, err := uow.DailyClaimRepository().Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim state: %w", err)
	}

	var lastClaim time.Time
	streak := 0
	if claim != nil {
		lastClaim = claim.LastClaimAt
		streak = claim.Streak

		if elapsed := now.Sub(lastClaim); elapsed < DailyCooldown {
			return nil, &CooldownError{Remaining: DailyCooldown - elapsed}
		}
	}

	streak = NextStreak(lastClaim, streak, now)
	gold := DailyGold(streak)
	xp := DailyXP(streak)

	if err := ensureUser(ctx, uow, discordID, username); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().AddGold(ctx, discordID, gold); err != nil {
		return nil, fmt.Errorf("failed to credit gold: %w", err)
	}
	uow.EventBus().Publish(events.GoldChangedEvent{
		DiscordID: discordID,
		Delta:     gold,
		Source:    "daily",
	})

	if _, err := awardXP(ctx, uow, discordID, xp, houseRoleID, "daily"); err != nil {
		return nil, err
	}

	drop, err := rollAndStore(ctx, uow, s.roller, s.houses, discordID, houseRoleID, DropSourceDaily, 0, now)
	if err != nil {
		return nil, err
	}

	if err := uow.DailyClaimRepository().Upsert(ctx, &models.DailyClaim{
		DiscordID:   discordID,
		LastClaimAt: now,
		Streak:      streak,
	}); err != nil {
		return nil, fmt.Errorf("failed to record claim: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DailyReward{
		Gold:   gold,
		XP:     xp,
		Streak: streak,
		Drop:   drop,
	}, nil
}

func (s *dailyService) Status(ctx context.Context, discordID int64) (*models.DailyClaim, time.Duration, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claim, err := uow.DailyClaimRepository().Get(ctx, discordID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load claim state: %w", err)
	}
	if claim == nil {
		return nil, 0, nil
	}

	remaining := DailyCooldown - time.Since(claim.LastClaimAt)
	if remaining < 0 {
		remaining = 0
	}
	return claim, remaining, nil
}
