package service

import (
	"context"
	"fmt"
	"time"

	"collegium/catalog"
	"collegium/events"
	"collegium/models"
)

// HouseDirectory maps Discord role IDs to house names. Unknown or empty
// role IDs fall back to the adventurer pool.
type HouseDirectory map[string]string

// Name resolves a role ID to its house name.
func (d HouseDirectory) Name(roleID string) string {
	if name, ok := d[roleID]; ok {
		return name
	}
	return catalog.FallbackHouse
}

type focusService struct {
	uowFactory UnitOfWorkFactory
	registry   *sessionRegistry
	roller     *LootRoller
	houses     HouseDirectory
}

// NewFocusService creates the focus session service.
func NewFocusService(uowFactory UnitOfWorkFactory, roller *LootRoller, houses HouseDirectory) FocusService {
	return &focusService{
		uowFactory: uowFactory,
		registry:   newSessionRegistry(),
		roller:     roller,
		houses:     houses,
	}
}

func (s *focusService) Start(ctx context.Context, discordID int64, minutes int, skill, subject, houseRoleID string) (*ActiveSession, error) {
	if minutes < MinSessionMinutes || minutes > MaxSessionMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes", ErrValidation, MinSessionMinutes, MaxSessionMinutes)
	}
	if skill == "" {
		skill = "Général"
	}

	now := time.Now()
	session := &ActiveSession{
		DiscordID:   discordID,
		StartedAt:   now,
		TargetEnd:   now.Add(time.Duration(minutes) * time.Minute),
		Minutes:     minutes,
		Skill:       skill,
		Subject:     subject,
		HouseRoleID: houseRoleID,
	}

	if err := s.registry.Put(session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *focusService) Validate(ctx context.Context, discordID int64) (*models.SessionResult, error) {
	now := time.Now()

	session, remaining := s.registry.TakeIfEnded(discordID, now)
	if session == nil {
		if remaining > 0 {
			return nil, &TooEarlyError{Remaining: remaining}
		}
		return nil, ErrNoActiveSession
	}

	elapsed := ElapsedMinutes(session.StartedAt, now)
	xp := SessionXP(elapsed)
	gold := SessionGold(elapsed)

	result := &models.SessionResult{
		Status:     models.SessionStatusDone,
		ElapsedMin: elapsed,
		XP:         xp,
		Gold:       gold,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := ensureUser(ctx, uow, discordID, ""); err != nil {
		return nil, err
	}

	if err := uow.SessionRepository().Create(ctx, &models.Session{
		DiscordID:   discordID,
		StartedAt:   session.StartedAt,
		DurationMin: elapsed,
		Status:      models.SessionStatusDone,
		Skill:       session.Skill,
		Subject:     session.Subject,
		HouseRoleID: session.HouseRoleID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	if _, err := awardXP(ctx, uow, discordID, xp, session.HouseRoleID, "focus"); err != nil {
		return nil, err
	}

	if gold > 0 {
		if err := uow.UserRepository().AddGold(ctx, discordID, gold); err != nil {
			return nil, fmt.Errorf("failed to credit gold: %w", err)
		}
		uow.EventBus().Publish(events.GoldChangedEvent{
			DiscordID: discordID,
			Delta:     gold,
			Source:    "focus",
		})
	}

	drop, err := rollAndStore(ctx, uow, s.roller, s.houses, discordID, session.HouseRoleID, DropSourceFocus, elapsed, now)
	if err != nil {
		return nil, err
	}
	result.Drop = drop

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

func (s *focusService) Abort(ctx context.Context, discordID int64) (*models.SessionResult, error) {
	now := time.Now()

	session := s.registry.Take(discordID)
	if session == nil {
		return nil, ErrNoActiveSession
	}

	elapsed := ElapsedMinutes(session.StartedAt, now)
	xp := AbortXP(elapsed)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := ensureUser(ctx, uow, discordID, ""); err != nil {
		return nil, err
	}

	if err := uow.SessionRepository().Create(ctx, &models.Session{
		DiscordID:   discordID,
		StartedAt:   session.StartedAt,
		DurationMin: elapsed,
		Status:      models.SessionStatusAborted,
		Skill:       session.Skill,
		Subject:     session.Subject,
		HouseRoleID: session.HouseRoleID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	if _, err := awardXP(ctx, uow, discordID, xp, session.HouseRoleID, "abort"); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.SessionResult{
		Status:     models.SessionStatusAborted,
		ElapsedMin: elapsed,
		XP:         xp,
	}, nil
}

func (s *focusService) Active(discordID int64) *ActiveSession {
	return s.registry.Get(discordID)
}

// awardXP appends the delta to the ledger and publishes the award with the
// post-insert total, so subscribers can detect level crossings.
func awardXP(ctx context.Context, uow UnitOfWork, discordID, delta int64, houseRoleID, source string) (int64, error) {
	if err := uow.XPRepository().Insert(ctx, discordID, delta, houseRoleID); err != nil {
		return 0, fmt.Errorf("failed to credit XP: %w", err)
	}
	total, err := uow.XPRepository().TotalForUser(ctx, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum XP: %w", err)
	}
	uow.EventBus().Publish(events.XPAwardedEvent{
		DiscordID:   discordID,
		Delta:       delta,
		TotalXP:     total,
		HouseRoleID: houseRoleID,
		Source:      source,
	})
	return total, nil
}

// rollAndStore runs the loot roller against current ownership and, when a
// drop occurs, records it within the surrounding transaction.
func rollAndStore(ctx context.Context, uow UnitOfWork, roller *LootRoller, houses HouseDirectory, discordID int64, houseRoleID string, source DropSource, minutes int, now time.Time) (*models.LootDrop, error) {
	owned, err := uow.LootRepository().OwnedKeys(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned items: %w", err)
	}

	drop := roller.Roll(owned, houses.Name(houseRoleID), source, minutes)
	if drop == nil {
		return nil, nil
	}

	if err := uow.LootRepository().Insert(ctx, &models.OwnedItem{
		DiscordID:   discordID,
		ItemKey:     drop.ItemKey,
		Rarity:      drop.Rarity,
		HouseRoleID: houseRoleID,
		ObtainedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("failed to record loot: %w", err)
	}

	uow.EventBus().Publish(events.LootDroppedEvent{
		DiscordID: discordID,
		ItemKey:   drop.ItemKey,
		Rarity:    drop.Rarity,
		Source:    string(source),
	})

	return drop, nil
}

// ensureUser creates the user row when it does not exist yet.
func ensureUser(ctx context.Context, uow UnitOfWork, discordID int64, username string) error {
	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if user != nil {
		return nil
	}

	if _, err := uow.UserRepository().Create(ctx, discordID, username); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	uow.EventBus().Publish(events.UserCreatedEvent{
		DiscordID: discordID,
		Username:  username,
	})
	return nil
}
