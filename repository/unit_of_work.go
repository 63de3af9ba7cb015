package repository

import (
	"context"
	"errors"
	"fmt"

	"collegium/database"
	"collegium/events"
	"collegium/service"
	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	sessionRepo      service.SessionRepository
	xpRepo           service.XPRepository
	lootRepo         service.LootRepository
	dailyClaimRepo   service.DailyClaimRepository
	shopOfferRepo    service.ShopOfferRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.sessionRepo = newSessionRepositoryWithTx(tx)
	u.xpRepo = newXPRepositoryWithTx(tx)
	u.lootRepo = newLootRepositoryWithTx(tx)
	u.dailyClaimRepo = newDailyClaimRepositoryWithTx(tx)
	u.shopOfferRepo = newShopOfferRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// SessionRepository returns the session repository for this unit of work
func (u *unitOfWork) SessionRepository() service.SessionRepository {
	if u.sessionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sessionRepo
}

// XPRepository returns the XP repository for this unit of work
func (u *unitOfWork) XPRepository() service.XPRepository {
	if u.xpRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.xpRepo
}

// LootRepository returns the loot repository for this unit of work
func (u *unitOfWork) LootRepository() service.LootRepository {
	if u.lootRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.lootRepo
}

// DailyClaimRepository returns the daily claim repository for this unit of work
func (u *unitOfWork) DailyClaimRepository() service.DailyClaimRepository {
	if u.dailyClaimRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.dailyClaimRepo
}

// ShopOfferRepository returns the shop offer repository for this unit of work
func (u *unitOfWork) ShopOfferRepository() service.ShopOfferRepository {
	if u.shopOfferRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopOfferRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
