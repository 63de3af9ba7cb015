package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeXPAwarded   EventType = "xp_awarded"
	EventTypeGoldChanged EventType = "gold_changed"
	EventTypeLootDropped EventType = "loot_dropped"
	EventTypeUserCreated EventType = "user_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// XPAwardedEvent represents XP credited to a user. Source is the operation
// that granted it ("focus", "abort", "daily", "potion").
type XPAwardedEvent struct {
	DiscordID   int64
	Delta       int64
	TotalXP     int64
	HouseRoleID string
	Source      string
}

func (e XPAwardedEvent) Type() EventType {
	return EventTypeXPAwarded
}

// GoldChangedEvent represents a gold balance change
type GoldChangedEvent struct {
	DiscordID int64
	Delta     int64
	NewGold   int64
	Source    string
}

func (e GoldChangedEvent) Type() EventType {
	return EventTypeGoldChanged
}

// LootDroppedEvent represents a collectible awarded to a user
type LootDroppedEvent struct {
	DiscordID int64
	ItemKey   string
	Rarity    string
	Source    string
}

func (e LootDroppedEvent) Type() EventType {
	return EventTypeLootDropped
}

// UserCreatedEvent represents a new user's first interaction
type UserCreatedEvent struct {
	DiscordID int64
	Username  string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the interaction path
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the real bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits pending events; called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
