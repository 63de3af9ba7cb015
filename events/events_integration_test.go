package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan XPAwardedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeXPAwarded, func(ctx context.Context, event Event) {
		defer wg.Done()
		if award, ok := event.(XPAwardedEvent); ok {
			select {
			case eventReceived <- award:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected XPAwardedEvent, got %T", event)
		}
	})

	testEvent := XPAwardedEvent{
		DiscordID:   123456,
		Delta:       25,
		TotalXP:     425,
		HouseRoleID: "100000000000000001",
		Source:      "focus",
	}

	// Publish event to transactional bus (simulating service layer)
	transactionalBus.Publish(testEvent)

	// Flush events (simulating successful transaction commit)
	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	wg.Wait()

	select {
	case receivedEvent := <-eventReceived:
		assert.Equal(t, testEvent.DiscordID, receivedEvent.DiscordID)
		assert.Equal(t, testEvent.Delta, receivedEvent.Delta)
		assert.Equal(t, testEvent.TotalXP, receivedEvent.TotalXP)
		assert.Equal(t, testEvent.HouseRoleID, receivedEvent.HouseRoleID)
		assert.Equal(t, testEvent.Source, receivedEvent.Source)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan GoldChangedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeGoldChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		if change, ok := event.(GoldChangedEvent); ok {
			eventsReceived <- change
		}
	})

	events := []GoldChangedEvent{
		{DiscordID: 1, Delta: 25, Source: "daily"},
		{DiscordID: 2, Delta: 3, Source: "focus"},
		{DiscordID: 3, Delta: -90, Source: "shop"},
	}

	for _, event := range events {
		transactionalBus.Publish(event)
	}

	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	wg.Wait()

	receivedEvents := make([]GoldChangedEvent, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case event := <-eventsReceived:
			receivedEvents = append(receivedEvents, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(receivedEvents))
		}
	}

	assert.Len(t, receivedEvents, 3)

	// Check that all original events were received (order may vary due to goroutines)
	discordIDs := make(map[int64]bool)
	for _, received := range receivedEvents {
		discordIDs[received.DiscordID] = true
	}

	assert.True(t, discordIDs[1])
	assert.True(t, discordIDs[2])
	assert.True(t, discordIDs[3])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeLootDropped, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(LootDroppedEvent{
		DiscordID: 123456,
		ItemKey:   "mage_orbe",
		Rarity:    "rare",
		Source:    "focus",
	})

	// Discard instead of flush (simulating transaction rollback)
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
		// Expected - no event should be received
	}
}
