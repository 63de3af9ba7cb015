package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_PutRejectsDuplicate(t *testing.T) {
	registry := newSessionRegistry()

	first := &ActiveSession{DiscordID: 123456}
	require.NoError(t, registry.Put(first))

	err := registry.Put(&ActiveSession{DiscordID: 123456})
	assert.ErrorIs(t, err, ErrSessionAlreadyRunning)

	// The original entry is untouched
	assert.Same(t, first, registry.Get(123456))
}

func TestSessionRegistry_TakeRemoves(t *testing.T) {
	registry := newSessionRegistry()

	session := &ActiveSession{DiscordID: 123456}
	require.NoError(t, registry.Put(session))

	assert.Same(t, session, registry.Take(123456))
	assert.Nil(t, registry.Take(123456))
	assert.Nil(t, registry.Get(123456))
}

func TestSessionRegistry_TakeIfEnded(t *testing.T) {
	now := time.Now()

	t.Run("absent user", func(t *testing.T) {
		registry := newSessionRegistry()
		s, remaining := registry.TakeIfEnded(123456, now)
		assert.Nil(t, s)
		assert.Zero(t, remaining)
	})

	t.Run("still running", func(t *testing.T) {
		registry := newSessionRegistry()
		require.NoError(t, registry.Put(&ActiveSession{
			DiscordID: 123456,
			TargetEnd: now.Add(10 * time.Minute),
		}))

		s, remaining := registry.TakeIfEnded(123456, now)
		assert.Nil(t, s)
		assert.Equal(t, 10*time.Minute, remaining)

		// Entry stays registered
		assert.NotNil(t, registry.Get(123456))
	})

	t.Run("ended", func(t *testing.T) {
		registry := newSessionRegistry()
		session := &ActiveSession{
			DiscordID: 123456,
			TargetEnd: now.Add(-time.Minute),
		}
		require.NoError(t, registry.Put(session))

		s, remaining := registry.TakeIfEnded(123456, now)
		assert.Same(t, session, s)
		assert.Zero(t, remaining)
		assert.Nil(t, registry.Get(123456))
	})
}

func TestSessionRegistry_Holds(t *testing.T) {
	registry := newSessionRegistry()

	session := &ActiveSession{DiscordID: 123456}
	require.NoError(t, registry.Put(session))
	assert.True(t, registry.Holds(session))

	registry.Take(123456)
	assert.False(t, registry.Holds(session))

	// A replacement session for the same user is a different entry
	replacement := &ActiveSession{DiscordID: 123456}
	require.NoError(t, registry.Put(replacement))
	assert.False(t, registry.Holds(session))
	assert.True(t, registry.Holds(replacement))
}

func TestSessionRegistry_ConcurrentTake(t *testing.T) {
	registry := newSessionRegistry()
	require.NoError(t, registry.Put(&ActiveSession{
		DiscordID: 123456,
		TargetEnd: time.Now().Add(-time.Minute),
	}))

	// Doubled validate clicks: exactly one goroutine wins the session
	var wg sync.WaitGroup
	taken := make(chan *ActiveSession, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s, _ := registry.TakeIfEnded(123456, time.Now()); s != nil {
				taken <- s
			}
		}()
	}
	wg.Wait()
	close(taken)

	count := 0
	for range taken {
		count++
	}
	assert.Equal(t, 1, count)
}
