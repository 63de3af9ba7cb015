package service

import (
	"sync"
	"time"
)

// ActiveSession is the transient, process-local state of a running focus
// session. It is not crash-durable: a restart loses all running sessions.
type ActiveSession struct {
	DiscordID   int64
	StartedAt   time.Time
	TargetEnd   time.Time
	Minutes     int
	Skill       string
	Subject     string
	HouseRoleID string

	// Set by the UI layer so the advisory end-of-session timer can edit
	// the session card
	ChannelID string
	MessageID string
}

// sessionRegistry guards the one-running-session-per-user invariant.
// All mutations happen under the mutex; Take removes the entry in the
// same critical section that reads it, so a doubled validate/abort click
// observes an absent entry instead of a stale one.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]*ActiveSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[int64]*ActiveSession),
	}
}

// Put registers a session for a user. It fails with
// ErrSessionAlreadyRunning if one is already registered.
func (r *sessionRegistry) Put(s *ActiveSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.DiscordID]; exists {
		return ErrSessionAlreadyRunning
	}
	r.sessions[s.DiscordID] = s
	return nil
}

// Get returns the user's running session without removing it, or nil.
func (r *sessionRegistry) Get(discordID int64) *ActiveSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[discordID]
}

// Take atomically removes and returns the user's running session, or nil
// if absent.
func (r *sessionRegistry) Take(discordID int64) *ActiveSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.sessions[discordID]
	if s != nil {
		delete(r.sessions, discordID)
	}
	return s
}

// TakeIfEnded removes and returns the user's session only if its target
// end has passed; otherwise the entry stays registered and the remaining
// duration is returned.
func (r *sessionRegistry) TakeIfEnded(discordID int64, now time.Time) (*ActiveSession, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.sessions[discordID]
	if s == nil {
		return nil, 0
	}
	if now.Before(s.TargetEnd) {
		return nil, s.TargetEnd.Sub(now)
	}
	delete(r.sessions, discordID)
	return s, 0
}

// Holds reports whether the given session pointer is still the registered
// one for its user. Advisory timers use this to avoid acting on sessions
// that were validated or aborted in the meantime.
func (r *sessionRegistry) Holds(s *ActiveSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[s.DiscordID] == s
}
