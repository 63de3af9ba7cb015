package models

import "time"

// SessionStatus is the terminal state of a focus session
type SessionStatus string

const (
	SessionStatusDone    SessionStatus = "done"
	SessionStatusAborted SessionStatus = "aborted"
)

// Session represents a completed or aborted focus session in the database.
// Running sessions live only in the in-memory registry and are not persisted.
type Session struct {
	ID          int64         `db:"id"`
	DiscordID   int64         `db:"discord_id"`
	StartedAt   time.Time     `db:"started_at"`
	DurationMin int           `db:"duration_min"`
	Status      SessionStatus `db:"status"`
	Skill       string        `db:"skill"`
	Subject     string        `db:"subject"`
	HouseRoleID string        `db:"house_role_id"`
	CreatedAt   time.Time     `db:"created_at"`
}

// SessionResult is the outcome of validating or aborting a session
// (returned to the user)
type SessionResult struct {
	Status     SessionStatus
	ElapsedMin int
	XP         int64
	Gold       int64
	Drop       *LootDrop // nil when no loot dropped
}

// SkillMinutes aggregates focus minutes spent per skill
type SkillMinutes struct {
	Skill   string `db:"skill"`
	Minutes int64  `db:"minutes"`
}
