package models

import "time"

// XPEntry is an append-only XP ledger record
type XPEntry struct {
	ID          int64     `db:"id"`
	DiscordID   int64     `db:"discord_id"`
	Delta       int64     `db:"delta"`
	HouseRoleID string    `db:"house_role_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// LeaderboardEntry is one row of the trailing-30-days XP ranking
type LeaderboardEntry struct {
	DiscordID int64 `db:"discord_id"`
	XP        int64 `db:"xp"`
}

// HouseXP aggregates a user's XP per house role
type HouseXP struct {
	HouseRoleID string `db:"house_role_id"`
	XP          int64  `db:"xp"`
}
