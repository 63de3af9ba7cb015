package models

import "time"

// DailyClaim tracks a user's last daily claim and streak. One row per
// user, overwritten on each claim.
type DailyClaim struct {
	DiscordID   int64     `db:"discord_id"`
	LastClaimAt time.Time `db:"last_claim_at"`
	Streak      int       `db:"streak"`
}

// DailyReward is the outcome of a successful daily claim (returned to the user)
type DailyReward struct {
	Gold   int64
	XP     int64
	Streak int
	Drop   *LootDrop // nil when no loot dropped
}
