package service

import (
	"math"
	"time"

	"collegium/models"
)

// Canonical reward policy. Every entry point (slash command, button,
// panel, modal) goes through these functions; the rules live nowhere else.
const (
	// Focus sessions
	SessionXPPerMinute  = 1
	AbortXPFraction     = 0.3
	GoldMinutesPerCoin  = 15
	MinSessionMinutes   = 1
	MaxSessionMinutes   = 240
	MinFocusDropMinutes = 25

	// Daily claims
	DailyBaseGold     = 25
	DailyBaseXP       = 15
	DailyStreakCap    = 7
	DailyCooldown     = 20 * time.Hour
	DailyStreakWindow = 48 * time.Hour

	// Levels
	LevelBaseCost    = 100
	LevelCostPerStep = 50
)

// ElapsedMinutes converts a session's wall-clock span to whole minutes,
// rounded, never below 1.
func ElapsedMinutes(start, end time.Time) int {
	mins := int(math.Round(end.Sub(start).Minutes()))
	if mins < MinSessionMinutes {
		return MinSessionMinutes
	}
	return mins
}

// SessionXP is the XP credited for a validated session.
func SessionXP(elapsedMin int) int64 {
	return int64(elapsedMin * SessionXPPerMinute)
}

// SessionGold is the gold credited for a validated session.
func SessionGold(elapsedMin int) int64 {
	return int64(elapsedMin / GoldMinutesPerCoin)
}

// AbortXP is the reduced XP credited for an aborted session, minimum 1.
func AbortXP(elapsedMin int) int64 {
	xp := int64(math.Floor(float64(elapsedMin) * AbortXPFraction))
	if xp < 1 {
		xp = 1
	}
	return xp
}

// DailyGold is the gold granted for a daily claim at the given streak.
func DailyGold(streak int) int64 {
	return DailyBaseGold + int64(streak/2)*5
}

// DailyXP is the XP granted for a daily claim at the given streak.
// The bonus term is zero at streak 1.
func DailyXP(streak int) int64 {
	bonus := math.Round(float64(streak-1) * 0.2 * DailyBaseXP)
	return DailyBaseXP + int64(bonus)
}

// NextStreak computes the streak after a claim at now, given the previous
// claim time (zero if never claimed). Claims within the streak window
// extend the streak up to the cap; longer gaps reset it to 1.
func NextStreak(lastClaim time.Time, streak int, now time.Time) int {
	if lastClaim.IsZero() || now.Sub(lastClaim) < DailyStreakWindow {
		next := streak + 1
		if next > DailyStreakCap {
			next = DailyStreakCap
		}
		return next
	}
	return 1
}

// XPForLevel is the XP cost of advancing past the given level.
func XPForLevel(level int) int64 {
	return int64(LevelBaseCost + LevelCostPerStep*level)
}

// LevelFromXP decodes a total XP amount into a level position by
// iteratively subtracting the per-level cost curve.
func LevelFromXP(totalXP int64) models.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 0
	rem := totalXP
	for rem >= XPForLevel(level) {
		rem -= XPForLevel(level)
		level++
	}

	toNext := XPForLevel(level)
	progress := 0.0
	if toNext > 0 {
		progress = float64(rem) / float64(toNext)
	}

	return models.LevelInfo{
		Level:    level,
		Into:     rem,
		ToNext:   toNext,
		Progress: progress,
	}
}
