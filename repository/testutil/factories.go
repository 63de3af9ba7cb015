package testutil

import (
	"time"

	"collegium/models"
)

// CreateTestSession creates a completed session record with default values
func CreateTestSession(discordID int64, minutes int) *models.Session {
	return &models.Session{
		DiscordID:   discordID,
		StartedAt:   time.Now().Add(-time.Duration(minutes) * time.Minute),
		DurationMin: minutes,
		Status:      models.SessionStatusDone,
		Skill:       "Général",
		Subject:     "",
		HouseRoleID: "100000000000000001",
	}
}

// CreateTestOwnedItem creates a loot ownership record with default values
func CreateTestOwnedItem(discordID int64, itemKey, rarity string) *models.OwnedItem {
	return &models.OwnedItem{
		DiscordID:   discordID,
		ItemKey:     itemKey,
		Rarity:      rarity,
		HouseRoleID: "100000000000000001",
		ObtainedAt:  time.Now(),
	}
}

// CreateTestOffer creates an unpurchased shop offer with default values
func CreateTestOffer(discordID int64, day int, itemKey string, price int64) *models.ShopOffer {
	return &models.ShopOffer{
		DiscordID:   discordID,
		Day:         day,
		ItemKey:     itemKey,
		Rarity:      "common",
		Price:       price,
		HouseRoleID: "100000000000000001",
	}
}

// CreateTestDailyClaim creates a claim row with the given streak, last
// claimed the given duration ago
func CreateTestDailyClaim(discordID int64, streak int, ago time.Duration) *models.DailyClaim {
	return &models.DailyClaim{
		DiscordID:   discordID,
		LastClaimAt: time.Now().Add(-ago),
		Streak:      streak,
	}
}
