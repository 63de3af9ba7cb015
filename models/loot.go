package models

import "time"

// OwnedItem is a loot ownership record, unique per (user, item)
type OwnedItem struct {
	ID          int64     `db:"id"`
	DiscordID   int64     `db:"discord_id"`
	ItemKey     string    `db:"item_key"`
	Rarity      string    `db:"rarity"`
	HouseRoleID string    `db:"house_role_id"`
	ObtainedAt  time.Time `db:"obtained_at"`
}

// LootDrop describes an item awarded by the loot roller (returned to the user)
type LootDrop struct {
	ItemKey string
	Name    string
	Emoji   string
	Rarity  string
}

// CollectionProgress counts owned vs. total items for one house/rarity pair
type CollectionProgress struct {
	House     string
	Rarity    string
	Owned     int
	Total     int
	Completed bool
}
