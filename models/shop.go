package models

import "time"

// ShopOffer is a priced item instance generated for one user on one
// calendar day (UTC epoch day)
type ShopOffer struct {
	ID          int64      `db:"id"`
	DiscordID   int64      `db:"discord_id"`
	Day         int        `db:"day"`
	ItemKey     string     `db:"item_key"`
	Rarity      string     `db:"rarity"`
	Price       int64      `db:"price"`
	HouseRoleID string     `db:"house_role_id"`
	PurchasedAt *time.Time `db:"purchased_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Purchased reports whether the offer has already been bought
func (o *ShopOffer) Purchased() bool {
	return o.PurchasedAt != nil
}

// PurchaseResult is the outcome of buying an offer (returned to the user)
type PurchaseResult struct {
	Offer         *ShopOffer
	GoldRemaining int64
	XPGranted     int64 // non-zero for consumables
}
