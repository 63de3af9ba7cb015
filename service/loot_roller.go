package service

import (
	"math/rand"
	"sync"

	"collegium/catalog"
	"collegium/models"
)

// DropSource is the operation a loot roll originates from.
type DropSource string

const (
	DropSourceDaily DropSource = "daily"
	DropSourceFocus DropSource = "focus"
)

// LootRoller selects collectible drops: a Bernoulli trial against the
// source's drop chance, a weighted rarity draw, then a uniform pick among
// the house items the user does not own yet, stepping down a tier when one
// is exhausted.
type LootRoller struct {
	catalog *catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLootRoller creates a roller over the given catalog. rng may be
// seeded deterministically in tests.
func NewLootRoller(cat *catalog.Catalog, rng *rand.Rand) *LootRoller {
	return &LootRoller{catalog: cat, rng: rng}
}

// DropChance returns the drop probability for a source. Daily claims use
// a fixed chance; focus sessions need at least MinFocusDropMinutes and
// scale up with duration.
func DropChance(source DropSource, minutes int) float64 {
	switch source {
	case DropSourceDaily:
		return 0.30
	case DropSourceFocus:
		switch {
		case minutes < MinFocusDropMinutes:
			return 0
		case minutes < 45:
			return 0.25
		case minutes < 60:
			return 0.35
		default:
			return 0.45
		}
	}
	return 0
}

// Roll performs a full loot roll for a user. owned is the set of item
// keys the user already holds; the returned drop is never among them.
// A nil result means no drop.
func (l *LootRoller) Roll(owned map[string]struct{}, house string, source DropSource, minutes int) *models.LootDrop {
	chance := DropChance(source, minutes)
	if chance <= 0 {
		return nil
	}

	l.mu.Lock()
	hit := l.rng.Float64() < chance
	rarity := l.drawRarity()
	pick := l.rng.Float64()
	l.mu.Unlock()

	if !hit {
		return nil
	}

	item := pickEligible(l.catalog, owned, house, rarity, pick)
	if item == nil {
		return nil
	}

	return &models.LootDrop{
		ItemKey: item.Key,
		Name:    item.Name,
		Emoji:   item.Emoji,
		Rarity:  string(item.Rarity),
	}
}

// drawRarity performs the weighted rarity draw. Caller holds the lock.
func (l *LootRoller) drawRarity() catalog.Rarity {
	var total float64
	for _, r := range catalog.RarityOrder {
		total += catalog.DropWeights[r]
	}

	roll := l.rng.Float64() * total
	for _, r := range catalog.RarityOrder {
		roll -= catalog.DropWeights[r]
		if roll <= 0 {
			return r
		}
	}
	return catalog.RarityOrder[0]
}

// pickEligible picks an unowned item at the given rarity, stepping down
// to lower tiers when a tier is exhausted. pick in [0,1) selects
// uniformly within the eligible set.
func pickEligible(cat *catalog.Catalog, owned map[string]struct{}, house string, rarity catalog.Rarity, pick float64) *catalog.Item {
	for tier := rarity.Index(); tier >= 0; tier-- {
		var eligible []catalog.Item
		for _, it := range cat.Items(house, catalog.RarityOrder[tier]) {
			if _, has := owned[it.Key]; !has {
				eligible = append(eligible, it)
			}
		}
		if len(eligible) > 0 {
			item := eligible[int(pick*float64(len(eligible)))]
			return &item
		}
	}
	return nil
}
