package catalog

import "fmt"

// Rarity is an ordered classification of collectible items. It governs
// drop probability and shop price.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityUnique    Rarity = "unique"
)

// RarityOrder lists rarities from lowest to highest.
var RarityOrder = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityUnique}

// Index returns the position of the rarity in RarityOrder, or -1 if unknown.
func (r Rarity) Index() int {
	for i, o := range RarityOrder {
		if o == r {
			return i
		}
	}
	return -1
}

// Valid reports whether the rarity is one of the known tiers.
func (r Rarity) Valid() bool {
	return r.Index() >= 0
}

// DropWeights is the relative probability of each rarity tier when a drop occurs.
var DropWeights = map[Rarity]float64{
	RarityCommon:    65,
	RarityRare:      25,
	RarityEpic:      8,
	RarityLegendary: 2,
	RarityUnique:    0.5,
}

// Prices is the static rarity to shop price table, in gold.
var Prices = map[Rarity]int64{
	RarityCommon:    40,
	RarityRare:      90,
	RarityEpic:      200,
	RarityLegendary: 450,
	RarityUnique:    1000,
}

/// XP potion: a consumable shop offer injected outside the rarity logic.
// Buying it credits XP directly instead of adding a collectible.
const (
	XPPotionKey   = "xp_potion_daily"
	XPPotionName  = "Potion d'XP"
	XPPotionEmoji = "🧪"
	XPPotionPrice = 50
	XPPotionXP    = 100
)

// FallbackHouse is the pool used for members without a house role.
const FallbackHouse = "Aventurier"

// Item is a collectible loot item definition.
type Item struct {
	Key    string
	Name   string
	Emoji  string
	Rarity Rarity
	House  string
}

// Catalog is the immutable set of collectible items, grouped by house.
// It is built once at startup and passed to the services that need it.
type Catalog struct {
	pools  map[string][]Item
	byKey  map[string]Item
	houses []string
}

// New builds a catalog from item definitions. Duplicate keys are rejected.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		pools: make(map[string][]Item),
		byKey: make(map[string]Item),
	}
	for _, it := range items {
		if !it.Rarity.Valid() {
			return nil, fmt.Errorf("item %q has unknown rarity %q", it.Key, it.Rarity)
		}
		if _, exists := c.byKey[it.Key]; exists {
			return nil, fmt.Errorf("duplicate item key %q", it.Key)
		}
		if _, seen := c.pools[it.House]; !seen {
			c.houses = append(c.houses, it.House)
		}
		c.pools[it.House] = append(c.pools[it.House], it)
		c.byKey[it.Key] = it
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}

// Pool returns the items for a house, falling back to the adventurer pool
// for unknown houses.
func (c *Catalog) Pool(house string) []Item {
	pool, ok := c.pools[house]
	if !ok {
		pool = c.pools[FallbackHouse]
	}
	out := make([]Item, len(pool))
	copy(out, pool)
	return out
}

// Items returns the items of a single rarity tier within a house pool.
func (c *Catalog) Items(house string, rarity Rarity) []Item {
	var out []Item
	for _, it := range c.Pool(house) {
		if it.Rarity == rarity {
			out = append(out, it)
		}
	}
	return out
}

// Item looks up an item definition by key.
func (c *Catalog) Item(key string) (Item, bool) {
	it, ok := c.byKey[key]
	return it, ok
}

// Houses returns the house names present in the catalog.
func (c *Catalog) Houses() []string {
	out := make([]string, len(c.houses))
	copy(out, c.houses)
	return out
}

var defaultItems = []Item{
	// Mage
	{Key: "grimoire_frag", Name: "Fragment de Grimoire", Emoji: "📜", Rarity: RarityCommon, House: "Mage"},
	{Key: "plume_scribe", Name: "Plume de Scribe", Emoji: "🪶", Rarity: RarityCommon, House: "Mage"},
	{Key: "cristal_mana", Name: "Cristal de mana", Emoji: "🔮", Rarity: RarityRare, House: "Mage"},
	{Key: "baguette_anc", Name: "Baguette ancienne", Emoji: "🪄", Rarity: RarityEpic, House: "Mage"},
	{Key: "orbe_arcane", Name: "Orbe des Arcanes", Emoji: "🌀", Rarity: RarityLegendary, House: "Mage"},
	{Key: "tome_eternel", Name: "Tome Éternel", Emoji: "📖", Rarity: RarityUnique, House: "Mage"},

	// Guerrier
	{Key: "bouclier_ecl", Name: "Éclat de bouclier", Emoji: "🛡️", Rarity: RarityCommon, House: "Guerrier"},
	{Key: "heaume_cabosse", Name: "Heaume cabossé", Emoji: "🪖", Rarity: RarityCommon, House: "Guerrier"},
	{Key: "epee_vieille", Name: "Vieille épée", Emoji: "🗡️", Rarity: RarityRare, House: "Guerrier"},
	{Key: "armure_run", Name: "Armure runique", Emoji: "🧱", Rarity: RarityEpic, House: "Guerrier"},
	{Key: "marteau_titan", Name: "Marteau du Titan", Emoji: "🔨", Rarity: RarityLegendary, House: "Guerrier"},
	{Key: "lame_aurore", Name: "Lame de l'Aurore", Emoji: "⚔️", Rarity: RarityUnique, House: "Guerrier"},

	// Archer
	{Key: "fleche_fin", Name: "Flèche fine", Emoji: "🏹", Rarity: RarityCommon, House: "Archer"},
	{Key: "corde_lin", Name: "Corde de lin", Emoji: "🧵", Rarity: RarityCommon, House: "Archer"},
	{Key: "carquois_bois", Name: "Carquois ouvragé", Emoji: "🧺", Rarity: RarityRare, House: "Archer"},
	{Key: "arc_celeste", Name: "Arc céleste", Emoji: "🌈", Rarity: RarityEpic, House: "Archer"},
	{Key: "oeil_faucon", Name: "Œil de Faucon", Emoji: "🦅", Rarity: RarityLegendary, House: "Archer"},
	{Key: "fleche_eclipse", Name: "Flèche de l'Éclipse", Emoji: "🌑", Rarity: RarityUnique, House: "Archer"},

	// Voleur
	{Key: "poignard_mat", Name: "Poignard mat", Emoji: "🔪", Rarity: RarityCommon, House: "Voleur"},
	{Key: "rossignol_fer", Name: "Rossignol de fer", Emoji: "🗝️", Rarity: RarityCommon, House: "Voleur"},
	{Key: "cape_ombre", Name: "Cape d'ombre", Emoji: "🕶️", Rarity: RarityRare, House: "Voleur"},
	{Key: "bague_noire", Name: "Bague noire", Emoji: "💍", Rarity: RarityEpic, House: "Voleur"},
	{Key: "dague_spectre", Name: "Dague du Spectre", Emoji: "🌫️", Rarity: RarityLegendary, House: "Voleur"},
	{Key: "masque_roi", Name: "Masque du Roi des Voleurs", Emoji: "🎭", Rarity: RarityUnique, House: "Voleur"},

	// Aventurier (fallback pool for members without a house role)
	{Key: "porte_bonh", Name: "Porte-bonheur", Emoji: "🍀", Rarity: RarityCommon, House: "Aventurier"},
	{Key: "boussole_use", Name: "Boussole usée", Emoji: "🧭", Rarity: RarityCommon, House: "Aventurier"},
	{Key: "carnet_voyage", Name: "Carnet de voyage", Emoji: "📒", Rarity: RarityRare, House: "Aventurier"},
}
