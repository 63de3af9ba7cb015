package shop

import (
	"fmt"
	"strings"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/models"

	"github.com/bwmarrin/discordgo"
)

// itemName resolves an offer's item key to its display name. The XP potion
// is a consumable outside the collectible catalog.
func (f *Feature) itemName(key string) string {
	if key == catalog.XPPotionKey {
		return "Potion d'XP"
	}
	if item, ok := f.catalog.Item(key); ok {
		return item.Name
	}
	return key
}

func (f *Feature) itemEmoji(key string) string {
	if key == catalog.XPPotionKey {
		return "🧪"
	}
	if item, ok := f.catalog.Item(key); ok {
		return item.Emoji
	}
	return "🎁"
}

func (f *Feature) offersEmbed(house string, offers []*models.ShopOffer) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)

	var lines []string
	for _, offer := range offers {
		line := fmt.Sprintf("%s %s **%s** — %s 🪙 `#%d`",
			common.RarityEmoji(offer.Rarity),
			f.itemEmoji(offer.ItemKey),
			f.itemName(offer.ItemKey),
			common.FormatGold(offer.Price),
			offer.ID,
		)
		if offer.Purchased() {
			line = "~~" + line + "~~ ✅"
		}
		lines = append(lines, line)
	}

	description := "Rien en rayon aujourd'hui. Reviens demain !"
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "🏪 Boutique du jour",
		Description: description,
		Color:       theme.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Les offres changent chaque jour à minuit UTC",
		},
	}
}

func (f *Feature) purchaseEmbed(result *models.PurchaseResult) *discordgo.MessageEmbed {
	offer := result.Offer

	embed := &discordgo.MessageEmbed{
		Title: "🛒 Achat effectué",
		Description: fmt.Sprintf("%s **%s** pour %s 🪙",
			f.itemEmoji(offer.ItemKey),
			f.itemName(offer.ItemKey),
			common.FormatGold(offer.Price),
		),
		Color: 0x2e7d32,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Or restant", Value: fmt.Sprintf("%s 🪙", common.FormatGold(result.GoldRemaining)), Inline: true},
		},
	}

	if result.XPGranted > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "XP", Value: fmt.Sprintf("+%d", result.XPGranted), Inline: true,
		})
	}

	return embed
}
