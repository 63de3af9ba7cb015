package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"collegium/bot/common"
	"collegium/models"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleComponent handles shop buttons and the buy select menu
// (shop_open, shop_buy_<id>, shop_buy_select)
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case customID == "shop_open":
		f.showShop(s, i, true)
	case customID == "shop_buy_select":
		values := i.MessageComponentData().Values
		if len(values) == 0 {
			common.RespondWithError(s, i, "Aucune offre sélectionnée.")
			return
		}
		f.purchaseByCustomValue(s, i, values[0])
	case strings.HasPrefix(customID, "shop_buy_"):
		f.purchaseByCustomValue(s, i, strings.TrimPrefix(customID, "shop_buy_"))
	}
}

func (f *Feature) purchaseByCustomValue(s *discordgo.Session, i *discordgo.InteractionCreate, raw string) {
	offerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Offre invalide.")
		return
	}
	f.purchase(s, i, offerID)
}

func (f *Feature) purchase(s *discordgo.Session, i *discordgo.InteractionCreate, offerID int64) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	result, err := f.shopService.Purchase(ctx, discordID, offerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			common.RespondWithError(s, i, "Cette offre n'existe pas ou a expiré.")
		case errors.Is(err, service.ErrNotYourOffer):
			common.RespondWithError(s, i, "Cette offre appartient à quelqu'un d'autre. Ouvre ta boutique avec /shop.")
		case errors.Is(err, service.ErrOfferAlreadyPurchased):
			common.RespondWithError(s, i, "Tu as déjà acheté cette offre aujourd'hui.")
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "Pas assez d'or pour cet achat.")
		default:
			log.Errorf("Error purchasing offer %d for user %d: %v", offerID, discordID, err)
			common.RespondWithError(s, i, "Achat impossible. Réessaie.")
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, f.purchaseEmbed(result), nil, true); err != nil {
		log.Errorf("Error responding to shop purchase: %v", err)
	}
}

// offerComponents builds one select menu covering the unpurchased offers.
func (f *Feature) offerComponents(offers []*models.ShopOffer) []discordgo.MessageComponent {
	var options []discordgo.SelectMenuOption
	for _, offer := range offers {
		if offer.Purchased() {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%s — %s 🪙", f.itemName(offer.ItemKey), common.FormatGold(offer.Price)),
			Value:       strconv.FormatInt(offer.ID, 10),
			Emoji:       &discordgo.ComponentEmoji{Name: common.RarityEmoji(offer.Rarity)},
			Description: offer.Rarity,
		})
	}
	if len(options) == 0 {
		return nil
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    "shop_buy_select",
					Placeholder: "Acheter une offre…",
					Options:     options,
				},
			},
		},
	}
}
