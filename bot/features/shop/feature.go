package shop

import (
	"context"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/config"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the rotating shop feature
type Feature struct {
	session     *discordgo.Session
	shopService service.ShopService
	catalog     *catalog.Catalog
	houses      []config.House
}

// NewFeature creates a new shop feature instance
func NewFeature(session *discordgo.Session, shopService service.ShopService, cat *catalog.Catalog, houses []config.House) *Feature {
	return &Feature{
		session:     session,
		shopService: shopService,
		catalog:     cat,
		houses:      houses,
	}
}

// HandleShopCommand handles the /shop command
func (f *Feature) HandleShopCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	public := false
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "public" {
			public = opt.BoolValue()
		}
	}
	f.showShop(s, i, !public)
}

// HandleBuyCommand handles the /buy command
func (f *Feature) HandleBuyCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var offerID int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "offer" {
			offerID = opt.IntValue()
		}
	}
	f.purchase(s, i, offerID)
}

func (f *Feature) showShop(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	houseRoleID := f.memberHouseRoleID(i)
	offers, err := f.shopService.Offers(ctx, discordID, user.Username, houseRoleID)
	if err != nil {
		log.Errorf("Error loading shop for user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Impossible d'ouvrir la boutique. Réessaie.")
		return
	}

	house := f.houseName(houseRoleID)
	embed := f.offersEmbed(house, offers)
	components := f.offerComponents(offers)
	if err := common.RespondWithEmbed(s, i, embed, components, ephemeral); err != nil {
		log.Errorf("Error responding to shop command: %v", err)
	}
}

func (f *Feature) memberHouseRoleID(i *discordgo.InteractionCreate) string {
	if i.Member == nil {
		return ""
	}
	for _, role := range i.Member.Roles {
		for _, h := range f.houses {
			if h.RoleID == role {
				return h.RoleID
			}
		}
	}
	return ""
}

func (f *Feature) houseName(roleID string) string {
	for _, h := range f.houses {
		if h.RoleID == roleID {
			return h.Name
		}
	}
	return "Aventurier"
}
