package profile

import (
	"context"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/config"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the profile and inventory feature
type Feature struct {
	session      *discordgo.Session
	statsService service.StatsService
	catalog      *catalog.Catalog
	houses       []config.House
	banners      map[string]string
	banner       string
	guildID      string
}

// NewFeature creates a new profile feature instance
func NewFeature(session *discordgo.Session, statsService service.StatsService, cat *catalog.Catalog, houses []config.House, banners map[string]string, defaultBanner, guildID string) *Feature {
	return &Feature{
		session:      session,
		statsService: statsService,
		catalog:      cat,
		houses:       houses,
		banners:      banners,
		banner:       defaultBanner,
		guildID:      guildID,
	}
}

// HandleProfileCommand handles the /profile command
func (f *Feature) HandleProfileCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := common.InteractionUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	f.showProfile(s, i, target)
}

// HandleComponent handles the profile_open panel button
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.MessageComponentData().CustomID == "profile_open" {
		f.showProfile(s, i, common.InteractionUser(i))
	}
}

func (f *Feature) showProfile(s *discordgo.Session, i *discordgo.InteractionCreate, target *discordgo.User) {
	ctx := context.Background()

	discordID, err := common.ParseDiscordID(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	profile, err := f.statsService.Profile(ctx, discordID, target.Username)
	if err != nil {
		log.Errorf("Error loading profile for user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Impossible de charger le profil. Réessaie.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	house := f.targetHouseName(i, target)
	embed := f.profileEmbed(displayName, house, profile)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to profile command: %v", err)
	}
}

// HandleInventoryCommand handles the /inventory command
func (f *Feature) HandleInventoryCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	gold, items, err := f.statsService.Inventory(ctx, discordID)
	if err != nil {
		log.Errorf("Error loading inventory for user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Impossible de charger l'inventaire. Réessaie.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, user.ID)
	if err := common.RespondWithEmbed(s, i, f.inventoryEmbed(displayName, gold, items), nil, true); err != nil {
		log.Errorf("Error responding to inventory command: %v", err)
	}
}

// targetHouseName resolves the viewed member's house. For the invoker we
// can use the interaction member; for others we look the member up.
func (f *Feature) targetHouseName(i *discordgo.InteractionCreate, target *discordgo.User) string {
	var roles []string
	if i.Member != nil && i.Member.User != nil && i.Member.User.ID == target.ID {
		roles = i.Member.Roles
	} else if member, err := f.session.GuildMember(f.guildID, target.ID); err == nil {
		roles = member.Roles
	}

	for _, role := range roles {
		for _, h := range f.houses {
			if h.RoleID == role {
				return h.Name
			}
		}
	}
	return "Aventurier"
}
