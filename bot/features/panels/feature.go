package panels

import (
	"collegium/bot/common"
	"collegium/config"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature posts the persistent public panels and handles the house
// affiliation select menu. Panel buttons themselves are routed to the
// feature owning the action.
type Feature struct {
	session *discordgo.Session
	houses  []config.House
	guildID string
}

// NewFeature creates a new panels feature instance
func NewFeature(session *discordgo.Session, houses []config.House, guildID string) *Feature {
	return &Feature{
		session: session,
		houses:  houses,
		guildID: guildID,
	}
}

// HandleCommand handles the /*-panel commands, posting a public panel in
// the current channel
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var embed *discordgo.MessageEmbed
	var components []discordgo.MessageComponent

	switch i.ApplicationCommandData().Name {
	case "focus-panel":
		embed, components = focusPanel()
	case "daily-panel":
		embed, components = dailyPanel()
	case "shop-panel":
		embed, components = shopPanel()
	case "profile-panel":
		embed, components = profilePanel()
	case "leaderboard-panel":
		embed, components = leaderboardPanel()
	case "houses-panel":
		embed, components = f.housesPanel()
	default:
		common.RespondWithError(s, i, "Panneau inconnu")
		return
	}

	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error posting panel: %v", err)
	}
}

// HandleComponent handles the house_select menu: the member keeps exactly
// one house role after the swap.
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.MessageComponentData().CustomID != "house_select" {
		return
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 || i.Member == nil {
		common.RespondWithError(s, i, "Aucune maison sélectionnée.")
		return
	}
	selected := values[0]

	var chosen *config.House
	for idx := range f.houses {
		if f.houses[idx].RoleID == selected {
			chosen = &f.houses[idx]
			break
		}
	}
	if chosen == nil {
		common.RespondWithError(s, i, "Maison inconnue.")
		return
	}

	userID := i.Member.User.ID
	for _, h := range f.houses {
		if h.RoleID == selected {
			continue
		}
		for _, role := range i.Member.Roles {
			if role == h.RoleID {
				if err := s.GuildMemberRoleRemove(f.guildID, userID, h.RoleID); err != nil {
					log.Errorf("Error removing house role %s from user %s: %v", h.RoleID, userID, err)
				}
			}
		}
	}

	if err := s.GuildMemberRoleAdd(f.guildID, userID, chosen.RoleID); err != nil {
		log.Errorf("Error adding house role %s to user %s: %v", chosen.RoleID, userID, err)
		common.RespondWithError(s, i, "Impossible de changer de maison. Réessaie.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "Tu as rejoint la maison **"+chosen.Name+"** "+chosen.Emoji, true); err != nil {
		log.Errorf("Error responding to house select: %v", err)
	}
}
