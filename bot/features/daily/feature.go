package daily

import (
	"context"
	"errors"
	"fmt"

	"collegium/bot/common"
	"collegium/config"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the daily reward feature
type Feature struct {
	session      *discordgo.Session
	dailyService service.DailyService
	houses       []config.House
}

// NewFeature creates a new daily feature instance
func NewFeature(session *discordgo.Session, dailyService service.DailyService, houses []config.House) *Feature {
	return &Feature{
		session:      session,
		dailyService: dailyService,
		houses:       houses,
	}
}

// HandleCommand handles the /daily command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.claim(s, i)
}

// HandleComponent handles the daily_claim panel button
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.MessageComponentData().CustomID == "daily_claim" {
		f.claim(s, i)
	}
}

func (f *Feature) claim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	houseRoleID := f.memberHouseRoleID(i)
	reward, err := f.dailyService.Claim(ctx, discordID, user.Username, houseRoleID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			common.RespondWithError(s, i, fmt.Sprintf("Déjà réclamé ! Reviens dans **%s**.", common.FormatCountdown(cooldown.Remaining)))
		} else {
			log.Errorf("Error claiming daily for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Impossible de réclamer la récompense. Réessaie.")
		}
		return
	}

	house := f.houseName(houseRoleID)
	if err := common.RespondWithEmbed(s, i, rewardEmbed(house, reward), nil, false); err != nil {
		log.Errorf("Error responding to daily claim: %v", err)
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
