package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"collegium/bot/common"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const topSize = 10

// Feature represents the XP leaderboard feature
type Feature struct {
	session      *discordgo.Session
	statsService service.StatsService
}

// NewFeature creates a new leaderboard feature instance
func NewFeature(session *discordgo.Session, statsService service.StatsService) *Feature {
	return &Feature{
		session:      session,
		statsService: statsService,
	}
}

// HandleCommand handles the /leaderboard command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	public := false
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "public" {
			public = opt.BoolValue()
		}
	}
	f.show(s, i, !public)
}

// HandleComponent handles the leaderboard_refresh panel button
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.MessageComponentData().CustomID == "leaderboard_refresh" {
		f.show(s, i, true)
	}
}

func (f *Feature) show(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) {
	ctx := context.Background()

	entries, err := f.statsService.Leaderboard(ctx, topSize)
	if err != nil {
		log.Errorf("Error loading leaderboard: %v", err)
		common.RespondWithError(s, i, "Impossible de charger le classement. Réessaie.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Classement — 30 derniers jours",
		Color: 0xf9a825,
	}

	if len(entries) == 0 {
		embed.Description = "Personne n'a encore gagné d'XP ce mois-ci."
	} else {
		var lines []string
		for rank, entry := range entries {
			medal := fmt.Sprintf("`#%d`", rank+1)
			switch rank {
			case 0:
				medal = "🥇"
			case 1:
				medal = "🥈"
			case 2:
				medal = "🥉"
			}
			name := common.GetDisplayNameInt64(s, i.GuildID, entry.DiscordID)
			lines = append(lines, fmt.Sprintf("%s **%s** — %d XP", medal, name, entry.XP))
		}
		embed.Description = strings.Join(lines, "\n")
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: "leaderboard_refresh",
					Label:    "Actualiser",
					Style:    discordgo.SecondaryButton,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
				},
			},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, components, ephemeral); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}
