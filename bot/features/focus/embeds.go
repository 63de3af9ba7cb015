package focus

import (
	"fmt"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/models"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
)

func sessionComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: "focus_validate",
					Label:    "Valider",
					Style:    discordgo.SuccessButton,
				},
				discordgo.Button{
					CustomID: "focus_abort",
					Label:    "Interrompre",
					Style:    discordgo.DangerButton,
				},
			},
		},
	}
}

func sessionStartedEmbed(house string, session *service.ActiveSession) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Session Focus — %s", theme.Icon, common.FormatMinutes(session.Minutes)),
		Description: introLine(house, session.Minutes, session.Skill),
		Color:       theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Compétence", Value: session.Skill, Inline: true},
			{Name: "Fin", Value: common.FormatDiscordTimestamp(session.TargetEnd, "R"), Inline: true},
		},
	}
}

func sessionStatusEmbed(house string, session *service.ActiveSession) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Session en cours", theme.Icon),
		Color: theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Compétence", Value: session.Skill, Inline: true},
			{Name: "Durée", Value: common.FormatMinutes(session.Minutes), Inline: true},
			{Name: "Fin", Value: common.FormatDiscordTimestamp(session.TargetEnd, "R"), Inline: true},
		},
	}
}

func sessionValidatedEmbed(house string, result *models.SessionResult) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Session validée",
		Description: victoryLine(house, result.XP, result.Gold),
		Color:       theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Temps", Value: common.FormatMinutes(result.ElapsedMin), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("+%d", result.XP), Inline: true},
		},
	}
	if result.Gold > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Or", Value: fmt.Sprintf("+%s 🪙", common.FormatGold(result.Gold)), Inline: true,
		})
	}
	if result.Drop != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🎁 Butin",
			Value: fmt.Sprintf("%s **%s** (%s)", result.Drop.Emoji, result.Drop.Name, result.Drop.Rarity),
		})
	}
	return embed
}

func sessionAbortedEmbed(house string, result *models.SessionResult) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)
	return &discordgo.MessageEmbed{
		Title:       "⚰️ Session interrompue",
		Description: failLine(house, result.XP),
		Color:       theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Temps", Value: common.FormatMinutes(result.ElapsedMin), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("+%d", result.XP), Inline: true},
		},
	}
}
