package daily

import (
	"fmt"
	"strings"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/models"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
)

func rewardEmbed(house string, reward *models.DailyReward) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)

	embed := &discordgo.MessageEmbed{
		Title: "🎁 Récompense quotidienne",
		Color: theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Or", Value: fmt.Sprintf("+%s 🪙", common.FormatGold(reward.Gold)), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("+%d", reward.XP), Inline: true},
			{Name: "Série", Value: streakLine(reward.Streak), Inline: true},
		},
	}

	if reward.Drop != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🎉 Butin bonus",
			Value: fmt.Sprintf("%s **%s** (%s)", reward.Drop.Emoji, reward.Drop.Name, reward.Drop.Rarity),
		})
	}

	return embed
}

// streakLine renders the streak as flames, capped at the bonus ceiling.
func streakLine(streak int) string {
	capped := streak
	if capped > service.DailyStreakCap {
		capped = service.DailyStreakCap
	}
	return fmt.Sprintf("%s %d", strings.Repeat("🔥", capped), streak)
}
