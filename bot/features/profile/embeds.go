package profile

import (
	"fmt"
	"strings"

	"collegium/bot/common"
	"collegium/catalog"
	"collegium/models"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) profileEmbed(displayName, house string, profile *models.Profile) *discordgo.MessageEmbed {
	theme := catalog.ThemeFor(house)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s — %s", theme.Icon, displayName, house),
		Color: theme.Color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: fmt.Sprintf("Niveau %d", profile.Level.Level),
				Value: fmt.Sprintf("%s %d / %d XP",
					common.ProgressBar(profile.Level.Progress, 12),
					profile.Level.Into,
					profile.Level.ToNext,
				),
			},
			{Name: "XP total", Value: fmt.Sprintf("%d", profile.TotalXP), Inline: true},
			{Name: "Or", Value: fmt.Sprintf("%s 🪙", common.FormatGold(profile.User.Gold)), Inline: true},
		},
	}

	if title := titleLine(house, f.houseXPTotal(profile, house)); title != "" {
		embed.Description = title
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "30 derniers jours",
		Value: fmt.Sprintf("%d XP • %d sessions",
			profile.Activity30d.XP, profile.Activity30d.Sessions),
		Inline: true,
	})

	if skills := skillLines(profile.TopSkills30d); skills != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Top compétences (30j)", Value: skills, Inline: true,
		})
	}

	if collections := collectionLines(profile.Collections, house); collections != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Collections", Value: collections,
		})
	}

	if banner := f.bannerFor(house); banner != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: banner}
	}

	return embed
}

func (f *Feature) bannerFor(house string) string {
	if url, ok := f.banners[house]; ok {
		return url
	}
	return f.banner
}

// houseXPTotal extracts the XP earned under the viewed member's house,
// which drives title ladder progress.
func (f *Feature) houseXPTotal(profile *models.Profile, house string) int64 {
	var roleID string
	for _, h := range f.houses {
		if h.Name == house {
			roleID = h.RoleID
			break
		}
	}
	for _, h := range profile.XPByHouse {
		if h.HouseRoleID == roleID {
			return h.XP
		}
	}
	return 0
}

func titleLine(house string, xp int64) string {
	progress := catalog.TitleFor(house, xp)
	if progress.Current == nil && progress.Next == nil {
		return ""
	}

	current := "Sans titre"
	if progress.Current != nil {
		current = progress.Current.Name
	}
	if progress.Next == nil {
		return fmt.Sprintf("**%s** (rang maximal)", current)
	}
	return fmt.Sprintf("**%s** — encore %d XP avant **%s**", current, progress.XPToNext, progress.Next.Name)
}

func skillLines(skills []*models.SkillMinutes) string {
	var lines []string
	for _, s := range skills {
		lines = append(lines, fmt.Sprintf("• %s — %s", s.Skill, common.FormatMinutes(int(s.Minutes))))
	}
	return strings.Join(lines, "\n")
}

// collectionLines shows the member's own house first, then the rest.
func collectionLines(collections []*models.CollectionProgress, house string) string {
	var own, others []string
	for _, c := range collections {
		mark := ""
		if c.Completed {
			mark = " ✅"
		}
		line := fmt.Sprintf("%s %s : %d/%d%s", common.RarityEmoji(c.Rarity), c.House, c.Owned, c.Total, mark)
		if c.House == house {
			own = append(own, line)
		} else if c.Owned > 0 {
			others = append(others, line)
		}
	}
	return strings.Join(append(own, others...), "\n")
}

func (f *Feature) inventoryEmbed(displayName string, gold int64, items []*models.OwnedItem) *discordgo.MessageEmbed {
	var lines []string
	for _, item := range items {
		name := item.ItemKey
		emoji := "🎁"
		if it, ok := f.catalogItem(item.ItemKey); ok {
			name = it.Name
			emoji = it.Emoji
		}
		lines = append(lines, fmt.Sprintf("%s %s **%s** — %s",
			common.RarityEmoji(item.Rarity), emoji, name,
			common.FormatDiscordTimestamp(item.ObtainedAt, "d")))
	}

	description := "Ton sac est vide. Termine des sessions pour trouver du butin !"
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎒 Inventaire de %s", displayName),
		Description: description,
		Color:       0x1976d2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Or", Value: fmt.Sprintf("%s 🪙", common.FormatGold(gold))},
		},
	}
}

func (f *Feature) catalogItem(key string) (catalog.Item, bool) {
	return f.catalog.Item(key)
}
