package panels

import (
	"github.com/bwmarrin/discordgo"
)

func focusPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "⏳ Sessions Focus",
		Description: "Choisis une durée et plonge dans ta quête. Valide à la fin pour récolter XP, or et butin.",
		Color:       0x1976d2,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "focus_start_15", Label: "15 min", Style: discordgo.SecondaryButton},
				discordgo.Button{CustomID: "focus_start_25", Label: "25 min", Style: discordgo.PrimaryButton},
				discordgo.Button{CustomID: "focus_start_45", Label: "45 min", Style: discordgo.PrimaryButton},
				discordgo.Button{CustomID: "focus_start_60", Label: "1 h", Style: discordgo.PrimaryButton},
				discordgo.Button{CustomID: "focus_custom", Label: "Personnalisé…", Style: discordgo.SecondaryButton},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "focus_validate", Label: "Valider", Style: discordgo.SuccessButton},
				discordgo.Button{CustomID: "focus_abort", Label: "Interrompre", Style: discordgo.DangerButton},
			},
		},
	}

	return embed, components
}

func dailyPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Récompense quotidienne",
		Description: "Réclame ta récompense chaque jour pour faire grimper ta série. 🔥",
		Color:       0x2e7d32,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "daily_claim", Label: "Réclamer", Style: discordgo.SuccessButton, Emoji: &discordgo.ComponentEmoji{Name: "🎁"}},
			},
		},
	}

	return embed, components
}

func shopPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🏪 Boutique",
		Description: "Quatre offres personnelles par jour. Ouvre la boutique pour voir les tiennes.",
		Color:       0x6a5acd,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "shop_open", Label: "Ouvrir la boutique", Style: discordgo.PrimaryButton, Emoji: &discordgo.ComponentEmoji{Name: "🏪"}},
			},
		},
	}

	return embed, components
}

func profilePanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "📜 Profil",
		Description: "Consulte ton niveau, tes titres et tes collections.",
		Color:       0xb71c1c,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "profile_open", Label: "Voir mon profil", Style: discordgo.PrimaryButton, Emoji: &discordgo.ComponentEmoji{Name: "📜"}},
			},
		},
	}

	return embed, components
}

func leaderboardPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Classement",
		Description: "Le top XP des 30 derniers jours.",
		Color:       0xf9a825,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: "leaderboard_refresh", Label: "Afficher", Style: discordgo.PrimaryButton, Emoji: &discordgo.ComponentEmoji{Name: "🏆"}},
			},
		},
	}

	return embed, components
}

func (f *Feature) housesPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🏰 Maisons",
		Description: "Choisis ta maison. Elle colore tes sessions, ton butin et ton échelle de titres.",
		Color:       0x424242,
	}

	var options []discordgo.SelectMenuOption
	for _, h := range f.houses {
		opt := discordgo.SelectMenuOption{
			Label: h.Name,
			Value: h.RoleID,
		}
		if h.Emoji != "" {
			opt.Emoji = &discordgo.ComponentEmoji{Name: h.Emoji}
		}
		options = append(options, opt)
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    "house_select",
					Placeholder: "Rejoindre une maison…",
					Options:     options,
				},
			},
		},
	}

	return embed, components
}
