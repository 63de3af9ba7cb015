package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord, scoped to
// the configured guild.
func (b *Bot) registerCommands() error {
	minMinutes := float64(1)
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Vérifie que le bot répond",
		},
		{
			Name:        "focus",
			Description: "Sessions de travail chronométrées",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Démarre une session focus",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minutes",
							Description: "Durée en minutes",
							Required:    true,
							MinValue:    &minMinutes,
							MaxValue:    240,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "skill",
							Description: "Compétence travaillée",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "subject",
							Description: "Sujet précis",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "validate",
					Description: "Valide la session terminée et récolte les récompenses",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "abort",
					Description: "Interrompt la session en cours (XP réduit)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Affiche la session en cours",
				},
			},
		},
		{
			Name:        "daily",
			Description: "Réclame ta récompense quotidienne",
		},
		{
			Name:        "profile",
			Description: "Affiche un profil de personnage",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Membre à afficher (toi par défaut)",
					Required:    false,
				},
			},
		},
		{
			Name:        "inventory",
			Description: "Affiche ton or et ton butin récent",
		},
		{
			Name:        "shop",
			Description: "Ouvre ta boutique du jour",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "public",
					Description: "Afficher la boutique publiquement",
					Required:    false,
				},
			},
		},
		{
			Name:        "buy",
			Description: "Achète une offre de ta boutique",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "offer",
					Description: "Numéro de l'offre",
					Required:    true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Classement XP des 30 derniers jours",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "public",
					Description: "Afficher le classement publiquement",
					Required:    false,
				},
			},
		},
	}

	adminPerm := int64(discordgo.PermissionManageServer)
	panelNames := []string{"focus-panel", "daily-panel", "shop-panel", "profile-panel", "leaderboard-panel", "houses-panel"}
	for _, name := range panelNames {
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:                     name,
			Description:              "Publie le panneau " + name[:len(name)-6] + " dans ce salon",
			DefaultMemberPermissions: &adminPerm,
		})
	}

	appID := b.config.AppID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
