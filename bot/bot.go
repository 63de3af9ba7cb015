package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"collegium/bot/features/daily"
	"collegium/bot/features/focus"
	"collegium/bot/features/leaderboard"
	"collegium/bot/features/panels"
	"collegium/bot/features/profile"
	"collegium/bot/features/shop"
	"collegium/catalog"
	"collegium/config"
	"collegium/events"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token         string
	AppID         string
	GuildID       string
	Houses        []config.House
	Banners       map[string]string
	DefaultBanner string
}

// Services groups the application services the bot depends on
type Services struct {
	User  service.UserService
	Focus service.FocusService
	Daily service.DailyService
	Shop  service.ShopService
	Stats service.StatsService
}

type Bot struct {
	config  Config
	session *discordgo.Session

	focusFeature       *focus.Feature
	dailyFeature       *daily.Feature
	shopFeature        *shop.Feature
	profileFeature     *profile.Feature
	leaderboardFeature *leaderboard.Feature
	panelsFeature      *panels.Feature

	eventBus *events.Bus
}

func New(config Config, services Services, cat *catalog.Catalog, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:             config,
		session:            dg,
		focusFeature:       focus.NewFeature(dg, services.Focus, config.Houses, config.GuildID),
		dailyFeature:       daily.NewFeature(dg, services.Daily, config.Houses),
		shopFeature:        shop.NewFeature(dg, services.Shop, cat, config.Houses),
		profileFeature:     profile.NewFeature(dg, services.Stats, cat, config.Houses, config.Banners, config.DefaultBanner, config.GuildID),
		leaderboardFeature: leaderboard.NewFeature(dg, services.Stats),
		panelsFeature:      panels.NewFeature(dg, config.Houses, config.GuildID),
		eventBus:           eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component and modal interaction handlers
	dg.AddHandler(bot.handleInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Log level crossings as they happen
	eventBus.Subscribe(events.EventTypeXPAwarded, func(ctx context.Context, event events.Event) {
		award, ok := event.(events.XPAwardedEvent)
		if !ok {
			return
		}
		before := service.LevelFromXP(award.TotalXP - award.Delta)
		after := service.LevelFromXP(award.TotalXP)
		if after.Level > before.Level {
			log.Infof("User %d reached level %d (%s)", award.DiscordID, after.Level, award.Source)
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	switch name {
	case "ping":
		b.handlePing(s, i)
	case "focus":
		b.focusFeature.HandleCommand(s, i)
	case "daily":
		b.dailyFeature.HandleCommand(s, i)
	case "profile":
		b.profileFeature.HandleProfileCommand(s, i)
	case "inventory":
		b.profileFeature.HandleInventoryCommand(s, i)
	case "shop":
		b.shopFeature.HandleShopCommand(s, i)
	case "buy":
		b.shopFeature.HandleBuyCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	default:
		if strings.HasSuffix(name, "-panel") {
			b.panelsFeature.HandleCommand(s, i)
		}
	}
}

func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "focus_"):
			b.focusFeature.HandleComponent(s, i)
		case customID == "daily_claim":
			b.dailyFeature.HandleComponent(s, i)
		case strings.HasPrefix(customID, "shop_"):
			b.shopFeature.HandleComponent(s, i)
		case customID == "profile_open":
			b.profileFeature.HandleComponent(s, i)
		case customID == "leaderboard_refresh":
			b.leaderboardFeature.HandleComponent(s, i)
		case customID == "house_select":
			b.panelsFeature.HandleComponent(s, i)
		}

	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, "focus_") {
			b.focusFeature.HandleModal(s, i)
		}
	}
}

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "🏓 Pong !",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to ping command: %v", err)
	}
}
