package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"collegium/bot"
	"collegium/catalog"
	"collegium/config"
	"collegium/database"
	"collegium/events"
	"collegium/repository"
	"collegium/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting collegium bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Build the item catalog and house directory
	cat := catalog.Default()
	houses := make(service.HouseDirectory, len(cfg.Houses))
	for _, h := range cfg.Houses {
		houses[h.RoleID] = h.Name
	}

	// Separate generators: the roller and the shop guard theirs with
	// their own locks.
	roller := service.NewLootRoller(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	shopRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	// Initialize services
	log.Println("Initializing services...")
	userService := service.NewUserService(uowFactory)
	focusService := service.NewFocusService(uowFactory, roller, houses)
	dailyService := service.NewDailyService(uowFactory, roller, houses)
	shopService := service.NewShopService(uowFactory, cat, houses, shopRng, cfg.OfferRetentionDays)
	statsService := service.NewStatsService(uowFactory, cat)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:         cfg.DiscordToken,
		AppID:         cfg.DiscordAppID,
		GuildID:       cfg.DiscordGuildID,
		Houses:        cfg.Houses,
		Banners:       cfg.Banners,
		DefaultBanner: cfg.DefaultBanner,
	}
	services := bot.Services{
		User:  userService,
		Focus: focusService,
		Daily: dailyService,
		Shop:  shopService,
		Stats: statsService,
	}
	discordBot, err := bot.New(botConfig, services, cat, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
