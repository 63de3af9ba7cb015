package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// House maps a house (guild affiliation) name to the Discord role backing it.
type House struct {
	Name   string
	RoleID string
	Emoji  string
}

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordAppID   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// House configuration, parsed from HOUSE_ROLES ("Name:RoleID[:Emoji]", comma separated)
	Houses []House

	// Banner image URLs by house name, plus a default
	Banners       map[string]string
	DefaultBanner string

	// Shop configuration
	OfferRetentionDays int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:   os.Getenv("DISCORD_APP_ID"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		OfferRetentionDays: 14,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	houses, err := ParseHouses(os.Getenv("HOUSE_ROLES"))
	if err != nil {
		return nil, err
	}
	config.Houses = houses

	config.DefaultBanner = os.Getenv("BANNER_DEFAULT")
	config.Banners = make(map[string]string)
	for _, h := range houses {
		key := "BANNER_" + strings.ToUpper(h.Name)
		if url := os.Getenv(key); url != "" {
			config.Banners[h.Name] = url
		}
	}

	if retention := os.Getenv("SHOP_OFFER_RETENTION_DAYS"); retention != "" {
		if parsed, err := strconv.Atoi(retention); err == nil && parsed > 0 {
			config.OfferRetentionDays = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// ParseHouses parses the HOUSE_ROLES mapping string. Each entry is
// "Name:RoleID" with an optional ":Emoji" suffix.
func ParseHouses(raw string) ([]House, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var houses []House
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid HOUSE_ROLES entry: %q", entry)
		}

		house := House{Name: parts[0], RoleID: parts[1]}
		if len(parts) > 2 {
			house.Emoji = parts[2]
		}
		houses = append(houses, house)
	}

	return houses, nil
}

// HouseByRoleID returns the configured house backed by the given role, if any.
func (c *Config) HouseByRoleID(roleID string) *House {
	for i := range c.Houses {
		if c.Houses[i].RoleID == roleID {
			return &c.Houses[i]
		}
	}
	return nil
}

// HouseByName returns the configured house with the given name, if any.
func (c *Config) HouseByName(name string) *House {
	for i := range c.Houses {
		if c.Houses[i].Name == name {
			return &c.Houses[i]
		}
	}
	return nil
}
