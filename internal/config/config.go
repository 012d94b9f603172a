// Package config loads the bot configuration from environment variables,
// optionally seeded from a .env file. Every knob has a default matching the
// group's established policy; only the bot token is mandatory.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// Token is the Telegram bot API token. Required.
	Token string

	// RedisAddr enables the Redis-backed activity store when non-empty;
	// the in-memory store is used otherwise.
	RedisAddr string

	// MetricsAddr is the listen address for the Prometheus endpoint.
	MetricsAddr string

	// PollTimeout is the long-polling timeout against the Telegram API.
	PollTimeout time.Duration

	// RequiredHashtags is the set of hashtags of which at least one must
	// appear in every message in the moderated topic.
	RequiredHashtags []string

	// SaleHashtag marks a message as a sale offer, subject to MinPrice.
	SaleHashtag string

	// MinPrice is the minimum listed price for sale offers, in hryvnias.
	MinPrice int

	// MaxBurst is how many accepted messages a user may post before the
	// cooldown rule applies.
	MaxBurst int

	// CooldownWindow is how long a bursting user must wait between messages.
	CooldownWindow time.Duration

	// NotificationDeleteDelay is how long rejection notices stay visible.
	NotificationDeleteDelay time.Duration

	// WelcomeDeleteDelay is how long welcome messages stay visible.
	WelcomeDeleteDelay time.Duration

	// CommandDeleteDelay is how long admin command confirmations stay
	// visible before both the confirmation and the command are deleted.
	CommandDeleteDelay time.Duration
}

// Default returns the configuration with every knob at its default.
func Default() Config {
	return Config{
		MetricsAddr:             ":2112",
		PollTimeout:             10 * time.Second,
		RequiredHashtags:        []string{"#продам", "#куплю"},
		SaleHashtag:             "#продам",
		MinPrice:                3000,
		MaxBurst:                3,
		CooldownWindow:          60 * time.Minute,
		NotificationDeleteDelay: 10 * time.Second,
		WelcomeDeleteDelay:      15 * time.Second,
		CommandDeleteDelay:      5 * time.Second,
	}
}

// Load builds the configuration from the environment. A .env file in the
// working directory is read first if present. It returns an error only when
// the bot token is missing.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file found, using environment variables")
	}

	cfg := Default()

	cfg.Token = os.Getenv("BOT_TOKEN")
	if cfg.Token == "" {
		return Config{}, fmt.Errorf("config: BOT_TOKEN is not set")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("POLL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PollTimeout = d
		}
	}
	if v := os.Getenv("REQUIRED_HASHTAGS"); v != "" {
		cfg.RequiredHashtags = splitTags(v)
	}
	if v := os.Getenv("SALE_HASHTAG"); v != "" {
		cfg.SaleHashtag = v
	}
	if v := os.Getenv("MIN_PRICE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MinPrice = n
		}
	}
	if v := os.Getenv("MAX_MESSAGES_BEFORE_COOLDOWN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBurst = n
		}
	}
	if v := os.Getenv("MESSAGE_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CooldownWindow = d
		}
	}
	if v := os.Getenv("NOTIFICATION_DELETE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.NotificationDeleteDelay = d
		}
	}
	if v := os.Getenv("WELCOME_DELETE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.WelcomeDeleteDelay = d
		}
	}
	if v := os.Getenv("COMMAND_DELETE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CommandDeleteDelay = d
		}
	}

	return cfg, nil
}

// splitTags parses a comma-separated hashtag list, trimming whitespace and
// dropping empty entries.
func splitTags(v string) []string {
	var tags []string
	for _, tag := range strings.Split(v, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
