package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"manpower/internal/domain/entities"
)

const (
	defaultDatabaseURL   = "postgres://localhost:5432/manpower?sslmode=disable"
	defaultNotifyChannel = "manpower:changes"
	defaultLocale        = "en"
	defaultLogLevel      = "info"
	defaultLogFormat     = "json"
)

type Config struct {
	Token         string
	GuildID       string
	DatabaseURL   string
	RedisURL      string
	NotifyChannel string
	Locale        string
	LogLevel      string
	LogFormat     string

	// UniformRequiresCheckIn rejects "dress" on a person who is not checked in.
	UniformRequiresCheckIn bool
	DefaultTargetCount     int
}

// Load reads the configuration from the environment (and an optional .env file) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Token:         strings.TrimSpace(getenv("TOKEN")),
		GuildID:       strings.TrimSpace(getenv("GUILD_ID")),
		DatabaseURL:   orDefault(getenv("DATABASE_URL"), defaultDatabaseURL),
		RedisURL:      strings.TrimSpace(getenv("REDIS_URL")),
		NotifyChannel: orDefault(getenv("NOTIFY_CHANNEL"), defaultNotifyChannel),
		Locale:        orDefault(getenv("LOCALE"), defaultLocale),
		LogLevel:      orDefault(getenv("LOG_LEVEL"), defaultLogLevel),
		LogFormat:     orDefault(getenv("LOG_FORMAT"), defaultLogFormat),
	}

	if raw := strings.TrimSpace(getenv("UNIFORM_REQUIRES_CHECKIN")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid UNIFORM_REQUIRES_CHECKIN %q: %w", raw, err)
		}
		cfg.UniformRequiresCheckIn = v
	}

	cfg.DefaultTargetCount = entities.DefaultTargetCount
	if raw := strings.TrimSpace(getenv("DEFAULT_TARGET_COUNT")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid DEFAULT_TARGET_COUNT %q: %w", raw, err)
		}
		cfg.DefaultTargetCount = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: TOKEN is required")
	}

	for _, r := range c.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: GUILD_ID must be a Discord snowflake (digits only)")
		}
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.DefaultTargetCount < 1 {
		return fmt.Errorf("config: DEFAULT_TARGET_COUNT must be positive, got %d", c.DefaultTargetCount)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
