package utils

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	port     string
	hostname string
	logLevel slog.Level

	dbPath     string
	backendURL string
	seedFile   string

	currentUserID string
	sessionTTL    time.Duration

	metricCollectionInterval time.Duration
	location                 *time.Location

	discordGuildID  string
	discordAppToken string
	discordClientId string
}

func parseDuration(key, fallback string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		slog.Error("invalid "+key, "value", value, "error", err)
		os.Exit(1)
	}
	slog.Debug("env", key, value, "duration", duration)
	return duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),
		hostname: func() string {
			hostname := os.Getenv("HOSTNAME")
			if hostname == "" {
				slog.Warn("HOSTNAME is not set, detail links will point at localhost")
				hostname = "localhost"
			}
			slog.Debug("env", "HOSTNAME", hostname)
			return hostname
		}(),
		logLevel: func() slog.Level {
			var level slog.Level
			value := os.Getenv("LOG_LEVEL")
			if value == "" {
				return slog.LevelDebug
			}
			if err := level.UnmarshalText([]byte(value)); err != nil {
				slog.Warn("invalid LOG_LEVEL, using debug", "value", value, "error", err)
				return slog.LevelDebug
			}
			return level
		}(),

		dbPath: func() string {
			dbPath := os.Getenv("DB_PATH")
			if dbPath == "" {
				dbPath = "./sqlite.db"
			}
			slog.Debug("env", "DB_PATH", dbPath)
			return dbPath
		}(),
		backendURL: func() string {
			backendURL := strings.TrimRight(os.Getenv("BACKEND_URL"), "/")
			if backendURL == "" {
				slog.Debug("BACKEND_URL is not set, views use the local database")
				return ""
			}
			slog.Debug("env", "BACKEND_URL", backendURL)
			return backendURL
		}(),
		seedFile: func() string {
			seedFile := os.Getenv("SEED_FILE")
			if seedFile == "" {
				return ""
			}
			if _, err := os.Stat(seedFile); err != nil {
				slog.Error("can't get info of SEED_FILE", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "SEED_FILE", seedFile)
			return seedFile
		}(),

		currentUserID: func() string {
			currentUserID := os.Getenv("CURRENT_USER_ID")
			slog.Debug("env", "CURRENT_USER_ID", currentUserID)
			return currentUserID
		}(),
		sessionTTL: parseDuration("SESSION_TTL", "30m"),

		metricCollectionInterval: parseDuration("METRIC_COLLECTION_INTERVAL", "15s"),
		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Info("DISCORD_APP_TOKEN is not set, Discord commands are disabled")
				return ""
			}
			if len(discordAppToken) > 3 {
				slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			}
			return discordAppToken
		}(),
		discordClientId: func() string {
			discordClientId := os.Getenv("DISCORD_CLIENT_ID")
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientId)
			return discordClientId
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get HOSTNAME env, the host of event detail links
func (c *Config) GetHostname() string {
	return c.hostname
}

// Get LOG_LEVEL env, default to debug
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// Get DB_PATH env, default to ./sqlite.db
func (c *Config) GetDBPath() string {
	return c.dbPath
}

// Get BACKEND_URL env
func (c *Config) GetBackendURL() string {
	return c.backendURL
}

// Get SEED_FILE env
func (c *Config) GetSeedFile() string {
	return c.seedFile
}

// Get CURRENT_USER_ID env
func (c *Config) GetCurrentUserID() string {
	return c.currentUserID
}

// Get SESSION_TTL env, default to 30m
func (c *Config) GetSessionTTL() time.Duration {
	return c.sessionTTL
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DISCORD_GUILD_ID env
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientId() string {
	return c.discordClientId
}

// DiscordEnabled reports whether a Discord bot token is configured.
func (c *Config) DiscordEnabled() bool {
	return c.discordAppToken != ""
}
