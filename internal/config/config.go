package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ID sequence backends.
const (
	SequenceStore  = "store"
	SequenceMemory = "memory"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	Tracker     TrackerConfig
}

type HTTPConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	Path     string
	LogLevel string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// TrackerConfig holds the knobs of the task/member services.
type TrackerConfig struct {
	IDSequence     string
	CascadeDeletes bool
	CacheTTL       time.Duration
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the tracker can boot without any setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host: getString("HTTP_HOST", ""),
			Port: getString("HTTP_PORT", "8008"),
		},
		Database: DatabaseConfig{
			Path:     getString("DB_PATH", "tracker.db"),
			LogLevel: getString("DB_LOG_LEVEL", "warn"),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
		Tracker: TrackerConfig{
			IDSequence:     strings.ToLower(getString("ID_SEQUENCE", SequenceStore)),
			CascadeDeletes: getBool("CASCADE_DELETES", false),
			CacheTTL:       getDuration("CACHE_TTL", 0),
		},
	}

	switch cfg.Tracker.IDSequence {
	case SequenceStore, SequenceMemory:
	default:
		return nil, fmt.Errorf("invalid ID_SEQUENCE %q: want %q or %q", cfg.Tracker.IDSequence, SequenceStore, SequenceMemory)
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
