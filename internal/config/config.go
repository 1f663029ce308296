// Package config centralises configuration parsing for the NeuroMate binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress          string
	PostgresURL          string // Empty selects the in-memory repository.
	MigrateOnStart       bool
	KafkaBrokers         []string
	SchemaRegistryURL    string
	OutboxEnabled        bool
	OutboxPollInterval   time.Duration
	OutboxBatchSize      int
	JWTSecret            string
	JWTIssuer            string
	JWTTTL               time.Duration
	DLQPollInterval      time.Duration // Interval between DLQ polling iterations.
	DLQMaxRetries        int           // Maximum number of DLQ retry attempts before quarantine.
	DLQBaseDelay         time.Duration // Base delay used for exponential backoff.
	DLQBatchSize         int
	MetricsAddress       string
	ConsumerGroupID      string
	ConsumerTopics       []string
	CORSOrigin           string
	CalendarTimezone     string
	CalendarCacheSize    int
	CalendarCacheTTL     time.Duration
	CalendarFetchTimeout time.Duration
	LogLevel             string
}

// Load reads an optional .env file and then environment variables into Config,
// applying sensible defaults for local dev.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddress:          getEnv("HTTP_ADDRESS", ":8080"),
		PostgresURL:          getEnv("POSTGRES_URL", ""),
		MigrateOnStart:       getBoolEnv("MIGRATE_ON_START", true),
		KafkaBrokers:         splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		SchemaRegistryURL:    getEnv("SCHEMA_REGISTRY_URL", "http://schema-registry:8081"),
		OutboxEnabled:        getBoolEnv("OUTBOX_ENABLED", true),
		OutboxPollInterval:   getDurationEnv("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:      getIntEnv("OUTBOX_BATCH_SIZE", 25),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:            getEnv("JWT_ISSUER", "neuromate.api"),
		JWTTTL:               getDurationEnv("JWT_TTL", 7*24*time.Hour),
		DLQPollInterval:      getDurationEnv("DLQ_POLL_INTERVAL", 30*time.Second),
		DLQMaxRetries:        getIntEnv("DLQ_MAX_RETRIES", 5),
		DLQBaseDelay:         getDurationEnv("DLQ_BASE_DELAY", time.Minute),
		DLQBatchSize:         getIntEnv("DLQ_BATCH_SIZE", 50),
		MetricsAddress:       getEnv("METRICS_ADDRESS", ":9102"),
		ConsumerGroupID:      getEnv("CONSUMER_GROUP_ID", "neuromate-event-log"),
		ConsumerTopics:       splitAndTrim(getEnv("CONSUMER_TOPICS", "activity_events,community_events")),
		CORSOrigin:           getEnv("CORS_ORIGIN", "http://localhost:5173"),
		CalendarTimezone:     getEnv("CALENDAR_TIMEZONE", "UTC"),
		CalendarCacheSize:    getIntEnv("CALENDAR_CACHE_SIZE", 1024),
		CalendarCacheTTL:     getDurationEnv("CALENDAR_CACHE_TTL", 5*time.Minute),
		CalendarFetchTimeout: getDurationEnv("CALENDAR_FETCH_TIMEOUT", 5*time.Second),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}
}

// Location resolves CalendarTimezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.CalendarTimezone)
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be > 0, got %d", c.OutboxBatchSize))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_POLL_INTERVAL must be > 0, got %s", c.OutboxPollInterval))
	}
	if c.DLQPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("DLQ_POLL_INTERVAL must be > 0, got %s", c.DLQPollInterval))
	}
	if c.CalendarCacheSize < 0 {
		errs = append(errs, fmt.Errorf("CALENDAR_CACHE_SIZE must be >= 0, got %d", c.CalendarCacheSize))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("CALENDAR_TIMEZONE: %w", err))
	}
	if c.OutboxEnabled && c.PostgresURL != "" && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when the outbox is enabled"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
