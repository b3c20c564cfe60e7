package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Tracker connection
	TrackerBaseURL  string
	TrackerEmail    string
	TrackerAPIToken string

	// Auth for the HTTP service
	TabsyncAPIKey string

	// Default upsert conflict policy: reject or merge
	UpsertPolicy string

	// HTTP server limits
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8085"),

		TrackerBaseURL:  os.Getenv("TRACKER_BASE_URL"),
		TrackerEmail:    os.Getenv("TRACKER_EMAIL"),
		TrackerAPIToken: os.Getenv("TRACKER_API_TOKEN"),

		TabsyncAPIKey: os.Getenv("TABSYNC_API_KEY"),

		UpsertPolicy: envOr("UPSERT_POLICY", "reject"),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 1048576), // 1MB
		ReadTimeout:  envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 60*time.Second),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1048576
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 60 * time.Second
	}

	return cfg
}

// Validate checks the settings every invocation needs.
func (c Config) Validate() error {
	if c.TrackerBaseURL == "" {
		return fmt.Errorf("TRACKER_BASE_URL is required")
	}
	if c.TrackerEmail == "" {
		return fmt.Errorf("TRACKER_EMAIL is required")
	}
	if c.TrackerAPIToken == "" {
		return fmt.Errorf("TRACKER_API_TOKEN is required")
	}
	return nil
}

// ValidateServer additionally checks the settings the HTTP service needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.TabsyncAPIKey == "" {
		return fmt.Errorf("TABSYNC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
