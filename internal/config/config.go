// Package config loads service configuration from environment variables
// with sensible defaults for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"qrforge/internal/plan"
)

// Config holds all service configuration.
type Config struct {
	// Server
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// HTTP surface
	AllowedOrigin string
	CacheSize     int
	MaxImageSize  int // upper bound for the size query parameter, pixels

	// Logging
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// APIKeys maps caller API keys to their subscription tier. Requests
	// without a recognized key resolve to the free tier.
	APIKeys map[string]plan.Tier
}

// Load reads configuration from QRFORGE_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("QRFORGE_ADDR", ":8080"),
		ReadTimeout:     getEnvDuration("QRFORGE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("QRFORGE_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getEnvDuration("QRFORGE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("QRFORGE_SHUTDOWN_TIMEOUT", 15*time.Second),
		AllowedOrigin:   getEnv("QRFORGE_ALLOWED_ORIGIN", "*"),
		CacheSize:       getEnvInt("QRFORGE_CACHE_SIZE", 512),
		MaxImageSize:    getEnvInt("QRFORGE_MAX_IMAGE_SIZE", 4096),
		LogLevel:        getEnv("QRFORGE_LOG_LEVEL", "info"),
		LogFile:         getEnv("QRFORGE_LOG_FILE", ""),
		LogMaxSizeMB:    getEnvInt("QRFORGE_LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:   getEnvInt("QRFORGE_LOG_MAX_BACKUPS", 3),
		APIKeys:         parseAPIKeys(getEnv("QRFORGE_API_KEYS", "")),
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	if c.MaxImageSize < 64 {
		return fmt.Errorf("max image size must be at least 64, got %d", c.MaxImageSize)
	}
	return nil
}

// parseAPIKeys parses "key1:pro,key2:business" into a key→tier table.
// Malformed entries are skipped; a key without a tier resolves to free.
func parseAPIKeys(raw string) map[string]plan.Tier {
	keys := make(map[string]plan.Tier)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, tier, _ := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		keys[key] = plan.Parse(strings.TrimSpace(tier))
	}
	return keys
}

// PlanForKey resolves an API key to its tier; unknown or empty keys are
// free.
func (c *Config) PlanForKey(key string) plan.Tier {
	if tier, ok := c.APIKeys[key]; ok {
		return tier
	}
	return plan.Free
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
