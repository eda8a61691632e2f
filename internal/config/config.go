// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/statementdb-go/internal/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath   string `env:"SDB_DB_PATH" envDefault:"./data/statementdb.db"`
	Env      string `env:"SDB_ENV" envDefault:"development"`
	LogLevel string `env:"SDB_LOG_LEVEL" envDefault:"info"`

	// Locale is the preferred display language for translatable text.
	// Must be one of the supported content languages.
	Locale string `env:"SDB_LOCALE" envDefault:"de_de"`

	// Cache configuration
	RedisURL     string `env:"SDB_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SDB_CACHE_PREFIX" envDefault:"sdb:"`   // Redis key prefix
	CacheTTL     int    `env:"SDB_CACHE_TTL" envDefault:"3600"`      // Default cache TTL in seconds
	CacheMaxSize int    `env:"SDB_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Maintenance configuration
	EventRetentionDays int `env:"SDB_EVENT_RETENTION_DAYS" envDefault:"90"` // Purge events older than this
	OrphanGraceHours   int `env:"SDB_ORPHAN_GRACE_HOURS" envDefault:"24"`   // Keep unreferenced translatables this long

	// Seeding configuration
	DoSeed bool `env:"SDB_DO_SEED" envDefault:"false"` // Enable demo data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !model.IsSupportedLanguage(cfg.Locale) {
		return nil, fmt.Errorf("SDB_LOCALE %q is not a supported language code", cfg.Locale)
	}

	if cfg.EventRetentionDays < 1 {
		return nil, fmt.Errorf("SDB_EVENT_RETENTION_DAYS must be at least 1, got %d", cfg.EventRetentionDays)
	}

	return cfg, nil
}
