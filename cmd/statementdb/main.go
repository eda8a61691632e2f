// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/statementdb-go/internal/cache"
	"github.com/olegiv/statementdb-go/internal/config"
	"github.com/olegiv/statementdb-go/internal/demo"
	"github.com/olegiv/statementdb-go/internal/logging"
	"github.com/olegiv/statementdb-go/internal/scheduler"
	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/translation"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	sweepOnce := flag.Bool("sweep", false, "Run one maintenance pass and exit")
	renderID := flag.Int64("render", 0, "Render the display text of a translatable and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "statementdb - public statement archive\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SDB_DB_PATH       SQLite database path (default: ./data/statementdb.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SDB_LOCALE        Preferred display language: de_de|en_US (default: de_de)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SDB_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SDB_REDIS_URL     Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SDB_DO_SEED       Seed demo archive content on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("statementdb %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(*sweepOnce, *renderID); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(sweepOnce bool, renderID int64) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	translations, err := translation.NewStore(db, cfg.Locale)
	if err != nil {
		return fmt.Errorf("initializing translations: %w", err)
	}
	slog.Info("translation store ready", "locale", cfg.Locale)

	ctx := context.Background()

	if cfg.DoSeed {
		if err := demo.Seed(ctx, db, translations, logger); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	// Initialize the display text cache
	cacheConfig := cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
	cacher, err := cache.NewCache(cacheConfig)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer cacher.Close()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}
	displayCache := cache.NewDisplayTextCache(cacher, translations, cacheConfig.DefaultTTL)

	sched := scheduler.New(db, logger, scheduler.Options{
		OrphanGrace:    time.Duration(cfg.OrphanGraceHours) * time.Hour,
		EventRetention: time.Duration(cfg.EventRetentionDays) * 24 * time.Hour,
	})
	if provider, ok := cacher.(cache.StatsProvider); ok {
		sched.WithCacheStats(provider)
	}

	if renderID != 0 {
		text, err := displayCache.Render(ctx, renderID)
		if err != nil {
			return fmt.Errorf("rendering translatable %d: %w", renderID, err)
		}
		_, _ = fmt.Println(text)
		return nil
	}

	if sweepOnce {
		return sched.RunMaintenance(ctx)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutting down", "signal", sig.String())

	return nil
}
