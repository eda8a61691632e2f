// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the archive's maintenance jobs: sweeping orphaned
// translatables and purging old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/statementdb-go/internal/cache"
	"github.com/olegiv/statementdb-go/internal/store"
)

// Options configures the maintenance jobs.
type Options struct {
	// OrphanGrace spares translatables created within this window, so
	// freshly created units waiting to be attached to an owner survive.
	OrphanGrace time.Duration

	// EventRetention is how long event log entries are kept.
	EventRetention time.Duration
}

// DefaultOptions returns the default maintenance windows.
func DefaultOptions() Options {
	return Options{
		OrphanGrace:    24 * time.Hour,
		EventRetention: 90 * 24 * time.Hour,
	}
}

// Scheduler handles scheduled maintenance of the archive database.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
	opts   Options
	stats  cache.StatsProvider
}

// WithCacheStats attaches a cache whose statistics are reported with each
// maintenance run.
func (s *Scheduler) WithCacheStats(p cache.StatsProvider) *Scheduler {
	s.stats = p
	return s
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, opts Options) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
		opts:   opts,
	}
}

// Start begins the scheduler with an hourly maintenance job.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if err := s.RunMaintenance(context.Background()); err != nil {
			s.logger.Error("maintenance run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunMaintenance executes one maintenance pass: remove orphaned translatables
// and purge expired events. Each run is tagged with an id so its log lines can
// be correlated.
func (s *Scheduler) RunMaintenance(ctx context.Context) error {
	runID := uuid.New().String()
	logger := s.logger.With("run_id", runID)

	swept, err := s.SweepOrphans(ctx)
	if err != nil {
		return fmt.Errorf("sweeping orphan translatables: %w", err)
	}
	if swept > 0 {
		logger.Info("swept orphan translatables", "category", "translation", "count", swept)
	}

	purged, err := store.New(s.db).DeleteEventsBefore(ctx, time.Now().Add(-s.opts.EventRetention))
	if err != nil {
		return fmt.Errorf("purging events: %w", err)
	}
	if purged > 0 {
		logger.Info("purged old events", "category", "system", "count", purged)
	}

	if s.stats != nil {
		stats := s.stats.Stats()
		logger.Info("cache statistics", "category", "cache",
			"hits", stats.Hits, "misses", stats.Misses, "items", stats.Items)
	}

	return nil
}

// SweepOrphans deletes translatables no archive entity references anymore,
// along with their translation rows. Returns the number of translatables
// removed.
func (s *Scheduler) SweepOrphans(ctx context.Context) (int, error) {
	queries := store.New(s.db)

	orphans, err := queries.ListOrphanTranslatables(ctx, time.Now().Add(-s.opts.OrphanGrace))
	if err != nil {
		return 0, err
	}

	for _, id := range orphans {
		if err := queries.DeleteTranslatable(ctx, id); err != nil {
			return 0, fmt.Errorf("deleting translatable %d: %w", id, err)
		}
	}
	return len(orphans), nil
}
