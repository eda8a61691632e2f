// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic over the archive store: players and
// their engagements, roles, topics, media, statements and publications. Every
// user-facing text field is mediated by the translation store.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/util"
)

// ErrEngagementDates is returned when an engagement ends before it starts.
var ErrEngagementDates = errors.New("engagement end date must be after start date")

// PlayerService manages players and their role engagements.
type PlayerService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(db *sql.DB, logger *slog.Logger) *PlayerService {
	return &PlayerService{
		queries: store.New(db),
		logger:  logger,
	}
}

// Create adds a new player. The slug is derived from the name; pass a
// non-empty slug to override.
func (s *PlayerService) Create(ctx context.Context, name, slug string) (store.Player, error) {
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		return store.Player{}, fmt.Errorf("invalid slug %q for player %q", slug, name)
	}

	now := time.Now()
	player, err := s.queries.CreatePlayer(ctx, store.CreatePlayerParams{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Player{}, fmt.Errorf("creating player: %w", err)
	}

	s.logger.Info("player created", "category", "player", "player_id", player.ID, "slug", player.Slug)
	return player, nil
}

// Get fetches a player by id.
func (s *PlayerService) Get(ctx context.Context, id int64) (store.Player, error) {
	return s.queries.GetPlayerByID(ctx, id)
}

// GetBySlug fetches a player by slug.
func (s *PlayerService) GetBySlug(ctx context.Context, slug string) (store.Player, error) {
	return s.queries.GetPlayerBySlug(ctx, slug)
}

// List returns all players ordered by name.
func (s *PlayerService) List(ctx context.Context) ([]store.Player, error) {
	return s.queries.ListPlayers(ctx)
}

// Delete removes a player and, through the store's cascade rules, their
// engagements, statements and publications. Content translatables become
// orphans and are collected by the maintenance sweep.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeletePlayer(ctx, id); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	s.logger.Info("player deleted", "category", "player", "player_id", id)
	return nil
}

// Engage records that a player held a role from startDate, optionally until
// endDate. An end date before the start date is rejected.
func (s *PlayerService) Engage(ctx context.Context, playerID, roleID int64, startDate time.Time, endDate *time.Time) (store.Engagement, error) {
	if endDate != nil && !startDate.Before(*endDate) {
		return store.Engagement{}, ErrEngagementDates
	}

	engagement, err := s.queries.CreateEngagement(ctx, store.CreateEngagementParams{
		PlayerID:  playerID,
		RoleID:    roleID,
		StartDate: startDate,
		EndDate:   util.NullTimeFromPtr(endDate),
	})
	if err != nil {
		return store.Engagement{}, fmt.Errorf("creating engagement: %w", err)
	}
	return engagement, nil
}

// Engagements returns a player's engagements ordered by start date.
func (s *PlayerService) Engagements(ctx context.Context, playerID int64) ([]store.Engagement, error) {
	return s.queries.ListEngagementsByPlayer(ctx, playerID)
}
