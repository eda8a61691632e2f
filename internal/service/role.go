// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/translation"
)

// RoleService manages roles. A role's name is a translatable reference, so
// creation and renames go through the translation store.
type RoleService struct {
	queries      *store.Queries
	translations *translation.Store
	logger       *slog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(db *sql.DB, translations *translation.Store, logger *slog.Logger) *RoleService {
	return &RoleService{
		queries:      store.New(db),
		translations: translations,
		logger:       logger,
	}
}

// Create adds a role named in the given language. The name may be translated
// into further languages later via Rename.
func (s *RoleService) Create(ctx context.Context, language, name string) (store.Role, error) {
	nameID, err := s.translations.CreateWithTranslation(ctx, language, name)
	if err != nil {
		return store.Role{}, err
	}

	role, err := s.queries.CreateRole(ctx, nameID, time.Now())
	if err != nil {
		return store.Role{}, fmt.Errorf("creating role: %w", err)
	}

	s.logger.Info("role created", "category", "player", "role_id", role.ID)
	return role, nil
}

// Rename sets the role name in the given language, skipping the write when
// the text is unchanged.
func (s *RoleService) Rename(ctx context.Context, roleID int64, language, name string) error {
	role, err := s.queries.GetRoleByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("loading role: %w", err)
	}

	current, ok, err := s.translations.Get(ctx, role.NameID, language)
	if err != nil {
		return err
	}
	if ok && current == name {
		return nil
	}

	return s.translations.Set(ctx, role.NameID, language, name)
}

// DisplayName renders the role name in the preferred display language.
func (s *RoleService) DisplayName(ctx context.Context, roleID int64) (string, error) {
	role, err := s.queries.GetRoleByID(ctx, roleID)
	if err != nil {
		return "", fmt.Errorf("loading role: %w", err)
	}
	return s.translations.Render(ctx, role.NameID)
}

// Delete removes a role; its name translatable is collected by the sweep.
func (s *RoleService) Delete(ctx context.Context, roleID int64) error {
	return s.queries.DeleteRole(ctx, roleID)
}
