// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/translation"
	"github.com/olegiv/statementdb-go/internal/util"
)

// StatementService manages statements, their publications, and the media that
// publish them. Statement content is a translatable reference; the editing
// contract is: create the content translatable together with the statement,
// and on later edits to the original-language wording write only when the
// text actually changed.
type StatementService struct {
	queries      *store.Queries
	translations *translation.Store
	logger       *slog.Logger
}

// NewStatementService creates a new StatementService.
func NewStatementService(db *sql.DB, translations *translation.Store, logger *slog.Logger) *StatementService {
	return &StatementService{
		queries:      store.New(db),
		translations: translations,
		logger:       logger,
	}
}

// CreateStatementParams holds the input for a new statement.
type CreateStatementParams struct {
	PlayerID int64
	Language string // language the statement was originally made in
	Content  string
	StatedOn time.Time
	StatedAt string // HH:MM, optional
	Lat, Lng *float64
	Topics   []int64
}

// Create records a new statement. The content translatable is created with
// the original-language text in the same step.
func (s *StatementService) Create(ctx context.Context, arg CreateStatementParams) (store.Statement, error) {
	if !model.IsSupportedLanguage(arg.Language) {
		return store.Statement{}, &translation.InvalidLanguageError{Code: arg.Language}
	}

	contentID, err := s.translations.CreateWithTranslation(ctx, arg.Language, arg.Content)
	if err != nil {
		return store.Statement{}, err
	}

	now := time.Now()
	statement, err := s.queries.CreateStatement(ctx, store.CreateStatementParams{
		PlayerID:  arg.PlayerID,
		Language:  arg.Language,
		ContentID: contentID,
		StatedOn:  arg.StatedOn,
		StatedAt:  util.NullStringFromValue(arg.StatedAt),
		Latitude:  util.NullFloat64FromPtr(arg.Lat),
		Longitude: util.NullFloat64FromPtr(arg.Lng),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Statement{}, fmt.Errorf("creating statement: %w", err)
	}

	for _, topicID := range arg.Topics {
		if err := s.queries.AddStatementTopic(ctx, statement.ID, topicID); err != nil {
			return store.Statement{}, fmt.Errorf("linking topic %d: %w", topicID, err)
		}
	}

	s.logger.Info("statement created",
		"category", "statement",
		"statement_id", statement.ID,
		"player_id", statement.PlayerID,
		"language", statement.Language,
	)
	return statement, nil
}

// Get fetches a statement by id.
func (s *StatementService) Get(ctx context.Context, id int64) (store.Statement, error) {
	return s.queries.GetStatementByID(ctx, id)
}

// ListByPlayer returns a player's statements, newest first.
func (s *StatementService) ListByPlayer(ctx context.Context, playerID int64) ([]store.Statement, error) {
	return s.queries.ListStatementsByPlayer(ctx, playerID)
}

// UpdateContent corrects the wording of a statement in its original language.
// The write is skipped when the text is unchanged.
func (s *StatementService) UpdateContent(ctx context.Context, statementID int64, content string) error {
	statement, err := s.queries.GetStatementByID(ctx, statementID)
	if err != nil {
		return fmt.Errorf("loading statement: %w", err)
	}

	current, ok, err := s.translations.Get(ctx, statement.ContentID, statement.Language)
	if err != nil {
		return err
	}
	if ok && current == content {
		return nil
	}

	if err := s.translations.Set(ctx, statement.ContentID, statement.Language, content); err != nil {
		return err
	}
	return s.queries.TouchStatement(ctx, statementID, time.Now())
}

// Translate stores the statement content in another supported language.
func (s *StatementService) Translate(ctx context.Context, statementID int64, language, content string) error {
	statement, err := s.queries.GetStatementByID(ctx, statementID)
	if err != nil {
		return fmt.Errorf("loading statement: %w", err)
	}
	return s.translations.Set(ctx, statement.ContentID, language, content)
}

// AttachTopic links a statement to a topic it touches.
func (s *StatementService) AttachTopic(ctx context.Context, statementID, topicID int64) error {
	return s.queries.AddStatementTopic(ctx, statementID, topicID)
}

// AddReference links a statement to another statement it references
// (answer, question, criticism, etc.).
func (s *StatementService) AddReference(ctx context.Context, statementID, referencedID int64) error {
	return s.queries.AddStatementReference(ctx, statementID, referencedID)
}

// Delete removes a statement; its content translatable is collected by the
// sweep.
func (s *StatementService) Delete(ctx context.Context, statementID int64) error {
	return s.queries.DeleteStatement(ctx, statementID)
}

// Summary renders a one-line description of a statement for list views and
// logs, in the preferred display language.
func (s *StatementService) Summary(ctx context.Context, statementID int64) (string, error) {
	statement, err := s.queries.GetStatementByID(ctx, statementID)
	if err != nil {
		return "", fmt.Errorf("loading statement: %w", err)
	}
	player, err := s.queries.GetPlayerByID(ctx, statement.PlayerID)
	if err != nil {
		return "", fmt.Errorf("loading player: %w", err)
	}
	content, err := s.translations.Render(ctx, statement.ContentID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s stated %q at %s", player.Name, content,
		statement.StatedOn.Format("2006-01-02")), nil
}

// CreateMedium adds a medium (newspaper, broadcaster, site) that publishes
// statements. The slug is derived from the name.
func (s *StatementService) CreateMedium(ctx context.Context, name, url string) (store.Medium, error) {
	medium, err := s.queries.CreateMedium(ctx, store.CreateMediumParams{
		Name:      name,
		Slug:      util.Slugify(name),
		URL:       url,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return store.Medium{}, fmt.Errorf("creating medium: %w", err)
	}
	return medium, nil
}

// Publish records the appearance of a statement in a medium.
func (s *StatementService) Publish(ctx context.Context, statementID, mediumID int64, publishedOn time.Time, publishedAt, url string) (store.Publication, error) {
	publication, err := s.queries.CreatePublication(ctx, store.CreatePublicationParams{
		StatementID: statementID,
		MediumID:    mediumID,
		PublishedOn: publishedOn,
		PublishedAt: util.NullStringFromValue(publishedAt),
		URL:         url,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return store.Publication{}, fmt.Errorf("creating publication: %w", err)
	}

	s.logger.Info("statement published",
		"category", "statement",
		"statement_id", statementID,
		"medium_id", mediumID,
	)
	return publication, nil
}

// Publications returns the publications documenting a statement.
func (s *StatementService) Publications(ctx context.Context, statementID int64) ([]store.Publication, error) {
	return s.queries.ListPublicationsByStatement(ctx, statementID)
}
