// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo seeds the archive with sample content for local development.
package demo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/service"
	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/translation"
)

// Seed creates sample archive content: two players with roles and
// engagements, a topic, statements with translations, and a publication.
// It is a no-op when the archive already holds players, so repeated starts
// don't duplicate the demo data.
func Seed(ctx context.Context, db *sql.DB, translations *translation.Store, logger *slog.Logger) error {
	queries := store.New(db)

	// Check whether the archive already has content
	_, err := queries.GetPlayerBySlug(ctx, "angela-merkel")
	if err == nil {
		slog.Info("demo content already present, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for demo content: %w", err)
	}

	players := service.NewPlayerService(db, logger)
	roles := service.NewRoleService(db, translations, logger)
	topics := service.NewTopicService(db, translations, logger)
	statements := service.NewStatementService(db, translations, logger)

	merkel, err := players.Create(ctx, "Angela Merkel", "")
	if err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	scholz, err := players.Create(ctx, "Olaf Scholz", "")
	if err != nil {
		return fmt.Errorf("creating player: %w", err)
	}

	chancellor, err := roles.Create(ctx, model.LangGerman, "Bundeskanzlerin")
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	if err := roles.Rename(ctx, chancellor.ID, model.LangEnglish, "Chancellor"); err != nil {
		return fmt.Errorf("translating role: %w", err)
	}

	start := time.Date(2005, 11, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 8, 0, 0, 0, 0, time.UTC)
	if _, err := players.Engage(ctx, merkel.ID, chancellor.ID, start, &end); err != nil {
		return fmt.Errorf("creating engagement: %w", err)
	}
	if _, err := players.Engage(ctx, scholz.ID, chancellor.ID, end, nil); err != nil {
		return fmt.Errorf("creating engagement: %w", err)
	}

	topic, err := topics.Create(ctx, model.LangGerman, "Flüchtlingspolitik",
		"Die deutsche Asyl- und Flüchtlingspolitik seit dem Sommer 2015.")
	if err != nil {
		return fmt.Errorf("creating topic: %w", err)
	}
	if err := topics.SetHeadline(ctx, topic.ID, model.LangEnglish, "Refugee policy"); err != nil {
		return fmt.Errorf("translating topic: %w", err)
	}

	statement, err := statements.Create(ctx, service.CreateStatementParams{
		PlayerID: merkel.ID,
		Language: model.LangGerman,
		Content:  "Wir schaffen das.",
		StatedOn: time.Date(2015, 8, 31, 0, 0, 0, 0, time.UTC),
		Topics:   []int64{topic.ID},
	})
	if err != nil {
		return fmt.Errorf("creating statement: %w", err)
	}
	if err := statements.Translate(ctx, statement.ID, model.LangEnglish, "We can do this."); err != nil {
		return fmt.Errorf("translating statement: %w", err)
	}

	medium, err := statements.CreateMedium(ctx, "Süddeutsche Zeitung", "https://www.sueddeutsche.de")
	if err != nil {
		return fmt.Errorf("creating medium: %w", err)
	}
	if _, err := statements.Publish(ctx, statement.ID, medium.ID,
		time.Date(2015, 8, 31, 0, 0, 0, 0, time.UTC), "",
		"https://www.sueddeutsche.de/politik/merkel-wir-schaffen-das"); err != nil {
		return fmt.Errorf("creating publication: %w", err)
	}

	slog.Info("seeded demo content",
		"players", 2,
		"statements", 1,
		"topics", 1,
	)
	return nil
}
