// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translation stores and resolves multilingual text for archive
// entities. An entity never embeds text directly; it holds the id of a
// translatable unit and this package manages the per-language strings behind
// it.
//
// Translations at or below ShortMaxLength characters are kept in the
// short_translations table, longer ones in long_translations. The split is a
// storage optimization and callers never see it: reads return whichever row
// exists, and re-setting a text across the length threshold migrates the row
// between tables inside one transaction.
package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/store"
)

const (
	// ShortMaxLength is the maximum length (in characters) of translations
	// stored in the short representation.
	ShortMaxLength = 100

	// DisplayTruncateAt is the length after which Render shortens text for
	// compact display contexts.
	DisplayTruncateAt = 60

	// ellipsis marks truncated display text.
	ellipsis = ".."
)

// UnusedPlaceholder is rendered for a translatable that has no translation in
// the preferred display language.
const UnusedPlaceholder = "Unused translatable."

// InvalidLanguageError reports a language code outside the supported set. It is
// returned before any store mutation, so the caller can reject the input with
// no state change.
type InvalidLanguageError struct {
	Code string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("unsupported language code %q", e.Code)
}

// Store manages the per-language strings of translatable units. The locale is
// the single preferred display language used by DisplayText and Render; it is
// fixed at construction.
type Store struct {
	db      *sql.DB
	queries *store.Queries
	locale  string
}

// NewStore creates a translation store with the given preferred display
// language.
func NewStore(db *sql.DB, locale string) (*Store, error) {
	if !model.IsSupportedLanguage(locale) {
		return nil, &InvalidLanguageError{Code: locale}
	}
	return &Store{
		db:      db,
		queries: store.New(db),
		locale:  locale,
	}, nil
}

// Locale returns the preferred display language.
func (s *Store) Locale() string {
	return s.locale
}

// CreateEmpty creates a translatable unit with no translations, for deferred
// population.
func (s *Store) CreateEmpty(ctx context.Context) (int64, error) {
	t, err := s.queries.CreateTranslatable(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("creating translatable: %w", err)
	}
	return t.ID, nil
}

// CreateWithTranslation creates a new translatable unit together with its
// first translation. Both rows are written in one transaction.
func (s *Store) CreateWithTranslation(ctx context.Context, language, text string) (int64, error) {
	if !model.IsSupportedLanguage(language) {
		return 0, &InvalidLanguageError{Code: language}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	now := time.Now()

	t, err := qtx.CreateTranslatable(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("creating translatable: %w", err)
	}
	if err := setTranslation(ctx, qtx, t.ID, language, text, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return t.ID, nil
}

// Set stores the translation of a translatable in the given language,
// replacing any previous text for that language. The representation is chosen
// by text length; when an update crosses the length threshold the row migrates
// between tables, atomically from the caller's perspective.
func (s *Store) Set(ctx context.Context, id int64, language, text string) error {
	if !model.IsSupportedLanguage(language) {
		return &InvalidLanguageError{Code: language}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := setTranslation(ctx, s.queries.WithTx(tx), id, language, text, time.Now()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// setTranslation implements the merge algorithm: update the existing row of
// the target representation in place, or delete the other representation's row
// and insert a fresh one.
func setTranslation(ctx context.Context, q *store.Queries, id int64, language, text string, now time.Time) error {
	key := store.TranslationKey{TranslatableID: id, Language: language}
	params := store.SetTranslationParams{
		TranslatableID: id,
		Language:       language,
		Translation:    text,
		Now:            now,
	}

	if utf8.RuneCountInString(text) <= ShortMaxLength {
		_, err := q.GetShortTranslation(ctx, key)
		switch {
		case err == nil:
			return q.UpdateShortTranslation(ctx, params)
		case errors.Is(err, sql.ErrNoRows):
			if err := q.DeleteLongTranslation(ctx, key); err != nil {
				return fmt.Errorf("removing long translation: %w", err)
			}
			return q.InsertShortTranslation(ctx, params)
		default:
			return err
		}
	}

	_, err := q.GetLongTranslation(ctx, key)
	switch {
	case err == nil:
		return q.UpdateLongTranslation(ctx, params)
	case errors.Is(err, sql.ErrNoRows):
		if err := q.DeleteShortTranslation(ctx, key); err != nil {
			return fmt.Errorf("removing short translation: %w", err)
		}
		return q.InsertLongTranslation(ctx, params)
	default:
		return err
	}
}

// Get returns the stored text for (id, language) regardless of which
// representation holds it. The bool is false when no translation exists; an
// empty string with true is a valid stored value.
func (s *Store) Get(ctx context.Context, id int64, language string) (string, bool, error) {
	text, err := s.queries.GetTranslationText(ctx, store.TranslationKey{
		TranslatableID: id,
		Language:       language,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// DisplayText returns the translation in the preferred display language.
// There is no fallback across languages: a translatable populated only in
// other languages still reports absent.
func (s *Store) DisplayText(ctx context.Context, id int64) (string, bool, error) {
	return s.Get(ctx, id, s.locale)
}

// Render resolves the display text and shortens it for compact presentation
// contexts (list views, logs). A translatable without display text renders as
// UnusedPlaceholder. Truncation happens only here, never before storage.
func (s *Store) Render(ctx context.Context, id int64) (string, error) {
	text, ok, err := s.DisplayText(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return UnusedPlaceholder, nil
	}
	return Truncate(text, DisplayTruncateAt), nil
}

// Languages returns the language codes a translatable is stored in.
func (s *Store) Languages(ctx context.Context, id int64) ([]string, error) {
	return s.queries.ListTranslationLanguages(ctx, id)
}

// Truncate shortens s to length characters, marking the cut with a two
// character ellipsis. Strings at or below the limit pass through unchanged.
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length]) + ellipsis
}
