package store

import (
	"context"
	"time"
)

// TranslationKey identifies one stored translation by owner and language.
type TranslationKey struct {
	TranslatableID int64
	Language       string
}

// SetTranslationParams carries the values for an insert or in-place update of a
// translation row.
type SetTranslationParams struct {
	TranslatableID int64
	Language       string
	Translation    string
	Now            time.Time
}

// CreateTranslatable inserts a new empty translatable unit.
func (q *Queries) CreateTranslatable(ctx context.Context, now time.Time) (Translatable, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO translatables (created_at) VALUES (?) RETURNING id, created_at`,
		now,
	)
	var t Translatable
	err := row.Scan(&t.ID, &t.CreatedAt)
	return t, err
}

// DeleteTranslatable removes a translatable. Its translation rows go with it
// via ON DELETE CASCADE.
func (q *Queries) DeleteTranslatable(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM translatables WHERE id = ?`, id)
	return err
}

// GetTranslationText returns the stored text for (translatable, language) from
// whichever table holds it. sql.ErrNoRows means no translation exists.
func (q *Queries) GetTranslationText(ctx context.Context, key TranslationKey) (string, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT translation FROM short_translations WHERE translatable_id = ? AND language = ?
		 UNION ALL
		 SELECT translation FROM long_translations WHERE translatable_id = ? AND language = ?
		 LIMIT 1`,
		key.TranslatableID, key.Language, key.TranslatableID, key.Language,
	)
	var text string
	err := row.Scan(&text)
	return text, err
}

// GetShortTranslation fetches the short-representation row for a key.
func (q *Queries) GetShortTranslation(ctx context.Context, key TranslationKey) (Translation, error) {
	return q.getTranslation(ctx, "short_translations", key)
}

// GetLongTranslation fetches the long-representation row for a key.
func (q *Queries) GetLongTranslation(ctx context.Context, key TranslationKey) (Translation, error) {
	return q.getTranslation(ctx, "long_translations", key)
}

func (q *Queries) getTranslation(ctx context.Context, table string, key TranslationKey) (Translation, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, translatable_id, language, translation, created_at, updated_at
		 FROM `+table+` WHERE translatable_id = ? AND language = ?`,
		key.TranslatableID, key.Language,
	)
	var t Translation
	err := row.Scan(&t.ID, &t.TranslatableID, &t.Language, &t.Translation, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// InsertShortTranslation inserts a new short-representation row.
func (q *Queries) InsertShortTranslation(ctx context.Context, arg SetTranslationParams) error {
	return q.insertTranslation(ctx, "short_translations", arg)
}

// InsertLongTranslation inserts a new long-representation row.
func (q *Queries) InsertLongTranslation(ctx context.Context, arg SetTranslationParams) error {
	return q.insertTranslation(ctx, "long_translations", arg)
}

func (q *Queries) insertTranslation(ctx context.Context, table string, arg SetTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO `+table+` (translatable_id, language, translation, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.TranslatableID, arg.Language, arg.Translation, arg.Now, arg.Now,
	)
	return err
}

// UpdateShortTranslation updates the text of an existing short row in place.
func (q *Queries) UpdateShortTranslation(ctx context.Context, arg SetTranslationParams) error {
	return q.updateTranslation(ctx, "short_translations", arg)
}

// UpdateLongTranslation updates the text of an existing long row in place.
func (q *Queries) UpdateLongTranslation(ctx context.Context, arg SetTranslationParams) error {
	return q.updateTranslation(ctx, "long_translations", arg)
}

func (q *Queries) updateTranslation(ctx context.Context, table string, arg SetTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE `+table+` SET translation = ?, updated_at = ?
		 WHERE translatable_id = ? AND language = ?`,
		arg.Translation, arg.Now, arg.TranslatableID, arg.Language,
	)
	return err
}

// DeleteShortTranslation removes the short-representation row for a key, if any.
func (q *Queries) DeleteShortTranslation(ctx context.Context, key TranslationKey) error {
	return q.deleteTranslation(ctx, "short_translations", key)
}

// DeleteLongTranslation removes the long-representation row for a key, if any.
func (q *Queries) DeleteLongTranslation(ctx context.Context, key TranslationKey) error {
	return q.deleteTranslation(ctx, "long_translations", key)
}

func (q *Queries) deleteTranslation(ctx context.Context, table string, key TranslationKey) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE translatable_id = ? AND language = ?`,
		key.TranslatableID, key.Language,
	)
	return err
}

// CountTranslationRows counts stored rows for a key across both tables.
// Used by tests to verify the one-row-per-key invariant.
func (q *Queries) CountTranslationRows(ctx context.Context, key TranslationKey) (int64, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM short_translations WHERE translatable_id = ? AND language = ?) +
		   (SELECT COUNT(*) FROM long_translations WHERE translatable_id = ? AND language = ?)`,
		key.TranslatableID, key.Language, key.TranslatableID, key.Language,
	)
	var n int64
	err := row.Scan(&n)
	return n, err
}

// ListTranslationLanguages returns the language codes a translatable is stored
// in, across both representations.
func (q *Queries) ListTranslationLanguages(ctx context.Context, translatableID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT language FROM short_translations WHERE translatable_id = ?
		 UNION
		 SELECT language FROM long_translations WHERE translatable_id = ?
		 ORDER BY language`,
		translatableID, translatableID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	return langs, rows.Err()
}

// ListOrphanTranslatables returns ids of translatables no archive entity
// references anymore. Owning entities delete their own rows; the translatables
// they pointed at are cleaned up by the scheduled sweep. The cutoff spares
// freshly created translatables that have not been attached to an owner yet.
func (q *Queries) ListOrphanTranslatables(ctx context.Context, createdBefore time.Time) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT t.id FROM translatables t
		 WHERE t.created_at < ?
		   AND NOT EXISTS (SELECT 1 FROM roles r WHERE r.name_id = t.id)
		   AND NOT EXISTS (SELECT 1 FROM topics tp WHERE tp.headline_id = t.id OR tp.description_id = t.id)
		   AND NOT EXISTS (SELECT 1 FROM statements s WHERE s.content_id = t.id)
		 ORDER BY t.id`,
		createdBefore,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
