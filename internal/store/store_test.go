package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "statementdb-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		db.Close()
		os.Remove(dbPath)
	}
}

func TestCreateTranslatable(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	translatable, err := q.CreateTranslatable(ctx, time.Now())
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	if translatable.ID == 0 {
		t.Error("translatable.ID should not be 0")
	}
}

func TestTranslationRows(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	translatable, err := q.CreateTranslatable(ctx, time.Now())
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	key := TranslationKey{TranslatableID: translatable.ID, Language: "de_de"}

	// Neither representation exists yet
	if _, err := q.GetTranslationText(ctx, key); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}

	now := time.Now()
	err = q.InsertShortTranslation(ctx, SetTranslationParams{
		TranslatableID: translatable.ID,
		Language:       "de_de",
		Translation:    "kurz",
		Now:            now,
	})
	if err != nil {
		t.Fatalf("InsertShortTranslation: %v", err)
	}

	text, err := q.GetTranslationText(ctx, key)
	if err != nil {
		t.Fatalf("GetTranslationText: %v", err)
	}
	if text != "kurz" {
		t.Errorf("text = %q, want %q", text, "kurz")
	}

	// Update in place
	err = q.UpdateShortTranslation(ctx, SetTranslationParams{
		TranslatableID: translatable.ID,
		Language:       "de_de",
		Translation:    "geändert",
		Now:            now,
	})
	if err != nil {
		t.Fatalf("UpdateShortTranslation: %v", err)
	}
	row, err := q.GetShortTranslation(ctx, key)
	if err != nil {
		t.Fatalf("GetShortTranslation: %v", err)
	}
	if row.Translation != "geändert" {
		t.Errorf("Translation = %q, want %q", row.Translation, "geändert")
	}

	// Delete
	if err := q.DeleteShortTranslation(ctx, key); err != nil {
		t.Fatalf("DeleteShortTranslation: %v", err)
	}
	n, err := q.CountTranslationRows(ctx, key)
	if err != nil {
		t.Fatalf("CountTranslationRows: %v", err)
	}
	if n != 0 {
		t.Errorf("row count = %d, want 0", n)
	}
}

func TestTranslationUniqueKey(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	translatable, err := q.CreateTranslatable(ctx, time.Now())
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}

	params := SetTranslationParams{
		TranslatableID: translatable.ID,
		Language:       "en_US",
		Translation:    "text",
		Now:            time.Now(),
	}
	if err := q.InsertShortTranslation(ctx, params); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := q.InsertShortTranslation(ctx, params); err == nil {
		t.Error("second insert for the same (translatable, language) should violate uniqueness")
	}
}

func TestDeleteTranslatableCascades(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	translatable, err := q.CreateTranslatable(ctx, time.Now())
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	key := TranslationKey{TranslatableID: translatable.ID, Language: "de_de"}

	err = q.InsertLongTranslation(ctx, SetTranslationParams{
		TranslatableID: translatable.ID,
		Language:       "de_de",
		Translation:    "lang",
		Now:            time.Now(),
	})
	if err != nil {
		t.Fatalf("InsertLongTranslation: %v", err)
	}

	if err := q.DeleteTranslatable(ctx, translatable.ID); err != nil {
		t.Fatalf("DeleteTranslatable: %v", err)
	}

	n, err := q.CountTranslationRows(ctx, key)
	if err != nil {
		t.Fatalf("CountTranslationRows: %v", err)
	}
	if n != 0 {
		t.Errorf("translation rows survived the cascade: %d", n)
	}
}

func TestListOrphanTranslatables(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	orphan, err := q.CreateTranslatable(ctx, now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	owned, err := q.CreateTranslatable(ctx, now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	fresh, err := q.CreateTranslatable(ctx, now)
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}

	// Reference one translatable from a role
	if _, err := q.CreateRole(ctx, owned.ID, now); err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	orphans, err := q.ListOrphanTranslatables(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListOrphanTranslatables: %v", err)
	}
	if len(orphans) != 1 || orphans[0] != orphan.ID {
		t.Errorf("orphans = %v, want [%d]", orphans, orphan.ID)
	}

	// The fresh translatable is inside the grace window
	for _, id := range orphans {
		if id == fresh.ID {
			t.Error("fresh translatable should be spared by the cutoff")
		}
	}
}

func TestCreatePlayer(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	player, err := q.CreatePlayer(ctx, CreatePlayerParams{
		Name:      "Test Player",
		Slug:      "test-player",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	if player.ID == 0 {
		t.Error("player.ID should not be 0")
	}
	if player.Name != "Test Player" {
		t.Errorf("Name = %q, want %q", player.Name, "Test Player")
	}

	found, err := q.GetPlayerBySlug(ctx, "test-player")
	if err != nil {
		t.Fatalf("GetPlayerBySlug: %v", err)
	}
	if found.ID != player.ID {
		t.Errorf("ID = %d, want %d", found.ID, player.ID)
	}
}

func TestGetPlayerByID_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	_, err := New(db).GetPlayerByID(context.Background(), 12345)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeletePlayerCascades(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	player, err := q.CreatePlayer(ctx, CreatePlayerParams{
		Name: "P", Slug: "p", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	content, err := q.CreateTranslatable(ctx, now)
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	statement, err := q.CreateStatement(ctx, CreateStatementParams{
		PlayerID:  player.ID,
		Language:  "de_de",
		ContentID: content.ID,
		StatedOn:  now,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	if err := q.DeletePlayer(ctx, player.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}

	if _, err := q.GetStatementByID(ctx, statement.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("statement should cascade with its player, got %v", err)
	}

	// The content translatable is now an orphan for the sweep
	orphans, err := q.ListOrphanTranslatables(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListOrphanTranslatables: %v", err)
	}
	if len(orphans) != 1 || orphans[0] != content.ID {
		t.Errorf("orphans = %v, want [%d]", orphans, content.ID)
	}
}

func TestEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	old := time.Now().Add(-100 * 24 * time.Hour)
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level: "info", Category: "system", Message: "old", CreatedAt: old,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level: "warning", Category: "statement", Message: "recent", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	purged, err := q.DeleteEventsBefore(ctx, time.Now().Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Message != "recent" {
		t.Errorf("events = %+v, want only the recent one", events)
	}
}

func TestPublications(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	player, err := q.CreatePlayer(ctx, CreatePlayerParams{
		Name: "P", Slug: "p", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	content, err := q.CreateTranslatable(ctx, now)
	if err != nil {
		t.Fatalf("CreateTranslatable: %v", err)
	}
	statement, err := q.CreateStatement(ctx, CreateStatementParams{
		PlayerID: player.ID, Language: "en_US", ContentID: content.ID,
		StatedOn: now, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}
	medium, err := q.CreateMedium(ctx, CreateMediumParams{
		Name: "Paper", Slug: "paper", URL: "https://paper.example", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateMedium: %v", err)
	}

	if _, err := q.CreatePublication(ctx, CreatePublicationParams{
		StatementID: statement.ID,
		MediumID:    medium.ID,
		PublishedOn: now,
		URL:         "https://paper.example/articles/1",
		CreatedAt:   now,
	}); err != nil {
		t.Fatalf("CreatePublication: %v", err)
	}

	pubs, err := q.ListPublicationsByStatement(ctx, statement.ID)
	if err != nil {
		t.Fatalf("ListPublicationsByStatement: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("publications = %d, want 1", len(pubs))
	}
	if pubs[0].MediumID != medium.ID {
		t.Errorf("MediumID = %d, want %d", pubs[0].MediumID, medium.ID)
	}
}
