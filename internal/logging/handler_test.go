package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

// countingHandler records how many records it received.
type countingHandler struct {
	count int
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.count++
	return nil
}
func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := NewEventLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("statement update failed", "statement_id", 42)

	// Give it a moment to write
	time.Sleep(50 * time.Millisecond)

	q := store.New(db)
	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	e := events[0]
	if e.Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", e.Level, model.EventLevelError)
	}
	if e.Category != model.EventCategoryStatement {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryStatement)
	}
	if !strings.Contains(e.Metadata, "statement_id") {
		t.Errorf("Metadata = %q, should carry the statement_id attribute", e.Metadata)
	}
}

func TestEventLogHandler_Handle_InfoNotLogged(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("routine startup message")

	time.Sleep(50 * time.Millisecond)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("INFO logs should not reach the event log, got %d events", len(events))
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("something odd", "category", model.EventCategoryTranslation)

	time.Sleep(50 * time.Millisecond)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryTranslation {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryTranslation)
	}
}

func TestExtractCategory_Inference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"publication created", model.EventCategoryStatement},
		{"player slug collision", model.EventCategoryPlayer},
		{"engagement dates rejected", model.EventCategoryPlayer},
		{"topic deleted", model.EventCategoryTopic},
		{"translation migrated to long form", model.EventCategoryTranslation},
		{"cache backend unavailable", model.EventCategoryCache},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		r := slog.NewRecord(time.Now(), slog.LevelWarn, tt.message, 0)
		if got := extractCategory(r); got != tt.want {
			t.Errorf("extractCategory(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestEventLogHandler_MissingEventsTable(t *testing.T) {
	// An unmigrated database has no events table; the event write fails
	// silently and the wrapped handler still receives every record.
	db := testutil.TestMemoryDB(t)
	defer db.Close()

	inner := &countingHandler{}
	logger := slog.New(NewEventLogHandler(inner, db))

	logger.Error("statement update failed", "statement_id", 7)
	logger.Warn("cache backend unavailable")

	if inner.count != 2 {
		t.Errorf("inner handler received %d records, want 2", inner.count)
	}
}

func TestEventLogHandler_WithAttrs(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := NewEventLogHandler(discardHandler{}, db)
	child := handler.WithAttrs([]slog.Attr{slog.String("component", "sweeper")})
	if _, ok := child.(*EventLogHandler); !ok {
		t.Fatalf("WithAttrs should return an *EventLogHandler, got %T", child)
	}
}
