package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/testutil"
	"github.com/olegiv/statementdb-go/internal/translation"
)

func testDisplayCache(t *testing.T) (*DisplayTextCache, *translation.Store, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	translations, err := translation.NewStore(db, model.LangGerman)
	require.NoError(t, err)

	backend := NewSimpleMemoryCache(time.Minute)
	c := NewDisplayTextCache(backend, translations, time.Minute)
	return c, translations, func() {
		_ = backend.Close()
		cleanup()
	}
}

func TestDisplayTextCache_Render(t *testing.T) {
	c, translations, cleanup := testDisplayCache(t)
	defer cleanup()

	ctx := context.Background()
	id, err := translations.CreateWithTranslation(ctx, model.LangGerman, "Guten Tag")
	require.NoError(t, err)

	got, err := c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Guten Tag", got)

	// Second read is served from cache
	got, err = c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Guten Tag", got)

	stats, ok := c.Stats()
	require.True(t, ok)
	require.Equal(t, int64(1), stats.Hits)
}

func TestDisplayTextCache_RenderAbsent(t *testing.T) {
	c, translations, cleanup := testDisplayCache(t)
	defer cleanup()

	ctx := context.Background()
	id, err := translations.CreateEmpty(ctx)
	require.NoError(t, err)

	got, err := c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, translation.UnusedPlaceholder, got)
}

func TestDisplayTextCache_SetTranslationInvalidates(t *testing.T) {
	c, translations, cleanup := testDisplayCache(t)
	defer cleanup()

	ctx := context.Background()
	id, err := translations.CreateWithTranslation(ctx, model.LangGerman, "alt")
	require.NoError(t, err)

	got, err := c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alt", got)

	require.NoError(t, c.SetTranslation(ctx, id, model.LangGerman, "neu"))

	got, err = c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "neu", got)
}

func TestDisplayTextCache_SetTranslationInvalidLanguage(t *testing.T) {
	c, translations, cleanup := testDisplayCache(t)
	defer cleanup()

	ctx := context.Background()
	id, err := translations.CreateWithTranslation(ctx, model.LangGerman, "bleibt")
	require.NoError(t, err)

	err = c.SetTranslation(ctx, id, "zz_ZZ", "anders")
	var invalidErr *translation.InvalidLanguageError
	require.ErrorAs(t, err, &invalidErr)

	got, err := c.Render(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bleibt", got)
}
