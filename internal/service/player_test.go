package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/statementdb-go/internal/model"
	"github.com/olegiv/statementdb-go/internal/testutil"
	"github.com/olegiv/statementdb-go/internal/translation"
)

func TestPlayerCreate(t *testing.T) {
	players, _, _, _, cleanup := testServices(t)
	defer cleanup()

	ctx := context.Background()
	player, err := players.Create(ctx, "Angela Merkel", "")
	require.NoError(t, err)
	require.Equal(t, "angela-merkel", player.Slug)

	found, err := players.GetBySlug(ctx, "angela-merkel")
	require.NoError(t, err)
	require.Equal(t, player.ID, found.ID)
}

func TestPlayerCreate_TransliteratesName(t *testing.T) {
	players, _, _, _, cleanup := testServices(t)
	defer cleanup()

	player, err := players.Create(context.Background(), "Лев Толстой", "")
	require.NoError(t, err)
	require.Equal(t, "lev-tolstoi", player.Slug)
}

func TestPlayerEngage(t *testing.T) {
	players, _, translations, db, cleanup := testServices(t)
	defer cleanup()

	ctx := context.Background()
	player := mustCreatePlayer(t, players, "Willy Brandt")

	roles := NewRoleService(db, translations, testutil.TestLoggerSilent())
	role, err := roles.Create(ctx, model.LangGerman, "Bundeskanzler")
	require.NoError(t, err)

	start := time.Date(1969, 10, 21, 0, 0, 0, 0, time.UTC)
	end := time.Date(1974, 5, 7, 0, 0, 0, 0, time.UTC)

	engagement, err := players.Engage(ctx, player.ID, role.ID, start, &end)
	require.NoError(t, err)
	require.True(t, engagement.EndDate.Valid)

	// Open-ended engagements are allowed
	_, err = players.Engage(ctx, player.ID, role.ID, start, nil)
	require.NoError(t, err)

	engagements, err := players.Engagements(ctx, player.ID)
	require.NoError(t, err)
	require.Len(t, engagements, 2)
}

func TestPlayerEngage_RejectsInvertedDates(t *testing.T) {
	players, _, translations, db, cleanup := testServices(t)
	defer cleanup()

	ctx := context.Background()
	player := mustCreatePlayer(t, players, "Someone")

	roles := NewRoleService(db, translations, testutil.TestLoggerSilent())
	role, err := roles.Create(ctx, model.LangGerman, "Ministerin")
	require.NoError(t, err)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	_, err = players.Engage(ctx, player.ID, role.ID, start, &end)
	require.ErrorIs(t, err, ErrEngagementDates)

	// Equal start and end is rejected too
	_, err = players.Engage(ctx, player.ID, role.ID, start, &start)
	require.ErrorIs(t, err, ErrEngagementDates)
}

func TestRoleDisplayName(t *testing.T) {
	_, _, translations, db, cleanup := testServices(t)
	defer cleanup()

	ctx := context.Background()
	roles := NewRoleService(db, translations, testutil.TestLoggerSilent())

	role, err := roles.Create(ctx, model.LangGerman, "Bundeskanzler")
	require.NoError(t, err)

	name, err := roles.DisplayName(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, "Bundeskanzler", name)

	// A role named only in English renders the placeholder under the German locale
	english, err := roles.Create(ctx, model.LangEnglish, "Chancellor")
	require.NoError(t, err)

	name, err = roles.DisplayName(ctx, english.ID)
	require.NoError(t, err)
	require.Equal(t, translation.UnusedPlaceholder, name)
}

func TestRoleRename_SkipsUnchanged(t *testing.T) {
	_, _, translations, db, cleanup := testServices(t)
	defer cleanup()

	ctx := context.Background()
	roles := NewRoleService(db, translations, testutil.TestLoggerSilent())

	role, err := roles.Create(ctx, model.LangGerman, "Ministerin")
	require.NoError(t, err)

	require.NoError(t, roles.Rename(ctx, role.ID, model.LangGerman, "Ministerin"))
	require.NoError(t, roles.Rename(ctx, role.ID, model.LangGerman, "Bundesministerin"))

	name, err := roles.DisplayName(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, "Bundesministerin", name)
}
