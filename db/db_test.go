package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/amonks/musicareas/data"
	"github.com/amonks/musicareas/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "music.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

var (
	forest  = data.NewMusicAreaProfile("forest_theme", "Forest Ambience", false, data.NewSquareRegion(0, 0, 100, 100))
	dungeon = data.NewMusicAreaProfile("dungeon", "Deep Below", true, data.NewSquareRegion(-20, 40, -60, 10))
)

func TestReplaceThenGet(t *testing.T) {
	ctx := context.Background()
	d := open(t)

	require.NoError(t, d.ReplaceProfiles(ctx, []data.MusicAreaProfile{forest}))

	got, err := d.GetProfile(ctx, "forest_theme")
	require.NoError(t, err)
	assert.Equal(t, forest, got)
}

func TestGetMissing(t *testing.T) {
	_, err := open(t).GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestReplaceProfiles(t *testing.T) {
	ctx := context.Background()
	d := open(t)

	require.NoError(t, d.ReplaceProfiles(ctx, []data.MusicAreaProfile{forest}))
	require.NoError(t, d.ReplaceProfiles(ctx, []data.MusicAreaProfile{dungeon}))

	all, err := d.AllProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []data.MusicAreaProfile{dungeon}, all)

	require.NoError(t, d.ReplaceProfiles(ctx, nil))
	count, err := d.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAllProfilesOrdered(t *testing.T) {
	ctx := context.Background()
	d := open(t)

	require.NoError(t, d.ReplaceProfiles(ctx, []data.MusicAreaProfile{forest, dungeon}))

	all, err := d.AllProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []data.MusicAreaProfile{dungeon, forest}, all)
}
