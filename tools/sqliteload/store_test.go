package main

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	wikigenre "github.com/dustin/go-wikigenre"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "genres.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, createSchema(db))
	return db
}

func TestStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rec := wikigenre.NewRecord()
	rec.Set("The Clash", []string{"punk rock", "reggae"})
	rec.Set("The Specials", []string{"ska", "punk rock"})
	rec.Set("Yes", []string{"progressive rock"})

	n, err := store(db, rec)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := loadRecord(db)
	require.NoError(t, err)
	assert.Equal(t, rec.Keys(), got.Keys())
	g, _ := got.Get("The Specials")
	assert.Equal(t, []string{"ska", "punk rock"}, g)

	counts, err := topGenres(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []wikigenre.GenreCount{{Genre: "punk rock", Artists: 2}, {Genre: "reggae", Artists: 1}}, counts)
}

func TestStoreReplacesGenres(t *testing.T) {
	db := openTestDB(t)

	first := wikigenre.NewRecord()
	first.Set("The Clash", []string{"punk rock", "reggae"})
	_, err := store(db, first)
	require.NoError(t, err)

	second := wikigenre.NewRecord()
	second.Set("The Clash", []string{"rock and roll"})
	_, err = store(db, second)
	require.NoError(t, err)

	got, err := loadRecord(db)
	require.NoError(t, err)
	g, ok := got.Get("The Clash")
	require.True(t, ok)
	assert.Equal(t, []string{"rock and roll"}, g)
}
