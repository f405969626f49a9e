package main

import (
	"database/sql"
	"fmt"

	wikigenre "github.com/dustin/go-wikigenre"
)

const schema = `
CREATE TABLE IF NOT EXISTS artists (
	name     TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS artist_genres (
	artist   TEXT NOT NULL REFERENCES artists(name) ON DELETE CASCADE,
	genre    TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (artist, genre)
);
CREATE INDEX IF NOT EXISTS artist_genres_genre ON artist_genres(genre);
`

func createSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// store replaces the genres of every artist in rec in one transaction.
func store(db *sql.DB, rec *wikigenre.Record) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n := 0
	var storeErr error
	rec.Each(func(key string, genres []string) {
		if storeErr != nil {
			return
		}
		if _, err := tx.Exec(`DELETE FROM artist_genres WHERE artist = ?`, key); err != nil {
			storeErr = fmt.Errorf("clearing %v: %w", key, err)
			return
		}
		if _, err := tx.Exec(`INSERT INTO artists (name, position) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET position = excluded.position`, key, n); err != nil {
			storeErr = fmt.Errorf("storing %v: %w", key, err)
			return
		}
		for i, g := range genres {
			if _, err := tx.Exec(`INSERT INTO artist_genres (artist, genre, position) VALUES (?, ?, ?)`,
				key, g, i); err != nil {
				storeErr = fmt.Errorf("storing %v genre %q: %w", key, g, err)
				return
			}
		}
		n++
	})
	if storeErr != nil {
		return 0, storeErr
	}
	return n, tx.Commit()
}

// topGenres counts artists per genre, most common first.
func topGenres(db *sql.DB, limit int) ([]wikigenre.GenreCount, error) {
	rows, err := db.Query(`SELECT genre, COUNT(*) AS artists FROM artist_genres
		GROUP BY genre ORDER BY artists DESC, MIN(rowid) LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rv []wikigenre.GenreCount
	for rows.Next() {
		var gc wikigenre.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Artists); err != nil {
			return nil, err
		}
		rv = append(rv, gc)
	}
	return rv, rows.Err()
}

// loadRecord reads the stored genres back in artist order.
func loadRecord(db *sql.DB) (*wikigenre.Record, error) {
	rows, err := db.Query(`SELECT a.name, g.genre FROM artists a
		JOIN artist_genres g ON g.artist = a.name
		ORDER BY a.position, g.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec := wikigenre.NewRecord()
	var cur string
	var genres []string
	for rows.Next() {
		var name, genre string
		if err := rows.Scan(&name, &genre); err != nil {
			return nil, err
		}
		if name != cur {
			rec.Set(cur, genres)
			cur, genres = name, nil
		}
		genres = append(genres, genre)
	}
	rec.Set(cur, genres)
	return rec, rows.Err()
}
