package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS tracks (
	file_id INTEGER PRIMARY KEY,
	source_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	album_artist TEXT NOT NULL DEFAULT '',
	album TEXT NOT NULL,
	genres TEXT NOT NULL DEFAULT '',
	year INTEGER,
	track_number INTEGER,
	disc_number INTEGER,
	duration_sec REAL NOT NULL DEFAULT 0,
	bpm REAL,
	musicbrainz_id TEXT NOT NULL DEFAULT '',
	isrc TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	partial_hash TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL DEFAULT 0,
	added_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS playlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	file_id INTEGER NOT NULL,
	score REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (playlist_id, position)
);
`

// genreSep separates genres in the tracks.genres column.
const genreSep = ";"

// Store provides access to the library database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a library database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes fn within a transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSnapshot reads every track into an immutable snapshot.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT file_id, source_id, title, artist, album_artist, album, genres,
		       year, track_number, disc_number, duration_sec, bpm,
		       musicbrainz_id, isrc, content_hash, partial_hash,
		       updated_at, added_at
		FROM tracks
		ORDER BY artist COLLATE NOCASE, album COLLATE NOCASE, track_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		var genres string
		var year, trackNum, discNum sql.NullInt64
		var bpm sql.NullFloat64

		if err := rows.Scan(&t.FileID, &t.SourceID, &t.Title, &t.Artist,
			&t.AlbumArtist, &t.Album, &genres, &year, &trackNum, &discNum,
			&t.DurationSec, &bpm, &t.MusicBrainzID, &t.ISRC,
			&t.ContentHash, &t.PartialHash, &t.UpdatedAt, &t.AddedAt); err != nil {
			return nil, err
		}
		t.Year = int(year.Int64)
		t.TrackNumber = int(trackNum.Int64)
		t.DiscNumber = int(discNum.Int64)
		t.BPM = bpm.Float64
		t.Genres = splitGenres(genres)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewSnapshot(tracks), nil
}

// UpsertTracks inserts or replaces tracks in a single transaction.
func (s *Store) UpsertTracks(tracks []Track) error {
	return s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO tracks (
				file_id, source_id, title, artist, album_artist, album, genres,
				year, track_number, disc_number, duration_sec, bpm,
				musicbrainz_id, isrc, content_hash, partial_hash,
				updated_at, added_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, t := range tracks {
			if _, err := stmt.Exec(t.FileID, t.SourceID, t.Title, t.Artist,
				t.AlbumArtist, t.Album, joinGenres(t.Genres),
				nullableInt(t.Year), nullableInt(t.TrackNumber), nullableInt(t.DiscNumber),
				t.DurationSec, nullableFloat(t.BPM),
				t.MusicBrainzID, t.ISRC, t.ContentHash, t.PartialHash,
				t.UpdatedAt, t.AddedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// SavedSelection is the minimal per-position record persisted for a
// generated playlist.
type SavedSelection struct {
	FileID int64
	Score  float64
}

// SavePlaylist persists an ordered selection under name and returns the
// playlist's public id.
func (s *Store) SavePlaylist(name string, selections []SavedSelection) (string, error) {
	publicID := uuid.NewString()
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO playlists (public_id, name, created_at) VALUES (?, ?, ?)
		`, publicID, name, time.Now().Unix())
		if err != nil {
			return err
		}
		playlistID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i, sel := range selections {
			if _, err := tx.Exec(`
				INSERT INTO playlist_tracks (playlist_id, position, file_id, score)
				VALUES (?, ?, ?, ?)
			`, playlistID, i, sel.FileID, sel.Score); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return publicID, nil
}

// PlaylistTrackIDs returns the ordered file ids of a saved playlist.
func (s *Store) PlaylistTrackIDs(publicID string) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT pt.file_id
		FROM playlist_tracks pt
		JOIN playlists p ON p.id = pt.playlist_id
		WHERE p.public_id = ?
		ORDER BY pt.position
	`, publicID)
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

func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, genreSep)
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

func joinGenres(genres []string) string {
	return strings.Join(genres, genreSep)
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableFloat(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}
