package draftstore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// SQLiteStore persists snapshots across sessions in a local database file.
type SQLiteStore struct {
	conn *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open draft database: %w", err)
	}

	_, err = conn.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    resource TEXT NOT NULL,
    payload BLOB NOT NULL,
    saved_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drafts_resource ON drafts(resource, saved_at);`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("init draft schema: %w", err)
	}

	storeLogger.Info().Str("path", path).Msg("Draft autosave store ready")
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Save(snap *Snapshot) error {
	packed, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(
		`INSERT INTO drafts (id, resource, payload, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		snap.ID, snap.Resource, packed, snap.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(id string) (*Snapshot, error) {
	var packed []byte
	err := s.conn.QueryRow(`SELECT payload FROM drafts WHERE id = ?`, id).Scan(&packed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return decodeSnapshot(packed)
}

func (s *SQLiteStore) List(resource string) ([]Snapshot, error) {
	rows, err := s.conn.Query(
		`SELECT payload FROM drafts WHERE resource = ? ORDER BY saved_at DESC`, resource)
	if err != nil {
		return nil, fmt.Errorf("list snapshots for %s: %w", resource, err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var packed []byte
		if err := rows.Scan(&packed); err != nil {
			return nil, err
		}
		snap, err := decodeSnapshot(packed)
		if err != nil {
			storeLogger.Warn().Err(err).Msg("Skipping unreadable snapshot")
			continue
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(id string) error {
	_, err := s.conn.Exec(`DELETE FROM drafts WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
