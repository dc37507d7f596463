package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists one snapshot per tracked login. Reads tolerate a missing or
// corrupted row; writes replace the row wholesale.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			login      TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			data       TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Read returns the persisted snapshot for login, or ok=false when no snapshot
// exists or the stored row cannot be decoded. Corruption is swallowed here so
// a bad cache never takes the app down; the caller just refetches.
func (s *Store) Read(login string) (*Snapshot, bool) {
	var (
		fetchedMillis int64
		data          string
	)
	err := s.readDB.QueryRow(
		"SELECT fetched_at, data FROM snapshots WHERE login = ?", login,
	).Scan(&fetchedMillis, &data)
	if err != nil {
		return nil, false
	}

	var repos []Record
	if err := json.Unmarshal([]byte(data), &repos); err != nil {
		return nil, false
	}

	return &Snapshot{
		FetchedAt: time.UnixMilli(fetchedMillis),
		Repos:     repos,
	}, true
}

// Write replaces the snapshot for login. Callers treat failures as
// best-effort: the in-memory dataset stays authoritative.
func (s *Store) Write(login string, snap *Snapshot) error {
	data, err := json.Marshal(snap.Repos)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = s.writeDB.Exec(`
		INSERT INTO snapshots (login, fetched_at, data) VALUES (?, ?, ?)
		ON CONFLICT(login) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			data = excluded.data
	`, login, snap.FetchedAt.UnixMilli(), string(data))
	if err != nil {
		return fmt.Errorf("writing snapshot for %s: %w", login, err)
	}
	return nil
}

// Invalidate drops the snapshot for login. Missing rows are not an error.
func (s *Store) Invalidate(login string) error {
	_, err := s.writeDB.Exec("DELETE FROM snapshots WHERE login = ?", login)
	return err
}

// Stats returns the number of stored snapshots and the database file size.
func (s *Store) Stats(dbPath string) (count int, size int64, err error) {
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		return 0, 0, err
	}
	fi, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, fi.Size(), nil
}
