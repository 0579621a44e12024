// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wishlist persists the user's saved books and recent searches in
// a local SQLite database.
package wishlist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bookfinder/pkg/types"
)

const (
	dbFile         = "bookfinder.db"
	wishlistKey    = "wishlist"
	lastResultsKey = "last_results"
)

// Store manages the local bookfinder SQLite database. The kv table keeps
// the single-key storage model: the whole wishlist is one JSON-encoded
// array stored under one key and rewritten on every mutation.
type Store struct {
	db         *sql.DB
	maxHistory int
}

// Open opens or creates the database at cfg.DataDir/bookfinder.db and
// bootstraps the schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 50
	}

	s := &Store{db: db, maxHistory: maxHistory}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			mode TEXT NOT NULL,
			sources TEXT NOT NULL,
			results INTEGER NOT NULL,
			ran_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load returns the persisted wishlist. A missing or malformed entry resets
// to an empty list rather than failing; the wishlist is user convenience
// data, not a system of record.
func (s *Store) Load(ctx context.Context) []types.WishlistEntry {
	list, err := s.loadList(ctx, wishlistKey)
	if err != nil {
		return []types.WishlistEntry{}
	}
	return list
}

func (s *Store) loadList(ctx context.Context, key string) ([]types.BookRecord, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}

	var list []types.BookRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) saveList(ctx context.Context, key string, list []types.BookRecord) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Toggle flips membership of rec in the wishlist, matched by ID. When
// absent the record is prepended; when present it is removed. The updated
// list is persisted before returning, and Toggle is its own inverse.
func (s *Store) Toggle(ctx context.Context, rec types.BookRecord) (added bool, err error) {
	list := s.Load(ctx)

	kept := make([]types.BookRecord, 0, len(list)+1)
	found := false
	for _, e := range list {
		if e.ID == rec.ID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		kept = append([]types.BookRecord{rec}, kept...)
	}

	if err := s.saveList(ctx, wishlistKey, kept); err != nil {
		return false, err
	}
	return !found, nil
}

// Contains reports whether id is in the wishlist.
func (s *Store) Contains(ctx context.Context, id string) bool {
	for _, e := range s.Load(ctx) {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Clear empties the wishlist.
func (s *Store) Clear(ctx context.Context) error {
	return s.saveList(ctx, wishlistKey, []types.BookRecord{})
}

// SaveLastResults caches the most recent search results so later wishlist
// and cite commands can resolve record IDs without re-querying the
// catalogs.
func (s *Store) SaveLastResults(ctx context.Context, records []types.BookRecord) error {
	return s.saveList(ctx, lastResultsKey, records)
}

// LastResults returns the cached results of the most recent search.
func (s *Store) LastResults(ctx context.Context) []types.BookRecord {
	list, err := s.loadList(ctx, lastResultsKey)
	if err != nil {
		return []types.BookRecord{}
	}
	return list
}

// Resolve finds a record by ID, checking the wishlist first and then the
// cached last search results.
func (s *Store) Resolve(ctx context.Context, id string) (types.BookRecord, bool) {
	for _, e := range s.Load(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	for _, r := range s.LastResults(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return types.BookRecord{}, false
}

// RecordSearch appends one history row and prunes the table to the
// configured maximum.
func (s *Store) RecordSearch(ctx context.Context, run types.SearchRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, mode, sources, results, ran_at) VALUES (?, ?, ?, ?, ?)`,
		run.Query, run.Mode, run.Sources, run.Results, run.RanAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM searches WHERE id NOT IN
			(SELECT id FROM searches ORDER BY id DESC LIMIT ?)`,
		s.maxHistory)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// History returns up to limit recent searches, newest first. Zero uses the
// store maximum.
func (s *Store) History(ctx context.Context, limit int) ([]types.SearchRun, error) {
	if limit <= 0 {
		limit = s.maxHistory
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT query, mode, sources, results, ran_at FROM searches ORDER BY id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var runs []types.SearchRun
	for rows.Next() {
		var (
			run   types.SearchRun
			ranAt string
		)
		if err := rows.Scan(&run.Query, &run.Mode, &run.Sources, &run.Results, &ranAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ranAt); parseErr == nil {
			run.RanAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ClearHistory removes all recorded searches.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM searches`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
