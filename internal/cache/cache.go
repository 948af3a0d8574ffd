// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists raw vision responses in a SQLite database so
// re-running on unchanged pages skips the API round-trip. Implements:
// prd001-analysis (R6); docs/ARCHITECTURE § Response Cache.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pageforge/internal/vision"
)

const dbFile = "responses.db"

// Store manages the response cache database.
type Store struct {
	db *sql.DB
}

// New opens or creates the cache database at dir/responses.db, creating
// the schema if needed (R6.1).
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		response TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Key derives the cache key for a request: SHA-256 over the model, the
// prompt version, and the PNG bytes of every page in order (R6.2).
// Keying on the re-encoded bytes means the same page supplied as BMP or
// PNG hits the same row.
func Key(model, promptVersion string, pages []vision.Page) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(promptVersion))
	for _, p := range pages {
		h.Write([]byte{0})
		h.Write(p.PNG)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached raw response for key, or ok=false on a miss.
func (s *Store) Get(key string) (string, bool, error) {
	var response string
	err := s.db.QueryRow(`SELECT response FROM responses WHERE key = ?`, key).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache: %w", err)
	}
	return response, true, nil
}

// Put stores the raw response under key, replacing any previous entry (R6.3).
func (s *Store) Put(key, model, response string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO responses (key, model, response, created_at) VALUES (?, ?, ?, ?)`,
		key, model, response, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cached response: %w", err)
	}
	return nil
}
