// Package stash provides the local durable slot crash recovery depends on.
//
// When a session tears down with a debounced write still pending, the
// pending snapshot is written here synchronously, keyed by user id - the
// remote cannot be reliably reached during teardown. On the next session
// start for the same user the stashed snapshot is replayed to the remote
// before normal loading, then cleared. One slot per user: a newer stash
// replaces an older one.
package stash

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/habitflow/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Stash is a SQLite-backed single-document-per-user recovery slot.
type Stash struct {
	db *sql.DB
}

// Open creates or opens the stash database at the given path.
func Open(path string) (*Stash, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stash: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to stash: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply stash schema: %w", err)
	}
	return &Stash{db: db}, nil
}

// Close closes the stash database.
func (s *Stash) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores the snapshot for the user, replacing any previous stash.
// Called synchronously during teardown, so it must not block on anything
// but the local disk.
func (s *Stash) Put(userID string, doc model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("stash put: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO stash (user_id, doc, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, saved_at = excluded.saved_at
	`, userID, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("stash put: %w", err)
	}
	return nil
}

// Get returns the stashed snapshot for the user, if any.
func (s *Stash) Get(userID string) (model.Document, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT doc FROM stash WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, false, nil
	}
	if err != nil {
		return model.Document{}, false, fmt.Errorf("stash get: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return model.Document{}, false, fmt.Errorf("stash get: %w", err)
	}
	return doc, true, nil
}

// Clear removes the user's stash after a successful replay.
func (s *Stash) Clear(userID string) error {
	if _, err := s.db.Exec(`DELETE FROM stash WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("stash clear: %w", err)
	}
	return nil
}
