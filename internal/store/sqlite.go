package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/habitflow/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRemote is the durable Remote backend.
type SQLiteRemote struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a SQLite-backed remote at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// Idempotent - safe to call on an existing database.
func Open(path string) (*SQLiteRemote, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the engine's write cadence.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteRemote{db: db, now: time.Now}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRemote) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SetClock injects a time source for tests.
func (r *SQLiteRemote) SetClock(now func() time.Time) { r.now = now }

// Get fetches the user's document.
func (r *SQLiteRemote) Get(ctx context.Context, userID string) (model.Document, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE user_id = ?`, userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("get document: %w", err)
	}
	return decodeDocument([]byte(raw))
}

// GetRaw fetches the stored document bytes without decoding. Used for
// schema validation during load.
func (r *SQLiteRemote) GetRaw(ctx context.Context, userID string) ([]byte, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE user_id = ?`, userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return []byte(raw), nil
}

// Set writes the document, stamping lastUpdated. With merge true the
// read-merge-write runs inside one transaction so a concurrent writer
// cannot interleave.
func (r *SQLiteRemote) Set(ctx context.Context, userID string, doc model.Document, merge bool) error {
	now := r.now().UTC()
	incoming, err := encodeDocument(stampLastUpdated(doc, now))
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set document: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	final := incoming
	if merge {
		var existing string
		err := tx.QueryRowContext(ctx,
			`SELECT doc FROM documents WHERE user_id = ?`, userID,
		).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Nothing to merge over.
		case err != nil:
			return fmt.Errorf("set document: read existing: %w", err)
		default:
			final, err = mergeRaw([]byte(existing), incoming)
			if err != nil {
				return fmt.Errorf("set document: %w", err)
			}
		}
	}

	stamp := now.Format(time.RFC3339Nano)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (user_id, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, userID, string(final), stamp, stamp)
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set document: commit: %w", err)
	}
	return nil
}
