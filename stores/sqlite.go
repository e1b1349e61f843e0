package stores

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (CGO_ENABLED=0 compatible)

	"github.com/mwantia/depot"
)

// SQLiteStore is a backend persisting entries in a single SQLite table.
// It uses modernc.org/sqlite which works without CGO.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// NewSQLite creates a SQLite-backed store.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{
		db: db,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS depot_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);
	`

	_, err := ss.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this backend
func (*SQLiteStore) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
// This verifies the database connection is healthy.
func (ss *SQLiteStore) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.closed {
		return depot.ErrClosed
	}

	if err := ss.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
// This flushes any pending writes and closes the connection safely; the
// store cannot be reopened afterwards.
func (ss *SQLiteStore) Close(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.closed {
		return depot.ErrClosed
	}

	ss.closed = true
	if err := ss.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (ss *SQLiteStore) Capabilities() depot.Capabilities {
	return depot.Capabilities{
		Capabilities: []depot.Capability{
			depot.CapabilityPersistent,
			depot.CapabilityOrdered,
		},
	}
}

func (ss *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.closed {
		return depot.ErrClosed
	}

	_, err := ss.db.ExecContext(ctx, `
		INSERT INTO depot_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)

	return err
}

func (ss *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if ss.closed {
		return nil, depot.ErrClosed
	}

	var value []byte
	err := ss.db.QueryRowContext(ctx, `
		SELECT value FROM depot_entries WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", depot.ErrNotExist, key)
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (ss *SQLiteStore) Delete(ctx context.Context, key string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.closed {
		return depot.ErrClosed
	}

	_, err := ss.db.ExecContext(ctx, "DELETE FROM depot_entries WHERE key = ?", key)
	return err
}

func (ss *SQLiteStore) Clear(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.closed {
		return depot.ErrClosed
	}

	_, err := ss.db.ExecContext(ctx, "DELETE FROM depot_entries")
	return err
}

func (ss *SQLiteStore) Count(ctx context.Context) (int, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if ss.closed {
		return 0, depot.ErrClosed
	}

	var count int
	err := ss.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM depot_entries").Scan(&count)
	return count, err
}

// Iterate walks the table in key order. The iterator keeps a database
// cursor open until it is closed or exhausted.
func (ss *SQLiteStore) Iterate(ctx context.Context) (depot.Iterator, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if ss.closed {
		return nil, depot.ErrClosed
	}

	rows, err := ss.db.QueryContext(ctx, `
		SELECT key, value FROM depot_entries ORDER BY key
	`)
	if err != nil {
		return nil, err
	}

	return &sqliteIterator{rows: rows}, nil
}

type sqliteIterator struct {
	rows *sql.Rows
}

func (it *sqliteIterator) Next(ctx context.Context) (depot.Entry, error) {
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return depot.Entry{}, err
		}
		return depot.Entry{}, depot.Done
	}

	var entry depot.Entry
	if err := it.rows.Scan(&entry.Key, &entry.Value); err != nil {
		return depot.Entry{}, err
	}

	return entry, nil
}

func (it *sqliteIterator) Close() error {
	return it.rows.Close()
}
