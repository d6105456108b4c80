// Package state persists what rsc knows about source files between runs.
//
// The store is a SQLite database that records which files were last seen
// in canonical form, keyed by content hash and indent width, so fmt
// --check and fmt --write can skip them on the next run.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// Entry is one recorded file.
type Entry struct {
	Path        string
	Hash        string
	IndentWidth int
	CheckedAt   time.Time
}

// Store is the format cache.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the store at path and applies pending
// migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := path
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("opened format cache", "path", path)
	return s, nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsFormatted reports whether path was recorded as canonical for exactly
// this content hash and indent width.
func (s *Store) IsFormatted(ctx context.Context, path, hash string, indent int) (bool, error) {
	var stored string
	var width int
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash, indent_width FROM formatted_files WHERE path = ?`,
		path,
	).Scan(&stored, &width)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", path, err)
	}
	return stored == hash && width == indent, nil
}

// MarkFormatted records that content with hash is canonical for path at
// the given indent width, replacing any earlier record.
func (s *Store) MarkFormatted(ctx context.Context, path, hash string, indent int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO formatted_files (path, content_hash, indent_width, checked_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   indent_width = excluded.indent_width,
		   checked_at = excluded.checked_at`,
		path, hash, indent, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", path, err)
	}
	return nil
}

// Forget removes the record for path. Forgetting an unknown path is not an
// error.
func (s *Store) Forget(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM formatted_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to forget %s: %w", path, err)
	}
	return nil
}

// Clear removes every record and returns how many there were.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM formatted_files`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Entries lists every record ordered by path.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, content_hash, indent_width, checked_at FROM formatted_files ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var checked int64
		if err := rows.Scan(&e.Path, &e.Hash, &e.IndentWidth, &checked); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		e.CheckedAt = time.Unix(checked, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
