package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	// Path is the database file. Parent directories are created.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// MaxOpenConns bounds the connection pool.
	// Default: 4
	MaxOpenConns int
}

// SQLiteStore persists snapshots in a SQLite database in WAL mode.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	logger    *slog.Logger
	closeOnce sync.Once

	recordStmt *sql.Stmt
	listStmt   *sql.Stmt
	pruneStmt  *sql.Stmt
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	site TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	fetched_at INTEGER NOT NULL,
	found INTEGER NOT NULL,
	success INTEGER NOT NULL,
	digest TEXT NOT NULL DEFAULT '',
	warning_count INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	content TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_snapshots_site_fetched ON snapshots(site, fetched_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON snapshots(fetched_at);
`

// OpenSQLite opens (creating if needed) the snapshot database at cfg.Path.
func OpenSQLite(ctx context.Context, cfg SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, newStorageError(BackendSQLite, "open", errors.New("db path cannot be empty"))
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 4
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newStorageError(BackendSQLite, "open", fmt.Errorf("ensure data dir: %w", err))
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		filepath.ToSlash(cfg.Path), cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, newStorageError(BackendSQLite, "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	store := &SQLiteStore{
		db:     db,
		path:   cfg.Path,
		logger: logger,
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, newStorageError(BackendSQLite, "init_schema", err)
	}

	if err := store.prepareStatements(ctx); err != nil {
		db.Close()
		return nil, newStorageError(BackendSQLite, "prepare", err)
	}

	logger.Debug("history database opened", "path", cfg.Path)
	return store, nil
}

func (s *SQLiteStore) prepareStatements(ctx context.Context) error {
	var err error

	s.recordStmt, err = s.db.PrepareContext(ctx, `
		INSERT INTO snapshots (id, site, url, fetched_at, found, success, digest, warning_count, error_count, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	s.listStmt, err = s.db.PrepareContext(ctx, `
		SELECT id, site, url, fetched_at, found, success, digest, warning_count, error_count, content
		FROM snapshots
		WHERE site = ?
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	s.pruneStmt, err = s.db.PrepareContext(ctx, `DELETE FROM snapshots WHERE fetched_at < ?`)
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}

	return nil
}

// Record inserts s.
func (s *SQLiteStore) Record(ctx context.Context, snap *Snapshot) error {
	if err := prepare(snap); err != nil {
		return newStorageError(BackendSQLite, "record", err)
	}

	_, err := s.recordStmt.ExecContext(ctx,
		snap.ID,
		snap.Site,
		snap.URL,
		snap.FetchedAt.UnixNano(),
		snap.Found,
		snap.Success,
		snap.Digest,
		snap.WarningCount,
		snap.ErrorCount,
		snap.Content,
	)
	if err != nil {
		return newStorageError(BackendSQLite, "record", err)
	}
	return nil
}

// List returns the newest snapshots for site.
func (s *SQLiteStore) List(ctx context.Context, site string, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.listStmt.QueryContext(ctx, site, limit)
	if err != nil {
		return nil, newStorageError(BackendSQLite, "list", err)
	}
	defer rows.Close()

	results := make([]*Snapshot, 0)
	for rows.Next() {
		var snap Snapshot
		var fetchedAt int64
		if err := rows.Scan(
			&snap.ID,
			&snap.Site,
			&snap.URL,
			&fetchedAt,
			&snap.Found,
			&snap.Success,
			&snap.Digest,
			&snap.WarningCount,
			&snap.ErrorCount,
			&snap.Content,
		); err != nil {
			return nil, newStorageError(BackendSQLite, "list", err)
		}
		snap.FetchedAt = time.Unix(0, fetchedAt).UTC()
		results = append(results, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError(BackendSQLite, "list", err)
	}

	return results, nil
}

// Latest returns the newest snapshot for site.
func (s *SQLiteStore) Latest(ctx context.Context, site string) (*Snapshot, error) {
	results, err := s.List(ctx, site, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

// Prune deletes snapshots fetched before cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, nil
	}

	result, err := s.pruneStmt.ExecContext(ctx, cutoff.UnixNano())
	if err != nil {
		return 0, newStorageError(BackendSQLite, "prune", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, newStorageError(BackendSQLite, "prune", err)
	}

	if removed > 0 {
		s.logger.Debug("pruned history snapshots", "removed", removed, "cutoff", cutoff)
	}
	return removed, nil
}

// Backend returns "sqlite".
func (s *SQLiteStore) Backend() string {
	return BackendSQLite
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.recordStmt, s.listStmt, s.pruneStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}
