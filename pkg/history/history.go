package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aumos-oss/agentsmd/pkg/config"

	"github.com/google/uuid"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrNotFound is returned by Latest when a site has no snapshots.
var ErrNotFound = errors.New("no snapshot recorded")

// Snapshot is the outcome of fetching one site's AGENTS.md at a point in time.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Site      string    `json:"site" yaml:"site"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// Found is false when neither candidate location served a document.
	Found bool `json:"found" yaml:"found"`

	// Success reports whether the document parsed.
	Success bool `json:"success" yaml:"success"`

	// Digest is the canonical policy digest, empty unless Success.
	Digest string `json:"digest,omitempty" yaml:"digest,omitempty"`

	WarningCount int `json:"warning_count" yaml:"warning_count"`
	ErrorCount   int `json:"error_count" yaml:"error_count"`

	// Content is the raw document.
	Content string `json:"-" yaml:"-"`
}

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	// Record stores s, assigning an ID and FetchedAt when they are unset.
	Record(ctx context.Context, s *Snapshot) error

	// List returns up to limit snapshots for site, newest first. A limit of
	// zero or less returns all of them.
	List(ctx context.Context, site string, limit int) ([]*Snapshot, error)

	// Latest returns the newest snapshot for site or ErrNotFound.
	Latest(ctx context.Context, site string) (*Snapshot, error)

	// Prune deletes snapshots fetched before cutoff and returns how many were
	// removed. A zero cutoff removes nothing.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Backend returns the backend name.
	Backend() string

	Close() error
}

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory")
	Operation string // Operation that failed ("record", "list", "prune", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("history error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.HistoryConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite, "":
		return OpenSQLite(ctx, SQLiteConfig{
			Path:         cfg.SQLite.Path,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// RetentionCutoff returns the prune cutoff for a retention of days, or the
// zero time when days is zero (keep forever).
func RetentionCutoff(now time.Time, days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}

// prepare fills the ID and FetchedAt of a snapshot about to be stored.
func prepare(s *Snapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	if s.Site == "" {
		return errors.New("snapshot site is empty")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.FetchedAt.IsZero() {
		s.FetchedAt = time.Now()
	}
	s.FetchedAt = s.FetchedAt.UTC()
	return nil
}
