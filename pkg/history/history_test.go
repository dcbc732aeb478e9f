package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"aumos-oss/agentsmd/pkg/config"
)

// stores returns one fresh store per backend.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := OpenSQLite(context.Background(), SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "history", "test.db"),
	}, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendSQLite: sqliteStore,
	}
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func snapshotAt(site string, offset time.Duration, digest string) *Snapshot {
	return &Snapshot{
		Site:         site,
		URL:          "https://" + site + "/AGENTS.md",
		FetchedAt:    baseTime.Add(offset),
		Found:        true,
		Success:      true,
		Digest:       digest,
		WarningCount: 1,
		Content:      "## Identity\n- site: " + site + "\n",
	}
}

func TestStore_RecordAndList(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i, digest := range []string{"a", "b", "c"} {
				if err := store.Record(ctx, snapshotAt("example.com", time.Duration(i)*time.Hour, digest)); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}
			if err := store.Record(ctx, snapshotAt("other.org", 0, "z")); err != nil {
				t.Fatalf("Record() error = %v", err)
			}

			all, err := store.List(ctx, "example.com", 0)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("List() returned %d snapshots, want 3", len(all))
			}
			for i, want := range []string{"c", "b", "a"} {
				if all[i].Digest != want {
					t.Errorf("List()[%d].Digest = %q, want %q", i, all[i].Digest, want)
				}
			}

			first := all[2]
			if first.ID == "" {
				t.Error("Record() did not assign an ID")
			}
			if !first.FetchedAt.Equal(baseTime) {
				t.Errorf("FetchedAt = %v, want %v", first.FetchedAt, baseTime)
			}
			if !first.Found || !first.Success || first.WarningCount != 1 {
				t.Errorf("snapshot fields not round-tripped: %+v", first)
			}
			if first.Content != "## Identity\n- site: example.com\n" {
				t.Errorf("Content = %q", first.Content)
			}

			limited, err := store.List(ctx, "example.com", 2)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(limited) != 2 || limited[0].Digest != "c" {
				t.Errorf("List(limit=2) = %d snapshots, first %q", len(limited), limited[0].Digest)
			}

			none, err := store.List(ctx, "missing.net", 10)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if none == nil || len(none) != 0 {
				t.Errorf("List(unknown site) = %v, want empty slice", none)
			}
		})
	}
}

func TestStore_Latest(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Latest(ctx, "example.com"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Latest() on empty store error = %v, want ErrNotFound", err)
			}

			_ = store.Record(ctx, snapshotAt("example.com", 0, "old"))
			_ = store.Record(ctx, snapshotAt("example.com", time.Minute, "new"))

			latest, err := store.Latest(ctx, "example.com")
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if latest.Digest != "new" {
				t.Errorf("Latest().Digest = %q, want new", latest.Digest)
			}
		})
	}
}

func TestStore_SameTimestampKeepsInsertionOrder(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = store.Record(ctx, snapshotAt("example.com", 0, "first"))
			_ = store.Record(ctx, snapshotAt("example.com", 0, "second"))

			latest, err := store.Latest(ctx, "example.com")
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if latest.Digest != "second" {
				t.Errorf("Latest().Digest = %q, want second", latest.Digest)
			}
		})
	}
}

func TestStore_Prune(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = store.Record(ctx, snapshotAt("example.com", -48*time.Hour, "old"))
			_ = store.Record(ctx, snapshotAt("other.org", -48*time.Hour, "old"))
			_ = store.Record(ctx, snapshotAt("example.com", 0, "new"))

			removed, err := store.Prune(ctx, baseTime.Add(-24*time.Hour))
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if removed != 2 {
				t.Errorf("Prune() removed %d, want 2", removed)
			}

			remaining, _ := store.List(ctx, "example.com", 0)
			if len(remaining) != 1 || remaining[0].Digest != "new" {
				t.Errorf("remaining = %+v, want only the new snapshot", remaining)
			}

			removed, err = store.Prune(ctx, time.Time{})
			if err != nil || removed != 0 {
				t.Errorf("Prune(zero) = %d, %v; want 0, nil", removed, err)
			}
		})
	}
}

func TestStore_RecordInvalid(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Record(context.Background(), &Snapshot{})
			var storageErr *StorageError
			if !errors.As(err, &storageErr) {
				t.Fatalf("Record(empty site) error = %v, want *StorageError", err)
			}
			if storageErr.Backend != name || storageErr.Operation != "record" {
				t.Errorf("StorageError = %+v", storageErr)
			}
		})
	}
}

func TestRecord_DoesNotAliasInput(t *testing.T) {
	store := NewMemoryStore()
	snap := snapshotAt("example.com", 0, "a")
	_ = store.Record(context.Background(), snap)

	snap.Digest = "mutated"

	latest, _ := store.Latest(context.Background(), "example.com")
	if latest.Digest != "a" {
		t.Errorf("stored snapshot changed with input: %q", latest.Digest)
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentsmd.db")
	ctx := context.Background()

	store, err := OpenSQLite(ctx, SQLiteConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := store.Record(ctx, snapshotAt("example.com", 0, "persisted")); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	reopened, err := OpenSQLite(ctx, SQLiteConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() reopen error = %v", err)
	}
	defer reopened.Close()

	latest, err := reopened.Latest(ctx, "example.com")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Digest != "persisted" {
		t.Errorf("Digest = %q, want persisted", latest.Digest)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.HistoryConfig
		wantBackend string
		wantErr     bool
	}{
		{
			name:        "memory",
			cfg:         config.HistoryConfig{Backend: "memory"},
			wantBackend: BackendMemory,
		},
		{
			name: "sqlite",
			cfg: config.HistoryConfig{
				Backend: "sqlite",
				SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "h.db")},
			},
			wantBackend: BackendSQLite,
		},
		{
			name:    "sqlite without path",
			cfg:     config.HistoryConfig{Backend: "sqlite"},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     config.HistoryConfig{Backend: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer store.Close()
			if store.Backend() != tt.wantBackend {
				t.Errorf("Backend() = %q, want %q", store.Backend(), tt.wantBackend)
			}
		})
	}
}

func TestRetentionCutoff(t *testing.T) {
	if got := RetentionCutoff(baseTime, 0); !got.IsZero() {
		t.Errorf("RetentionCutoff(0) = %v, want zero", got)
	}
	if got := RetentionCutoff(baseTime, 30); !got.Equal(baseTime.AddDate(0, 0, -30)) {
		t.Errorf("RetentionCutoff(30) = %v", got)
	}
}
