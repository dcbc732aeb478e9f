package history

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in memory. It backs the "memory" history backend
// and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	sites map[string][]*Snapshot // insertion order, oldest first
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sites: make(map[string][]*Snapshot),
	}
}

// Record stores a copy of s.
func (m *MemoryStore) Record(ctx context.Context, s *Snapshot) error {
	if err := prepare(s); err != nil {
		return newStorageError(BackendMemory, "record", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshotCopy := *s
	m.sites[s.Site] = append(m.sites[s.Site], &snapshotCopy)
	return nil
}

// List returns copies of the newest snapshots for site.
func (m *MemoryStore) List(ctx context.Context, site string, limit int) ([]*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.sites[site]
	results := make([]*Snapshot, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(results) == limit {
			break
		}
		snapshotCopy := *stored[i]
		results = append(results, &snapshotCopy)
	}
	return results, nil
}

// Latest returns the newest snapshot for site.
func (m *MemoryStore) Latest(ctx context.Context, site string) (*Snapshot, error) {
	results, err := m.List(ctx, site, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

// Prune removes snapshots fetched before cutoff.
func (m *MemoryStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for site, stored := range m.sites {
		kept := stored[:0]
		for _, s := range stored {
			if s.FetchedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			delete(m.sites, site)
			continue
		}
		m.sites[site] = kept
	}
	return removed, nil
}

// Backend returns "memory".
func (m *MemoryStore) Backend() string {
	return BackendMemory
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
