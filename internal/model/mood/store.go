package mood

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store persists mood entries. Entries are create-and-list only.
type Store interface {
	Create(ctx context.Context, fields map[string]any) (string, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// MemoryStore implements Store in process, for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make([]Entry, 0, 16)}
}

// Create stores a copy of fields under a fresh id.
func (s *MemoryStore) Create(_ context.Context, fields map[string]any) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("mood fields are empty")
	}

	entry := Entry{
		ID:     uuid.NewString(),
		Fields: maps.Clone(fields),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	return entry.ID, nil
}

// Recent returns up to limit entries ordered by timestamp, newest first.
// Entries without a timestamp are left out, matching an ordered Firestore query.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	candidates := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if _, ok := entry.Fields[TimestampField]; ok {
			candidates = append(candidates, Entry{ID: entry.ID, Fields: maps.Clone(entry.Fields)})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return CompareValues(candidates[i].Fields[TimestampField], candidates[j].Fields[TimestampField]) > 0
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
