package mood

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAssignsID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Create(ctx, map[string]any{"mood": "happy", "timestamp": int64(1700000000)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "happy", entries[0].Fields["mood"])
}

func TestMemoryStoreRejectsEmptyFields(t *testing.T) {
	_, err := NewMemoryStore().Create(context.Background(), map[string]any{})
	require.Error(t, err)
}

func TestMemoryStoreRecentOrderAndLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := store.Create(ctx, map[string]any{"mood": fmt.Sprintf("m%d", i), "timestamp": int64(1000 + i)})
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, map[string]any{"mood": "untimed"})
	require.NoError(t, err)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	assert.Equal(t, "m14", entries[0].Fields["mood"])
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].Fields[TimestampField]
		cur := entries[i].Fields[TimestampField]
		assert.GreaterOrEqual(t, CompareValues(prev, cur), 0, "entries out of order at %d", i)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	fields := map[string]any{"mood": "sad", "timestamp": "2024-01-01T00:00:00Z"}

	_, err := store.Create(ctx, fields)
	require.NoError(t, err)
	fields["mood"] = "changed"

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	entries[0].Fields["mood"] = "mutated"

	again, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "sad", again[0].Fields["mood"])
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Create(ctx, map[string]any{"timestamp": int64(i)})
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEntryMarshalOverridesCallerID(t *testing.T) {
	entry := Entry{ID: "store-id", Fields: map[string]any{"id": "client-id", "mood": "okay"}}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "store-id", decoded["id"])
	assert.Equal(t, "okay", decoded["mood"])
	assert.Equal(t, "client-id", entry.Fields["id"])
}

func TestCompareValuesCrossType(t *testing.T) {
	assert.Equal(t, -1, CompareValues(nil, false))
	assert.Equal(t, -1, CompareValues(true, int64(0)))
	assert.Equal(t, -1, CompareValues(int64(5), "a"))
	assert.Equal(t, 0, CompareValues(int64(2), 2.0))
	assert.Equal(t, 1, CompareValues("2024-02-01", "2024-01-31"))
	assert.Equal(t, -1, CompareValues([]any{int64(1)}, []any{int64(1), int64(2)}))
}
