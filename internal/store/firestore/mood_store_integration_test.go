//go:build integration

package firestore

import (
	"context"
	"fmt"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcfirestore "github.com/testcontainers/testcontainers-go/modules/gcloud/firestore"
)

const emulatorImage = "gcr.io/google.com/cloudsdktool/cloud-sdk:513.0.0-emulators"

func setupStore(t *testing.T) *MoodStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcfirestore.Run(ctx, emulatorImage, tcfirestore.WithProjectID("milo-test"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	// the client switches to the emulator with insecure credentials when this is set
	t.Setenv("FIRESTORE_EMULATOR_HOST", container.URI())

	client, err := firestore.NewClient(ctx, container.ProjectID())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewMoodStore(client, "moods")
}

func TestMoodStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, map[string]any{"mood": "calm", "timestamp": int64(1700000000)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "calm", entries[0].Fields["mood"])
	assert.Equal(t, int64(1700000000), entries[0].Fields["timestamp"])
}

func TestMoodStoreRecentOrderLimitAndUntimed(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := store.Create(ctx, map[string]any{"mood": fmt.Sprintf("m%d", i), "timestamp": int64(i)})
		require.NoError(t, err)
	}
	untimedID, err := store.Create(ctx, map[string]any{"mood": "untimed"})
	require.NoError(t, err)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, "m11", entries[0].Fields["mood"])
	assert.Equal(t, "m2", entries[9].Fields["mood"])

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		assert.NotEqual(t, untimedID, entry.ID)
		assert.False(t, seen[entry.ID], "duplicate id %s", entry.ID)
		seen[entry.ID] = true
	}
}
