package mood

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
	"github.com/milo-garden/mindful-garden/backend/internal/model/mood"
)

type failingStore struct{ err error }

func (f failingStore) Create(context.Context, map[string]any) (string, error) { return "", f.err }
func (f failingStore) Recent(context.Context, int) ([]mood.Entry, error)    { return nil, f.err }

func TestCreateRejectsEmptyFields(t *testing.T) {
	svc := NewService(mood.NewMemoryStore())

	for _, fields := range []map[string]any{nil, {}} {
		_, err := svc.Create(context.Background(), fields)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Missing mood data", apperr.Message(err))
	}
}

func TestRecentCapsAtLimit(t *testing.T) {
	svc := NewService(mood.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < RecentLimit+5; i++ {
		_, err := svc.Create(ctx, map[string]any{"mood": fmt.Sprint(i), "timestamp": int64(i)})
		require.NoError(t, err)
	}

	entries, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, RecentLimit)
}

func TestRecentEmptyIsNonNil(t *testing.T) {
	entries, err := NewService(mood.NewMemoryStore()).Recent(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestStoreFailuresAreUpstream(t *testing.T) {
	svc := NewService(failingStore{err: errors.New("permission denied")})

	_, err := svc.Create(context.Background(), map[string]any{"mood": "ok"})
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))

	_, err = svc.Recent(context.Background())
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Equal(t, "permission denied", apperr.Message(err))
}
