package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/milo-garden/mindful-garden/backend/internal/model/mood"
)

var _ mood.Store = (*MoodStore)(nil)

// MoodStore keeps mood entries in a single Firestore collection.
type MoodStore struct {
	client     *firestore.Client
	collection string
}

// NewMoodStore wraps an existing client. The caller owns the client and closes it.
func NewMoodStore(client *firestore.Client, collection string) *MoodStore {
	return &MoodStore{client: client, collection: collection}
}

// Create writes fields as a new document with an auto-generated id.
func (s *MoodStore) Create(ctx context.Context, fields map[string]any) (string, error) {
	ref := s.client.Collection(s.collection).NewDoc()
	if _, err := ref.Set(ctx, fields); err != nil {
		return "", fmt.Errorf("firestore: set %s/%s: %w", s.collection, ref.ID, err)
	}
	return ref.ID, nil
}

// Recent lists the newest entries by timestamp.
func (s *MoodStore) Recent(ctx context.Context, limit int) ([]mood.Entry, error) {
	iter := s.client.Collection(s.collection).
		OrderBy(mood.TimestampField, firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]mood.Entry, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: list %s: %w", s.collection, err)
		}
		entries = append(entries, mood.Entry{ID: doc.Ref.ID, Fields: doc.Data()})
	}
	return entries, nil
}
