package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/milo-garden/mindful-garden/backend/internal/model/mood"
)

var _ mood.Store = (*MoodStore)(nil)

// Connect opens a client and pings the server before handing it back.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Printf("[mongo] connecting")
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	log.Printf("[mongo] connected")
	return client, nil
}

// MoodStore keeps mood entries in a MongoDB collection.
type MoodStore struct {
	collection *mongo.Collection
}

// NewMoodStore returns a store over db.collection.
func NewMoodStore(db *mongo.Database, collection string) *MoodStore {
	return &MoodStore{collection: db.Collection(collection)}
}

// Create inserts fields and returns the generated ObjectID in hex.
// A caller-supplied "_id" is dropped so the server always assigns the id.
func (s *MoodStore) Create(ctx context.Context, fields map[string]any) (string, error) {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}

	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: insert mood: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Recent lists the newest entries by timestamp. Documents without a timestamp are skipped.
func (s *MoodStore) Recent(ctx context.Context, limit int) ([]mood.Entry, error) {
	filter := bson.M{mood.TimestampField: bson.M{"$exists": true}}
	findOptions := options.Find().
		SetSort(bson.D{{Key: mood.TimestampField, Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo: find moods: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode moods: %w", err)
	}

	entries := make([]mood.Entry, 0, len(docs))
	for _, doc := range docs {
		entry := mood.Entry{Fields: make(map[string]any, len(doc))}
		for k, v := range doc {
			if k == "_id" {
				if oid, ok := v.(primitive.ObjectID); ok {
					entry.ID = oid.Hex()
				} else {
					entry.ID = fmt.Sprint(v)
				}
				continue
			}
			entry.Fields[k] = plain(v)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// plain converts driver container types into the map/slice shapes encoding/json expects.
func plain(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = plain(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = plain(inner)
		}
		return out
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case int32:
		return int64(val)
	default:
		return v
	}
}
