package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/storage"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/milo-garden/mindful-garden/backend/internal/config"
	moodModel "github.com/milo-garden/mindful-garden/backend/internal/model/mood"
	firestorestore "github.com/milo-garden/mindful-garden/backend/internal/store/firestore"
	mongostore "github.com/milo-garden/mindful-garden/backend/internal/store/mongo"
)

// providerClients holds every long-lived SDK client. Google clients use
// Application Default Credentials.
type providerClients struct {
	language  *language.Client
	tts       *texttospeech.Client
	storage   *storage.Client
	firestore *firestore.Client
	mongo     *mongo.Client

	projectID string
	mongoURI  string
}

func openClients(ctx context.Context, cfg *config.Config) (*providerClients, error) {
	c := &providerClients{
		projectID: cfg.Google.ProjectID,
		mongoURI:  cfg.Store.MongoURI,
	}

	var err error
	if c.language, err = language.NewClient(ctx); err != nil {
		return nil, fmt.Errorf("language client: %w", err)
	}
	if c.tts, err = texttospeech.NewClient(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("text-to-speech client: %w", err)
	}
	if c.storage, err = storage.NewClient(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("storage client: %w", err)
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case config.StoreFirestore:
		projectID := c.projectID
		if projectID == "" {
			projectID = firestore.DetectProjectID
		}
		if c.firestore, err = firestore.NewClient(ctx, projectID); err != nil {
			c.Close()
			return nil, fmt.Errorf("firestore client: %w", err)
		}
	case config.StoreMongo:
		if c.mongo, err = mongostore.Connect(ctx, c.mongoURI); err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *providerClients) moodStore(cfg config.StoreConfig) (moodModel.Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.StoreFirestore:
		return firestorestore.NewMoodStore(c.firestore, cfg.Collection), nil
	case config.StoreMongo:
		return mongostore.NewMoodStore(c.mongo.Database(cfg.MongoDatabase), cfg.Collection), nil
	case config.StoreMemory:
		log.Println("warning: MOOD_STORE=memory, moods are lost on restart")
		return moodModel.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported MOOD_STORE %q", cfg.Backend)
	}
}

// Close releases every client that was opened. Errors are logged only.
func (c *providerClients) Close() {
	if c.language != nil {
		if err := c.language.Close(); err != nil {
			log.Printf("warning: closing language client: %v", err)
		}
	}
	if c.tts != nil {
		if err := c.tts.Close(); err != nil {
			log.Printf("warning: closing text-to-speech client: %v", err)
		}
	}
	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			log.Printf("warning: closing storage client: %v", err)
		}
	}
	if c.firestore != nil {
		if err := c.firestore.Close(); err != nil {
			log.Printf("warning: closing firestore client: %v", err)
		}
	}
	if c.mongo != nil {
		if err := c.mongo.Disconnect(context.Background()); err != nil {
			log.Printf("warning: closing mongo client: %v", err)
		}
	}
}
