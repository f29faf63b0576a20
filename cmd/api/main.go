package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/milo-garden/mindful-garden/backend/internal/config"
	"github.com/milo-garden/mindful-garden/backend/internal/handler"
	speechModel "github.com/milo-garden/mindful-garden/backend/internal/model/speech"
	"github.com/milo-garden/mindful-garden/backend/internal/service/ai"
	"github.com/milo-garden/mindful-garden/backend/internal/service/mood"
	"github.com/milo-garden/mindful-garden/backend/internal/service/sentiment"
	"github.com/milo-garden/mindful-garden/backend/internal/service/speech"
	"github.com/milo-garden/mindful-garden/backend/internal/storage/gcs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run opens the provider clients, serves until ctx is done and closes the
// clients on every return path.
func run(ctx context.Context, cfg *config.Config) error {
	clients, err := openClients(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize provider clients: %w", err)
	}
	defer clients.Close()

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}
	aiService, err := ai.NewService(ctx, chatModel, cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to initialize AI service: %w", err)
	}
	log.Printf("AI service initialized (provider=%s, model=%s)", cfg.AI.Provider, cfg.AI.Model)

	speechConfig := speechModel.SpeechConfig{
		LanguageCode: cfg.Speech.LanguageCode,
		Gender:       cfg.Speech.VoiceGender,
		VoiceName:    cfg.Speech.VoiceName,
		ObjectPrefix: cfg.Speech.ObjectPrefix,
	}
	bucket := gcs.NewBucket(clients.storage, cfg.Google.Bucket, cfg.Google.PublicBaseURL)
	speechService := speech.NewService(speechConfig, clients.tts, bucket)
	log.Printf("Speech service initialized (bucket=%s)", bucket.Name())

	moodStore, err := clients.moodStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to initialize mood store: %w", err)
	}
	log.Printf("Mood store initialized (backend=%s, collection=%s)", cfg.Store.Backend, cfg.Store.Collection)

	router := handler.NewRouter(cfg.CORS, handler.Services{
		Chat:      aiService,
		Sentiment: sentiment.NewService(clients.language),
		Speech:    speechService,
		Mood:      mood.NewService(moodStore),
	})

	return startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Milo Mindful Garden API listening on %s", addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
