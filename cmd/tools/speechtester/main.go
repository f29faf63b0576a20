package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/joho/godotenv"

	"github.com/milo-garden/mindful-garden/backend/internal/config"
	speechmodel "github.com/milo-garden/mindful-garden/backend/internal/model/speech"
	"github.com/milo-garden/mindful-garden/backend/internal/service/speech"
	"github.com/milo-garden/mindful-garden/backend/internal/storage/gcs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	cfg, err := config.LoadSpeechTool()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	text := flag.String("text", "", "text to synthesize")
	outDir := flag.String("out", "", "write audio under this directory instead of uploading to GCS")
	language := flag.String("lang", "", "language code, defaults to TTS_LANGUAGE_CODE")
	voice := flag.String("voice", "", "voice name, defaults to TTS_VOICE_NAME")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if *text == "" {
		flag.Usage()
		log.Fatal("please pass -text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ttsClient, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Fatalf("text-to-speech client: %v", err)
	}
	defer ttsClient.Close()

	var blobs speech.BlobStore
	if *outDir != "" {
		blobs = dirStore{root: *outDir}
	} else {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalf("storage client: %v", err)
		}
		defer storageClient.Close()
		blobs = gcs.NewBucket(storageClient, cfg.Google.Bucket, cfg.Google.PublicBaseURL)
	}

	svc := speech.NewService(speechmodel.SpeechConfig{
		LanguageCode: cfg.Speech.LanguageCode,
		Gender:       cfg.Speech.VoiceGender,
		VoiceName:    cfg.Speech.VoiceName,
		ObjectPrefix: cfg.Speech.ObjectPrefix,
	}, ttsClient, blobs)

	start := time.Now()
	resp, err := svc.SynthesizeSpeech(ctx, &speechmodel.TTSRequest{
		Text:     *text,
		Language: *language,
		Voice:    *voice,
	})
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}

	log.Printf("[TTS] done in %s, %d bytes, format=%s, key=%s, created=%s",
		time.Since(start).Round(time.Millisecond), len(resp.AudioData), resp.Format, resp.ObjectKey,
		resp.CreatedAt.Format(time.RFC3339))
	fmt.Println(resp.AudioURL)
}

// dirStore writes audio objects to the local filesystem.
type dirStore struct {
	root string
}

func (d dirStore) Upload(_ context.Context, key, _ string, data []byte) error {
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (d dirStore) URL(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}
