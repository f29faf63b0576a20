package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"PORT", "LLM_PROVIDER", "LLM_MODEL", "LLM_MAX_TOKENS", "MILO_SYSTEM_PROMPT",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY",
	"GOOGLE_CLOUD_PROJECT", "GCS_BUCKET_NAME", "GCS_PUBLIC_BASE_URL",
	"TTS_LANGUAGE_CODE", "TTS_VOICE_GENDER", "TTS_VOICE_NAME", "TTS_OBJECT_PREFIX",
	"MOOD_STORE", "MOOD_COLLECTION", "MONGODB_URI", "MONGODB_DATABASE",
}

// cleanEnv unsets every variable Load reads; t.Setenv restores them afterwards.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func validEnv(t *testing.T) {
	t.Helper()
	cleanEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GCS_BUCKET_NAME", "milo-audio")
}

func TestLoadDefaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 150, cfg.AI.MaxTokens)
	assert.Equal(t, "milo-audio", cfg.Google.Bucket)
	assert.Equal(t, "https://storage.googleapis.com", cfg.Google.PublicBaseURL)
	assert.Equal(t, "en-US", cfg.Speech.LanguageCode)
	assert.Equal(t, "NEUTRAL", cfg.Speech.VoiceGender)
	assert.Equal(t, "audio/", cfg.Speech.ObjectPrefix)
	assert.Equal(t, StoreFirestore, cfg.Store.Backend)
	assert.Equal(t, "moods", cfg.Store.Collection)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Equal(t, "GET, POST, OPTIONS", cfg.CORS.AllowedMethods)
	assert.Equal(t, "Content-Type, Authorization", cfg.CORS.AllowedHeaders)
	assert.Equal(t, "SAMEORIGIN", cfg.CORS.FrameOptions)
}

func TestLoadRequiresOpenAIKey(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GCS_BUCKET_NAME", "milo-audio")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadRequiresBucket(t *testing.T) {
	cleanEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadArkProviderDoesNotNeedOpenAIKey(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GCS_BUCKET_NAME", "milo-audio")
	t.Setenv("LLM_PROVIDER", "ark")
	t.Setenv("ARK_API_KEY", "ark-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderArk, cfg.AI.Provider)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	validEnv(t)
	t.Setenv("MOOD_STORE", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOOD_STORE")
}

func TestServerAddr(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{port: "", want: ":8080"},
		{port: "9090", want: ":9090"},
		{port: ":7070", want: ":7070"},
		{port: "127.0.0.1:6060", want: "127.0.0.1:6060"},
	}

	for _, tc := range cases {
		if got := (ServerConfig{Port: tc.port}).Addr(); got != tc.want {
			t.Fatalf("Addr(%q) = %q, want %q", tc.port, got, tc.want)
		}
	}
}

func TestLoadRejectsPortWithSpaces(t *testing.T) {
	validEnv(t)
	t.Setenv("PORT", "80 80")

	_, err := Load()
	require.Error(t, err)
}

func TestNewChatModelRejectsUnknownProvider(t *testing.T) {
	_, err := AIConfig{Provider: "llama"}.NewChatModel(context.Background())
	require.Error(t, err)
}

func TestLoadSpeechToolSkipsLLMAndStore(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GCS_BUCKET_NAME", "milo-audio")
	t.Setenv("MOOD_STORE", "cassandra")

	cfg, err := LoadSpeechTool()
	require.NoError(t, err)
	assert.Equal(t, "milo-audio", cfg.Google.Bucket)
	assert.Equal(t, "en-US", cfg.Speech.LanguageCode)
	assert.Equal(t, "NEUTRAL", cfg.Speech.VoiceGender)
	assert.Equal(t, "audio/", cfg.Speech.ObjectPrefix)
}

func TestLoadSpeechToolRequiresBucket(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GCS_BUCKET_NAME", " ")

	_, err := LoadSpeechTool()
	require.Error(t, err)
}
