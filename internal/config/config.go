package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"

	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreMemory    = "memory"
)

// Config aggregates every setting the gateway reads at startup.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Google GoogleConfig
	Speech SpeechConfig
	Store  StoreConfig
	CORS   CORSConfig
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the rules that struct tags cannot express.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.AI.validate(); err != nil {
		return err
	}
	if err := c.Google.validate(); err != nil {
		return err
	}
	if err := c.Store.validate(); err != nil {
		return err
	}
	return nil
}

// SpeechToolConfig is the subset the standalone TTS tool needs.
type SpeechToolConfig struct {
	Google GoogleConfig
	Speech SpeechConfig
}

// LoadSpeechTool reads only the Google and speech settings, so a TTS run does
// not need LLM credentials or a mood store.
func LoadSpeechTool() (*SpeechToolConfig, error) {
	var cfg SpeechToolConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Google.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `env:"PORT" env-default:"8080"`
}

// Addr returns the listen address. PORT may be a bare port, ":8080" or "host:port".
func (c ServerConfig) Addr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func (c ServerConfig) validate() error {
	if strings.Contains(strings.TrimSpace(c.Port), " ") {
		return fmt.Errorf("invalid PORT value: %q", c.Port)
	}
	return nil
}

// AIConfig describes the language-model provider.
type AIConfig struct {
	Provider      string `env:"LLM_PROVIDER" env-default:"openai"`
	Model         string `env:"LLM_MODEL" env-default:"gpt-4o"`
	MaxTokens     int    `env:"LLM_MAX_TOKENS" env-default:"150"`
	SystemPrompt  string `env:"MILO_SYSTEM_PROMPT"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	ArkAPIKey     string `env:"ARK_API_KEY"`
	ArkAccessKey  string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey  string `env:"ARK_SECRET_KEY"`
	ArkBaseURL    string `env:"ARK_BASE_URL" env-default:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion     string `env:"ARK_REGION" env-default:"cn-beijing"`
}

func (c AIConfig) validate() error {
	switch strings.ToLower(c.Provider) {
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return fmt.Errorf("please set the OPENAI_API_KEY environment variable")
		}
	case ProviderArk:
		if c.ArkAPIKey == "" && (c.ArkAccessKey == "" || c.ArkSecretKey == "") {
			return fmt.Errorf("please set ARK_API_KEY or ARK_ACCESS_KEY and ARK_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}

	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("LLM_MODEL must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be > 0 (got %d)", c.MaxTokens)
	}
	return nil
}

// NewChatModel builds the chat model for the configured provider.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	maxTokens := c.MaxTokens

	switch strings.ToLower(c.Provider) {
	case ProviderArk:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:   c.ArkBaseURL,
			Region:    c.ArkRegion,
			APIKey:    c.ArkAPIKey,
			AccessKey: c.ArkAccessKey,
			SecretKey: c.ArkSecretKey,
			Model:     c.Model,
			MaxTokens: &maxTokens,
		})
	case ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:    c.OpenAIAPIKey,
			BaseURL:   c.OpenAIBaseURL,
			Model:     c.Model,
			MaxTokens: &maxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
}

// GoogleConfig holds the Google Cloud settings. Credentials themselves come
// from Application Default Credentials.
type GoogleConfig struct {
	ProjectID     string `env:"GOOGLE_CLOUD_PROJECT"`
	Bucket        string `env:"GCS_BUCKET_NAME" env-required:"true"`
	PublicBaseURL string `env:"GCS_PUBLIC_BASE_URL" env-default:"https://storage.googleapis.com"`
}

func (c GoogleConfig) validate() error {
	if strings.TrimSpace(c.Bucket) == "" {
		return fmt.Errorf("please set the GCS_BUCKET_NAME environment variable")
	}
	return nil
}

// SpeechConfig describes the text-to-speech voice and where audio is stored.
type SpeechConfig struct {
	LanguageCode string `env:"TTS_LANGUAGE_CODE" env-default:"en-US"`
	VoiceGender  string `env:"TTS_VOICE_GENDER" env-default:"NEUTRAL"`
	VoiceName    string `env:"TTS_VOICE_NAME"`
	ObjectPrefix string `env:"TTS_OBJECT_PREFIX" env-default:"audio/"`
}

// StoreConfig selects the mood document store.
type StoreConfig struct {
	Backend       string `env:"MOOD_STORE" env-default:"firestore"`
	Collection    string `env:"MOOD_COLLECTION" env-default:"moods"`
	MongoURI      string `env:"MONGODB_URI" env-default:"mongodb://localhost:27017/milo"`
	MongoDatabase string `env:"MONGODB_DATABASE" env-default:"milo"`
}

func (c StoreConfig) validate() error {
	switch strings.ToLower(c.Backend) {
	case StoreFirestore, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unsupported MOOD_STORE %q", c.Backend)
	}
	if strings.TrimSpace(c.Collection) == "" {
		return fmt.Errorf("MOOD_COLLECTION must not be empty")
	}
	return nil
}

// CORSConfig holds the headers stamped on every response.
type CORSConfig struct {
	AllowedOrigin  string `env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
	AllowedMethods string `env:"CORS_ALLOWED_METHODS" env-default:"GET, POST, OPTIONS"`
	AllowedHeaders string `env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type, Authorization"`
	FrameOptions   string `env:"X_FRAME_OPTIONS" env-default:"SAMEORIGIN"`
}
