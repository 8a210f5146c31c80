// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the conversation core.
type Config struct {
	LogMode string

	Supabase  SupabaseConfig
	Redis     RedisConfig
	Qdrant    QdrantConfig
	OpenAI    OpenAIConfig
	Retrieval RetrievalConfig

	// PivotLanguage is the language questions are translated into before
	// generation. Narratives are translated back on the way out.
	PivotLanguage string

	// TurnLockTTL bounds how long one turn may hold a session's lock.
	TurnLockTTL time.Duration

	// HistoryTokenLimit and HistoryMessageLimit bound the history sent to
	// the generator; the durable log itself is never truncated.
	HistoryTokenLimit   int
	HistoryMessageLimit int
}

// SupabaseConfig holds Supabase connection configuration.
type SupabaseConfig struct {
	URL    string
	APIKey string
}

// RedisConfig holds Redis connection configuration for the turn lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// QdrantConfig holds Qdrant connection configuration.
type QdrantConfig struct {
	URL            string
	CollectionName string
	APIKey         string
}

// OpenAIConfig holds generator/translator/embedding configuration.
type OpenAIConfig struct {
	BaseURL          string
	APIKey           string
	ChatModel        string
	EmbedModel       string
	GenerateTimeout  time.Duration
	TranslateTimeout time.Duration
	MaxRetries       int
}

// RetrievalConfig controls grounding-document search.
type RetrievalConfig struct {
	TopK     int
	MinScore float32
}

// Load reads configuration from the environment. A .env file is applied
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogMode: getEnv("LOG_MODE", "dev"),
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			APIKey: getEnv("SUPABASE_API_KEY", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Qdrant: QdrantConfig{
			URL:            getEnv("QDRANT_URL", ""),
			CollectionName: getEnv("QDRANT_COLLECTION", "player_data"),
			APIKey:         getEnv("QDRANT_API_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			BaseURL:          getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:           getEnv("OPENAI_API_KEY", ""),
			ChatModel:        getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
			EmbedModel:       getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-large"),
			GenerateTimeout:  getEnvDuration("OPENAI_GENERATE_TIMEOUT", 60*time.Second),
			TranslateTimeout: getEnvDuration("OPENAI_TRANSLATE_TIMEOUT", 15*time.Second),
			MaxRetries:       getEnvInt("OPENAI_MAX_RETRIES", 2),
		},
		Retrieval: RetrievalConfig{
			TopK:     getEnvInt("RETRIEVAL_TOP_K", 10),
			MinScore: float32(getEnvFloat("RETRIEVAL_MIN_SCORE", 0)),
		},
		PivotLanguage:       getEnv("PIVOT_LANGUAGE", "en"),
		TurnLockTTL:         getEnvDuration("TURN_LOCK_TTL", 2*time.Minute),
		HistoryTokenLimit:   getEnvInt("HISTORY_TOKEN_LIMIT", 8000),
		HistoryMessageLimit: getEnvInt("HISTORY_MESSAGE_LIMIT", 40),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required configuration fields are set.
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL cannot be empty")
	}
	if c.Supabase.APIKey == "" {
		return fmt.Errorf("SUPABASE_API_KEY cannot be empty")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY cannot be empty")
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be > 0")
	}
	if c.HistoryTokenLimit <= 0 || c.HistoryMessageLimit <= 0 {
		return fmt.Errorf("history limits must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
