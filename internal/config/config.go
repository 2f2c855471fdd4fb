package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	StoreBackend    string `validate:"oneof=memory postgres"`
	DatabaseURL     string `validate:"required_if=StoreBackend postgres"`
	DatabaseMigrate bool

	LLMProvider    string  `validate:"oneof=ollama gemini"`
	LLMTemperature float64 `validate:"gte=0,lte=2"`

	OllamaHost       string `validate:"required,url"`
	OllamaChatModel  string
	OllamaEmbedModel string

	GeminiAPIKey     string `validate:"required_if=LLMProvider gemini"`
	GeminiModel      string
	GeminiEmbedModel string

	SeedOnStart bool
	SeedFile    string

	// ReseedInterval of zero disables periodic reseeding.
	ReseedInterval time.Duration `validate:"gte=0"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from the current environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "3000"),
		StoreBackend:     getenvDefault("STORE_BACKEND", "memory"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseMigrate:  getenvBool("DATABASE_MIGRATE", true),
		LLMProvider:      getenvDefault("LLM_PROVIDER", "ollama"),
		OllamaHost:       getenvDefault("OLLAMA_HOST", "http://localhost:11434"),
		OllamaChatModel:  getenvDefault("OLLAMA_CHAT_MODEL", "llama3.2"),
		OllamaEmbedModel: getenvDefault("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getenvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEmbedModel: getenvDefault("GEMINI_EMBED_MODEL", "text-embedding-004"),
		SeedFile:         os.Getenv("SEED_FILE"),
	}

	// a persistent store is only reset when asked to
	cfg.SeedOnStart = getenvBool("SEED_ON_START", cfg.StoreBackend == "memory")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.ReseedInterval, err = getenvDuration("RESEED_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.LLMTemperature, err = getenvFloat("LLM_TEMPERATURE", 0); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
