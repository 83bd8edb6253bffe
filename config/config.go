package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const defaultGenerationEndpoint = "https://modelslab.com/api/v6/realtime/text2img"

// Config holds everything the server reads from the environment. It is
// loaded and validated once at startup and injected into the components
// that need it.
type Config struct {
	Port string `validate:"required"`

	DatabaseURL string `validate:"required"`

	// GenerationAPIKey is deliberately not required here: a missing key
	// must surface as a 500 on the generate endpoint, not a startup crash.
	GenerationAPIKey   string
	GenerationEndpoint string `validate:"required,url"`

	StorageBucket string `validate:"required"`
	StorageFolder string `validate:"required"`

	GeminiAPIKey   string
	GeminiModel    string
	PromptEnhancer bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file loaded: %v\n", err)
	}

	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GenerationAPIKey:   os.Getenv("STABLE_DIFFUSION_API_KEY"),
		GenerationEndpoint: getenv("STABLE_DIFFUSION_API_URL", defaultGenerationEndpoint),
		StorageBucket:      os.Getenv("GCS_BUCKET_NAME"),
		StorageFolder:      getenv("GCS_UPLOAD_FOLDER", "posts/"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		PromptEnhancer:     os.Getenv("PROMPT_ENHANCER") == "true",
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
