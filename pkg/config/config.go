package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	LLM       LLMConfig
	Assembly  AssemblyAIConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Upload    UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds embedded database configuration
type DatabaseConfig struct {
	Path        string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LLMConfig holds the hosted chat-completion endpoint configuration
type LLMConfig struct {
	APIKey         string
	Endpoint       string
	APIVersion     string
	Model          string
	EmbeddingModel string
	EmbeddingDim   int
	Temperature    float64
	MaxTokens      int
	// TokenBudget limits prompt size; retrieved context rows are
	// truncated lowest-similarity-first to stay under it.
	TokenBudget int
}

// AssemblyAIConfig holds the speech transcription endpoint configuration
type AssemblyAIConfig struct {
	APIKey string
}

// AdminConfig holds the shared admin access password
type AdminConfig struct {
	AppPassword string
}

// RateLimitConfig holds per-session throttling configuration
type RateLimitConfig struct {
	Attempts int
	Window   time.Duration
}

// UploadConfig holds upload validation limits
type UploadConfig struct {
	MaxFileBytes int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", "unga_readout.db"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-too-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "1h"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		LLM: LLMConfig{
			APIKey:         getEnv("API_KEY", ""),
			Endpoint:       getEnv("API_ENDPOINT", ""),
			APIVersion:     getEnv("API_VERSION", "2024-06-01"),
			Model:          getEnv("LLM_MODEL", "gpt-4o"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDim:   getEnvAsInt("EMBEDDING_DIM", 1536),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.1),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 4000),
			TokenBudget:    getEnvAsInt("LLM_TOKEN_BUDGET", 100000),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Admin: AdminConfig{
			AppPassword: getEnv("APP_PASSWORD", ""),
		},
		RateLimit: RateLimitConfig{
			Attempts: getEnvAsInt("RATE_LIMIT_ATTEMPTS", 10),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
		Upload: UploadConfig{
			MaxFileBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 20<<20)),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that required secrets are present. Absence produces a
// configuration error surfaced to the operator, not a crash.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return apperrors.ErrConfiguration("API_KEY")
	}
	if c.LLM.Endpoint == "" {
		return apperrors.ErrConfiguration("API_ENDPOINT")
	}
	if c.Admin.AppPassword == "" {
		return apperrors.ErrConfiguration("APP_PASSWORD")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
