package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	DemoDataDir        string
	MaxUploadSizeBytes int64
	AllowedOrigins     []string

	// Anthropic messages API used for Form 16 field extraction.
	AnthropicAPIKey   string
	AnthropicModel    string
	AnthropicEndpoint string
}

var Cfg *AppConfig

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", err)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	apiKey := getEnv("ANTHROPIC_API_KEY", "")
	if apiKey == "" {
		log.Println("WARNING: ANTHROPIC_API_KEY not set. /api/parse-form16 will be unavailable; /api/demo and /api/optimize do not need it.")
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./taxhawk.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DemoDataDir:        getEnv("DEMO_DATA_DIR", "data"),
		MaxUploadSizeBytes: maxUploadSizeBytes,
		AllowedOrigins: []string{
			getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
			"http://localhost:5173",
		},

		AnthropicAPIKey:   apiKey,
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		AnthropicEndpoint: getEnv("ANTHROPIC_API_ENDPOINT", "https://api.anthropic.com/v1/messages"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, DemoDataDir=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.DemoDataDir)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
