package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"futuremirror/internal/gemini"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Gemini     gemini.Config
	ListenAddr string
	DataPath   string
	LogDir     string
	SentryDSN  string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths. DATA_PATH holds the per-user financial fixture files.
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = filepath.Join(exeDir, "data")
		} else {
			dataPath = "data"
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("GEMINI_TIMEOUT_SECONDS", "30"))
	retries, _ := strconv.Atoi(getEnv("GEMINI_MAX_RETRIES", "2"))

	cfg := &AppConfig{
		Gemini: gemini.Config{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout:    time.Duration(timeoutSecs) * time.Second,
			MaxRetries: retries,
		},
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),
		DataPath:   dataPath,
		LogDir:     logDir,
		SentryDSN:  getEnv("SENTRY_DSN", ""),
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; parameter resolution and summaries will use deterministic fallbacks")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
