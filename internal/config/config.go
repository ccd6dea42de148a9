package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Gemini configuration
	GeminiAPIKey          string
	Models                ModelList
	AttemptTimeoutSeconds int
	// Session tokens issued at login
	TokenSecret string
	// Optional log file directory ("" = stdout only)
	LogDir string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:8100"),
		TablePrefix: getTablePrefix(env),
		// Gemini configuration
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		Models:                LoadModels(os.Getenv("MODELS_FILE")),
		AttemptTimeoutSeconds: getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),
		// Session tokens
		TokenSecret: getEnv("TOKEN_SECRET", "dev-insecure-secret"),
		LogDir:      getEnv("LOG_DIR", ""),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
