// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first (and silently skipped when absent), so local development never needs
// exported shell variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend selects the trips collection backend:
	// "memory" (default), "postgres", or "redis".
	StoreBackend string

	// DatabaseURL is the Postgres connection string.
	// Required when StoreBackend is "postgres".
	DatabaseURL string

	// RedisAddr is the Redis host:port. Defaults to "localhost:6379".
	RedisAddr string

	// GeminiAPIKey authenticates against the text-generation service.
	// Required — itinerary generation and ask are core features.
	GeminiAPIKey string

	// GeminiModel is the generation model name. Defaults to "gemini-2.5-flash".
	GeminiModel string

	// CountriesURL overrides the country directory endpoint. Empty means
	// the public REST Countries service.
	CountriesURL string
}

// Load reads configuration from the environment (after loading .env, if
// present) and returns a Config. Returns an error listing any required
// variables that are not set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		CountriesURL: os.Getenv("COUNTRIES_URL"),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q: must be %s, %s, or %s",
			cfg.StoreBackend, BackendMemory, BackendPostgres, BackendRedis)
	}

	var missing []string
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.StoreBackend == BackendPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
