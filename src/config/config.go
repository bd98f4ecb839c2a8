package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	Auth           AuthConfig
}

// AuthConfig is handed to the auth handlers and middleware explicitly so no
// code path reads secrets from the process environment at call time.
type AuthConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		Auth: AuthConfig{
			AccessSecret:  []byte(getEnv("JWT_SECRET", "")),
			RefreshSecret: []byte(getEnv("REFRESH_SECRET", "")),
			AccessTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if len(cfg.Auth.AccessSecret) == 0 || len(cfg.Auth.RefreshSecret) == 0 {
		log.Fatal("JWT_SECRET and REFRESH_SECRET are required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("ERROR: Invalid duration for %s: %s, using default", key, value)
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
