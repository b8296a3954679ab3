package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Debug              bool
	ServerPort         int
	DatabasePath       string
	AllowedOrigins     []string
	JWTSecret          string
	TokenTTL           time.Duration
	EventRetentionDays int
	PruneSchedule      string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, err
	}

	retentionStr := getEnv("EVENT_RETENTION_DAYS", "90")
	retentionDays, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		Debug:              getEnv("DEBUG", "false") == "true",
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./finbook.db"),
		AllowedOrigins:     splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-do-not-use-in-production"),
		TokenTTL:           time.Duration(ttlMinutes) * time.Minute,
		EventRetentionDays: retentionDays,
		PruneSchedule:      getEnv("EVENT_PRUNE_SCHEDULE", "0 3 * * *"),
	}, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
