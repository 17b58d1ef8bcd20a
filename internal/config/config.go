package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config collects the environment the server runs with. A .env file is
// honored when present; real environment variables win.
type Config struct {
	ServerPort     string
	DatabaseURL    string
	AllowedOrigins string
	LogLevel       string
	LogFormat      string
	SeedDelay      time.Duration // simulated fetch latency for the demo dataset
}

// Load reads configuration from the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ServerPort:     getenv("SERVER_PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
	}
	if d, err := time.ParseDuration(os.Getenv("SEED_DELAY")); err == nil {
		cfg.SeedDelay = d
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
