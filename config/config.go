// Package config loads jslok settings from the environment and from an
// optional .jslok.yaml project file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds environment-sourced settings: provider selection and
// credentials plus batching defaults. Project-level settings (languages,
// targets, formatting) live in .jslok.yaml.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Proxy     string
	BatchSize int
}

// Load reads .env (when present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Provider:  getEnv("JSLOK_PROVIDER", "google"),
		APIKey:    getEnv("JSLOK_API_KEY", ""),
		Model:     getEnv("JSLOK_MODEL", ""),
		BaseURL:   getEnv("JSLOK_BASE_URL", ""),
		Proxy:     getEnv("JSLOK_PROXY", ""),
		BatchSize: getEnvInt("JSLOK_BATCH_SIZE", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
