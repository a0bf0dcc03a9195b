package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port             string
	DatabaseURL      string
	AmqpURL          string
	TypefullyAPIKey  string
	TypefullyBaseURL string
}

// Parse reads the environment once at startup. Everything downstream
// takes values from the returned struct, never from os.Getenv.
func Parse() Config {
	cfg := Config{
		Port:             getString("PORT", "8080"),
		DatabaseURL:      getString("DATABASE_URL", ""),
		AmqpURL:          getString("AMQP_URL", ""),
		TypefullyAPIKey:  getString("TYPEFULLY_API_KEY", ""),
		TypefullyBaseURL: getString("TYPEFULLY_BASE_URL", "https://api.typefully.com/v1"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getString("DB_USER", "postgres"),
			getString("DB_PASSWORD", "postgres"),
			getString("DB_HOST", "localhost"),
			getString("DB_PORT", "5432"),
			getString("DB_NAME", "marketing"),
		)
	}

	return cfg
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
