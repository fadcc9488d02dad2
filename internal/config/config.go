// Package config loads the runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the backend. Settings that
// only single middlewares care about (CORS_ALLOW_ORIGINS, ENABLE_PPROF,
// GIN_MODE, LOG_FORMAT) are read where they are used.
type Config struct {
	// DatabaseURL is the path to the SQLite database file.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"data/gorm.db"`

	// APIURL is the URL the API is reachable under, used to build
	// absolute links in responses.
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// Port the HTTP server listens on.
	Port uint `env:"PORT" envDefault:"8080"`

	// JWTSecret signs session tokens. Generate one with e.g.
	// "openssl rand -hex 32".
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// TokenTTL is the lifetime of a session token.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// AMQPURL enables publishing balance messages when set.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"stash-tracker"`

	// IntegrityInterval is the time between two balance audit runs.
	// Zero disables the auditor.
	IntegrityInterval time.Duration `env:"INTEGRITY_INTERVAL" envDefault:"1h"`
}

// Load reads a .env file if one exists and parses the environment.
func Load() (Config, error) {
	// A missing .env file is fine, the environment can be set directly
	_ = godotenv.Load()

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return config, nil
}
