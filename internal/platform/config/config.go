// Package config loads process configuration from the environment, with
// optional .env overrides for local development.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"5000"`

	// Primary backend. Empty means the backend is unconfigured and the
	// selector moves straight to the secondary store.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Secondary backend.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"eventhub-dev-secret-2024"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`

	PaymentDelay       time.Duration `envconfig:"PAYMENT_DELAY" default:"1s"`
	PaymentSuccessRate float64       `envconfig:"PAYMENT_SUCCESS_RATE" default:"0.95"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
