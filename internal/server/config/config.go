package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's environment-driven settings.
type Config struct {
	Addr      string        `env:"BEWELL_ADDR" envDefault:":5001"`
	DBPath    string        `env:"BEWELL_DB_PATH" envDefault:"bewell.db"`
	JWTSecret string        `env:"BEWELL_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"BEWELL_TOKEN_TTL" envDefault:"720h"` // 30 days
	LogLevel  string        `env:"BEWELL_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
