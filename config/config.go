package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment.
type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":5000"`
	PostgresURL    string   `env:"POSTGRES_URL,required"`
	RedisURL       string   `env:"REDIS_URL"`
	JWTKey         string   `env:"JWT_KEY,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	Debug          bool     `env:"DEBUG" envDefault:"false"`

	// The bare "88" blocklist pattern produces false positives on ages,
	// scores and years, so it is opt-in. "1488" is always matched.
	FlagBareNaziCodes bool `env:"FLAG_BARE_NAZI_CODES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
