// Package config loads the exporter's environment configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-supplied setting. The token is the only
// required value; its absence fails before any network call is made.
type Config struct {
	Token    string `env:"SLACK_TOKEN,required,notEmpty"`
	Cookie   string `env:"SLACK_COOKIE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("environment configuration is invalid or missing: %w", err)
	}
	return cfg, nil
}
