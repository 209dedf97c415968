package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings taken from TYPEUBER_* variables. Unset variables
// leave their field nil.
type EnvConfig struct {
	Theme    *string `env:"TYPEUBER_THEME"`
	Addr     *string `env:"TYPEUBER_ADDR"`
	LogLevel *string `env:"TYPEUBER_LOG_LEVEL"`
	LogFile  *string `env:"TYPEUBER_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the TYPEUBER_* variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := ParseEnv(&cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// WithEnv returns c with every variable set in e taking precedence.
func (c FileConfig) WithEnv(e EnvConfig) FileConfig {
	override(&c.Practice.Theme, e.Theme)
	override(&c.Server.Addr, e.Addr)
	override(&c.Log.Level, e.LogLevel)
	override(&c.Log.File, e.LogFile)
	return c
}

func override(target **string, value *string) {
	if value != nil {
		*target = value
	}
}
