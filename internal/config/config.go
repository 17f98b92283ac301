package config

import (
	"errors"
	"fmt"
	"time"
)

// Config carries every process-wide setting. Populated by the command-line
// entrypoint; see cmd/server.
type Config struct {
	Bind        string
	Port        int
	DatabaseURL string
	JWTSecret   string
	JWTExpiry   time.Duration
	MaxGuesses  int
	MaxPlayers  int
}

func Default() Config {
	return Config{
		Bind:       "0.0.0.0",
		Port:       8080,
		JWTExpiry:  24 * time.Hour,
		MaxGuesses: 5,
		MaxPlayers: 8,
	}
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.MaxGuesses < 1 {
		return fmt.Errorf("max-guesses must be at least 1: %d", c.MaxGuesses)
	}
	if c.MaxPlayers < 1 {
		return fmt.Errorf("max-players must be at least 1: %d", c.MaxPlayers)
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("jwt-secret must be at least 32 characters")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
