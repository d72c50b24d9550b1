package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries process configuration resolved from the environment.
type Config struct {
	DatabaseURL string
	Port        int
}

// Load reads configuration from the environment. DATABASE_URL is required;
// PORT falls back to 8000 when unset.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT value %q", portStr)
	}

	return &Config{
		DatabaseURL: databaseURL,
		Port:        port,
	}, nil
}
