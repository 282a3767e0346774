package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/habitgrid/habitkit/gateway"
)

// config is assembled from environment variables, with a .env file loaded
// first when present. Gateway settings carry their own env tags.
type config struct {
	Gateway gateway.Config

	// StoreBackend selects the session state backend: file, sqlite, or redis.
	StoreBackend string `env:"HABITCTL_STORE" envDefault:"file"`
	// StatePath overrides the default state location for the file and sqlite
	// backends. Defaults to the habitctl directory under the user config dir.
	StatePath string `env:"HABITCTL_STATE_PATH"`

	RedisURL    string `env:"HABITCTL_REDIS_URL"`
	RedisPrefix string `env:"HABITCTL_REDIS_PREFIX" envDefault:"habitctl"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (config, error) {
	// A missing .env file is fine; explicit environment always wins.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.StoreBackend {
	case "file", "sqlite", "redis":
	default:
		return config{}, fmt.Errorf("unknown HABITCTL_STORE %q: want file, sqlite, or redis", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "redis" && cfg.RedisURL == "" {
		return config{}, fmt.Errorf("HABITCTL_REDIS_URL is required when HABITCTL_STORE=redis")
	}

	return cfg, nil
}

// statePath resolves the state file location for the given extension,
// defaulting to ~/.config/habitctl (or the platform equivalent).
func (c config) statePath(filename string) (string, error) {
	if c.StatePath != "" {
		return c.StatePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "habitctl", filename), nil
}
