package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment. Command-line flags override it.
type Config struct {
	// Where the music area feed lives. Required by `fetch` unless -cached.
	FeedURL string `env:"MUSICAREAS_FEED_URL"`

	DBPath       string        `env:"MUSICAREAS_DB" envDefault:"musicareas.db"`
	CacheDir     string        `env:"MUSICAREAS_CACHE_DIR" envDefault:".cache"`
	Addr         string        `env:"MUSICAREAS_ADDR" envDefault:":9999"`
	RequestDelay time.Duration `env:"MUSICAREAS_REQUEST_DELAY" envDefault:"1s"`
}

// Load loads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
