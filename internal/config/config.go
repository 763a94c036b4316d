package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backends the CACHE_BACKEND variable accepts.
const (
	BackendRedis = "redis"
	BackendBolt  = "bolt"
)

// Config carries process configuration. Every field has a default so the
// demo runs with zero setup against a local Redis.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8000"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort string `env:"REDIS_PORT" envDefault:"6379"`

	CacheBackend string `env:"CACHE_BACKEND" envDefault:"redis"`
	CacheDBPath  string `env:"CACHE_DB_PATH" envDefault:"users-cache.bbolt"`

	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS" envDefault:"120"`

	// LogPath redirects logs to a file; empty keeps stderr.
	LogPath string `env:"LOG_PATH"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CacheBackend != BackendRedis && cfg.CacheBackend != BackendBolt {
		return Config{}, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
	if cfg.CacheTTLSeconds <= 0 {
		return Config{}, fmt.Errorf("cache ttl must be positive, got %d", cfg.CacheTTLSeconds)
	}
	return cfg, nil
}

// TTL is the response cache time-to-live.
func (c Config) TTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
