package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsing is returned when the environment cannot be parsed.
	ErrParsing = errors.New("failed to parse environment into config")

	// ErrInvalid is returned when a parsed value is out of range.
	ErrInvalid = errors.New("invalid config")
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds the service configuration.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	BaseURL         string        `env:"BASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	WordListURL     string `env:"WORDLIST_URL"`
	WordListFile    string `env:"WORDLIST_FILE"`
	WordListRetries uint64 `env:"WORDLIST_RETRIES" envDefault:"2"`

	Storage     string `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"classcode"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsing, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	}
	switch c.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: storage backend %q must be %q or %q", ErrInvalid, c.Storage, StorageMemory, StorageRedis)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log format %q must be json or text", ErrInvalid, c.LogFormat)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalid)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("%w: cleanup interval must be positive", ErrInvalid)
	}
	return nil
}
