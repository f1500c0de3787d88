package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend kinds.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	RawLogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	Storage    string `env:"MAFIOS_STORAGE" envDefault:"file"`
	SaveDir    string `env:"MAFIOS_SAVE_DIR" envDefault:".mafios"`
	SQLitePath string `env:"MAFIOS_SQLITE_PATH" envDefault:".mafios/mafios.db"`
	RedisURL   string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SaveKey    string `env:"MAFIOS_SAVE_KEY" envDefault:"mafios-game-state"`
	PlayerName string `env:"MAFIOS_PLAYER_NAME" envDefault:"Boss"`

	FlushEvery      time.Duration `env:"MAFIOS_FLUSH_EVERY" envDefault:"30s"`
	IncomeEvery     time.Duration `env:"MAFIOS_INCOME_EVERY" envDefault:"60s"`
	GangMinDelay    time.Duration `env:"MAFIOS_GANG_MIN_DELAY" envDefault:"2m"`
	GangMaxDelay    time.Duration `env:"MAFIOS_GANG_MAX_DELAY" envDefault:"5m"`
	EventCheckEvery time.Duration `env:"MAFIOS_EVENT_CHECK_EVERY" envDefault:"3m"`

	// Seed fixes the RNG. Zero seeds from crypto/rand.
	Seed int64 `env:"MAFIOS_SEED" envDefault:"0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.RawLogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageFile:
		if c.SaveDir == "" {
			errs = append(errs, errors.New("MAFIOS_SAVE_DIR is required for file storage"))
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("MAFIOS_SQLITE_PATH is required for sqlite storage"))
		}
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for redis storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage))
	}
	if c.SaveKey == "" {
		errs = append(errs, errors.New("MAFIOS_SAVE_KEY must not be empty"))
	}

	for name, d := range map[string]time.Duration{
		"MAFIOS_FLUSH_EVERY":       c.FlushEvery,
		"MAFIOS_INCOME_EVERY":      c.IncomeEvery,
		"MAFIOS_GANG_MIN_DELAY":    c.GangMinDelay,
		"MAFIOS_GANG_MAX_DELAY":    c.GangMaxDelay,
		"MAFIOS_EVENT_CHECK_EVERY": c.EventCheckEvery,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.GangMinDelay > c.GangMaxDelay {
		errs = append(errs, fmt.Errorf("MAFIOS_GANG_MIN_DELAY (%s) exceeds MAFIOS_GANG_MAX_DELAY (%s)", c.GangMinDelay, c.GangMaxDelay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
