package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, ".mafios", cfg.SaveDir)
	assert.Equal(t, "mafios-game-state", cfg.SaveKey)
	assert.Equal(t, "Boss", cfg.PlayerName)
	assert.Equal(t, 30*time.Second, cfg.FlushEvery)
	assert.Equal(t, time.Minute, cfg.IncomeEvery)
	assert.Equal(t, 2*time.Minute, cfg.GangMinDelay)
	assert.Equal(t, 5*time.Minute, cfg.GangMaxDelay)
	assert.Equal(t, 3*time.Minute, cfg.EventCheckEvery)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("MAFIOS_STORAGE", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("MAFIOS_INCOME_EVERY", "5s")
	t.Setenv("MAFIOS_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.IncomeEvery)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("MAFIOS_FLUSH_EVERY", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:         StorageMemory,
			SaveKey:         "k",
			FlushEvery:      time.Second,
			IncomeEvery:     time.Second,
			GangMinDelay:    time.Second,
			GangMaxDelay:    2 * time.Second,
			EventCheckEvery: time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage = "s3" }, wantErr: `unknown storage backend "s3"`},
		{name: "file without dir", mutate: func(c *Config) { c.Storage = StorageFile }, wantErr: "MAFIOS_SAVE_DIR"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage = StorageSQLite }, wantErr: "MAFIOS_SQLITE_PATH"},
		{name: "redis without url", mutate: func(c *Config) { c.Storage = StorageRedis }, wantErr: "REDIS_URL"},
		{name: "empty key", mutate: func(c *Config) { c.SaveKey = "" }, wantErr: "MAFIOS_SAVE_KEY"},
		{name: "zero interval", mutate: func(c *Config) { c.IncomeEvery = 0 }, wantErr: "MAFIOS_INCOME_EVERY must be positive"},
		{name: "min over max", mutate: func(c *Config) { c.GangMinDelay = time.Minute }, wantErr: "exceeds MAFIOS_GANG_MAX_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
