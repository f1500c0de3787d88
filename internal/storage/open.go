package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/mafios/internal/config"
	"github.com/jwebster45206/mafios/pkg/storage"
)

const (
	redisConnectRetries = 5
	redisConnectDelay   = time.Second
)

// Open builds the backend named by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return NewFileBackend(cfg.SaveDir, logger)
	case config.StorageSQLite:
		return OpenSQLite(cfg.SQLitePath, logger)
	case config.StorageRedis:
		r, err := NewRedisBackend(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		if err := r.WaitForConnection(ctx, redisConnectRetries, redisConnectDelay); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return r, nil
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; progress will not survive a restart")
		return storage.NewMockBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
