// Package storage keeps named actions in a key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when a library entry does not exist.
var ErrNotFound = errors.New("action not found")

// Storage is a flat byte-value store. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Get returns the value for key, or nil, nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	// Dir is the directory used by the file backend.
	Dir   string
	Redis RedisConfig
}

// Open creates the backend named by cfg.Backend.
func Open(cfg Config, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendFile, "":
		return NewFileStorage(cfg.Dir)
	case BackendRedis:
		s, err := NewRedisStorage(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to redis", "cluster", cfg.Redis.Cluster, "host", cfg.Redis.Host, "port", cfg.Redis.Port)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s, %s, %s)",
			cfg.Backend, BackendMemory, BackendFile, BackendRedis)
	}
}
