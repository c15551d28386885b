// Package library stores named actions in a pluggable backend.
package library

import (
	"log/slog"

	internalclock "github.com/SmitUplenchwar2687/Toca/internal/clock"
	internalstorage "github.com/SmitUplenchwar2687/Toca/internal/storage"
)

var (
	ErrNotFound    = internalstorage.ErrNotFound
	ErrInvalidName = internalstorage.ErrInvalidName
)

const (
	BackendMemory = internalstorage.BackendMemory
	BackendFile   = internalstorage.BackendFile
	BackendRedis  = internalstorage.BackendRedis
)

type (
	Library     = internalstorage.Library
	Entry       = internalstorage.Entry
	Storage     = internalstorage.Storage
	Config      = internalstorage.Config
	RedisConfig = internalstorage.RedisConfig
)

// Open creates the storage backend named by cfg.Backend.
func Open(cfg Config, logger *slog.Logger) (Storage, error) {
	return internalstorage.Open(cfg, logger)
}

// New wraps store in a library using the real clock.
func New(store Storage) *Library {
	return internalstorage.NewLibrary(store, internalclock.NewRealClock())
}
