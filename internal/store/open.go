package store

import (
	"fmt"

	"civicpulse/internal/config"
)

// Open builds the KV backend selected by the configuration.
func Open(cfg *config.Config) (KV, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.DataDir)
	case config.BackendRedis:
		return NewRedis(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
