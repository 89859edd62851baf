// Package kv provides the durable string key-value storage that survives a
// reload: the signed-in user snapshot and the theme preference.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhouzirui/bot-hub/backend/internal/config"
)

const (
	KeyCurrentUser  = "currentUser"
	KeyCurrentTheme = "currentTheme"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a last-writer-wins string map.
type Store interface {
	// Get reports whether key exists alongside its value.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.Redis)
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
