package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/cowork/internal/shared"
)

// TokenStore is a durable string key-value store. Implementations are safe for concurrent use.
//
// Get reports absence with ok == false and a nil error.
type TokenStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var (
	_ TokenStore = (*SQLiteStore)(nil)
	_ TokenStore = (*RedisStore)(nil)
	_ TokenStore = (*MemoryStore)(nil)
)

// NewTokenStore opens the backend named by cfg.Driver ("sqlite" when empty).
//
// The SQLite backend runs pending migrations before returning; the Redis backend is pinged.
func NewTokenStore(ctx context.Context, cfg shared.StoreConfig) (TokenStore, error) {
	switch cfg.Driver {
	case "", "sqlite":
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
		}
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

		if _, err := shared.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
		}
		return NewSQLiteStore(db), nil
	case "redis":
		store := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", shared.ErrInvalidConfig, cfg.Driver)
	}
}
