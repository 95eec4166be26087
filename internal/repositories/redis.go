package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/cowork/internal/shared"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements [TokenStore] on a Redis server, namespacing keys with a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a client for addr. No connection is made until first use.
func NewRedisStore(addr, password string, db int, prefix string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Ping verifies the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %w", shared.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: redis get %s: %w", shared.ErrStoreUnavailable, key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %w", shared.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: redis del %s: %w", shared.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
