package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore backs the cache with a redis (or compatible) server.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Options configures the startup connectivity probe.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect probes the configured redis server once and returns a store
// backed by it. If the server is unreachable the in-process fallback is
// selected for the lifetime of the process; the choice is logged, never
// surfaced as an error.
func Connect(ctx context.Context, opts Options) Store {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, falling back to in-memory store", "addr", opts.Addr, "err", err)
		return NewMemoryStore()
	}
	slog.Info("using redis store", "addr", opts.Addr)
	return NewRedisStore(client)
}
