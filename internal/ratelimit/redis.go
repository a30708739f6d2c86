package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "ratelimit:contact:"

// RedisStore shares windows between instances through redis. The key's TTL
// is the window: it is set on the first hit and never extended.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    Clock
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		now:    time.Now,
	}
}

// NewRedisStoreFromURL parses a redis:// URL and pings the server.
func NewRedisStoreFromURL(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client), nil
}

// Hit implements Store.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (Window, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Window{}, fmt.Errorf("incr %s: %w", k, err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return Window{}, fmt.Errorf("pexpire %s: %w", k, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return Window{}, fmt.Errorf("pttl %s: %w", k, err)
	}
	if ttl < 0 {
		// The expiry was lost (e.g. a crash between INCR and PEXPIRE); restart it.
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return Window{}, fmt.Errorf("pexpire %s: %w", k, err)
		}
		ttl = window
	}

	now := s.now()
	resetAt := now.Add(ttl)
	return Window{
		Count:   int(count),
		Start:   resetAt.Add(-window),
		ResetAt: resetAt,
	}, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
