package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a wizard or chat session id is unknown
// or has expired.
var ErrSessionNotFound = errors.New("session not found")

const sessionTTL = 24 * time.Hour

// sessionStore holds sessions as opaque JSON blobs under a keyed TTL. It is
// the slice of Redis the wizard and chat services use.
type sessionStore interface {
	get(ctx context.Context, key string) ([]byte, error)
	set(ctx context.Context, key string, data []byte) error
	del(ctx context.Context, key string) error
	// acquire takes key as a lease for ttl. It reports false when the key
	// is already held.
	acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// redisSessions stores sessions in Redis with the shared TTL.
type redisSessions struct {
	client *redis.Client
}

func (r redisSessions) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}
	return data, nil
}

func (r redisSessions) set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

func (r redisSessions) del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

func (r redisSessions) acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	held, err := r.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to take session lease in Redis: %w", err)
	}
	return held, nil
}
