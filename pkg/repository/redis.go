package repository

import (
	"context"
	"time"

	"github.com/drezzup/storefront/pkg/config"
	"github.com/go-redis/redis/v8"
)

// Sessions keeps admin session tokens with a sliding expiry. A session
// lives for the configured TTL past its most recent authorized request,
// matching the soft one-hour login window the dashboard enforces.
type Sessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessions(cfg *config.RedisConfig, ttl time.Duration) *Sessions {
	return &Sessions{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		ttl: ttl,
	}
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Sessions) Close() error {
	return s.client.Close()
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *Sessions) Put(ctx context.Context, token string) error {
	return s.client.Set(ctx, sessionKey(token), time.Now().Unix(), s.ttl).Err()
}

// Check reports whether a token names a live session and, when it does,
// re-arms its expiry.
func (s *Sessions) Check(ctx context.Context, token string) (bool, error) {
	ok, err := s.client.Expire(ctx, sessionKey(token), s.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Sessions) Drop(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
