package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AdminTokenKey is the Redis key holding the persisted admin token.
const AdminTokenKey = "portfolio:admin_token"

// RedisTokenStore keeps the admin token in Redis so it survives restarts.
type RedisTokenStore struct {
	client *redis.Client
	key    string
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, key: AdminTokenKey}
}

// Get returns "" when no token is stored.
func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get admin token: %w", err)
	}
	return token, nil
}

// Set stores token; a ttl <= 0 keeps it until deleted.
func (s *RedisTokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set admin token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete admin token: %w", err)
	}
	return nil
}
