package gate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"siteforge/internal/util"
)

const unlockKeyPrefix = "siteforge:gate:unlock:"

// RedisUnlockStore keeps unlock tokens in Redis with TTL, so unlocked
// viewing sessions survive process restarts in multi-instance deployments.
type RedisUnlockStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisUnlockStore builds a Redis-backed unlock store.
func NewRedisUnlockStore(addr, password string, ttl time.Duration) *RedisUnlockStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisUnlockStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Unlock writes a token -> siteID mapping with TTL.
func (s *RedisUnlockStore) Unlock(siteID string) (string, error) {
	token := util.NewID()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, unlockKeyPrefix+token, siteID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// IsUnlocked resolves token and checks it belongs to siteID. Redis errors
// degrade to locked, which only re-prompts the viewer for the password.
func (s *RedisUnlockStore) IsUnlocked(siteID, token string) bool {
	if token == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, unlockKeyPrefix+token).Result()
	if err != nil {
		return false
	}
	return val == siteID
}
