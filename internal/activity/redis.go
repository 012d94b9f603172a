package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CountPrefix is the Redis key prefix for per-user message counters.
	CountPrefix = "activity:count:"

	// AcceptedPrefix is the Redis key prefix for per-user last-accepted
	// timestamps (unix seconds).
	AcceptedPrefix = "activity:accepted:"
)

// RedisStore is the Redis-backed Store implementation, using the same
// INCR-based counter layout as the rate limiter it replaced. Counters have
// no TTL so the semantics match MemoryStore exactly; last-accepted keys
// expire once they can no longer influence a cooldown decision.
type RedisStore struct {
	client *redis.Client

	// acceptedTTL bounds how long last-accepted keys live. It must be at
	// least the cooldown window; twice the window leaves headroom for
	// config changes at runtime.
	acceptedTTL time.Duration
}

// NewRedisStore creates a RedisStore on the given client. window is the
// cooldown window the policy will use; it sizes the TTL on timestamp keys.
func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{client: client, acceptedTTL: 2 * window}
}

func countKey(userID int64) string {
	return CountPrefix + strconv.FormatInt(userID, 10)
}

func acceptedKey(userID int64) string {
	return AcceptedPrefix + strconv.FormatInt(userID, 10)
}

// Record increments the user's message counter and returns the new count.
func (s *RedisStore) Record(ctx context.Context, userID int64) (int, error) {
	count, err := s.client.Incr(ctx, countKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("activity: record incr: %w", err)
	}
	return int(count), nil
}

// Penalize decrements the user's counter by one, floored at zero. The floor
// is restored with a follow-up SET when a concurrent decrement drives the
// counter negative; the brief negative value is never read by policy because
// negative counts cannot exceed the burst threshold.
func (s *RedisStore) Penalize(ctx context.Context, userID int64) error {
	key := countKey(userID)
	count, err := s.client.Decr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("activity: penalize decr: %w", err)
	}
	if count < 0 {
		if err := s.client.Set(ctx, key, 0, 0).Err(); err != nil {
			return fmt.Errorf("activity: penalize clamp: %w", err)
		}
	}
	return nil
}

// CheckCooldown reports whether the user may post now.
func (s *RedisStore) CheckCooldown(ctx context.Context, userID int64, now time.Time, maxBurst int, window time.Duration) (bool, time.Duration, error) {
	count, err := s.client.Get(ctx, countKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return true, 0, fmt.Errorf("activity: cooldown get count: %w", err)
	}
	if count <= maxBurst {
		return true, 0, nil
	}

	acceptedUnix, err := s.client.Get(ctx, acceptedKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return true, 0, fmt.Errorf("activity: cooldown get accepted: %w", err)
	}

	elapsed := now.Sub(time.Unix(acceptedUnix, 0))
	if elapsed >= window {
		return true, 0, nil
	}
	return false, window - elapsed, nil
}

// MarkAccepted records now as the user's last accepted message time.
func (s *RedisStore) MarkAccepted(ctx context.Context, userID int64, now time.Time) error {
	err := s.client.Set(ctx, acceptedKey(userID), now.Unix(), s.acceptedTTL).Err()
	if err != nil {
		return fmt.Errorf("activity: mark accepted: %w", err)
	}
	return nil
}
