// Package activity tracks per-user posting activity in the moderated topic:
// how many messages a user has sent and when their last accepted message was.
// The moderation policy uses both to enforce the burst/cooldown rule.
//
// Two implementations are provided: an in-memory store (the default, state
// lives for the process lifetime) and a Redis-backed store for deployments
// that want counters to survive restarts.
package activity

import (
	"context"
	"time"
)

// Store is the contract the moderation policy programs against.
//
// Counters only ever reflect messages that passed policy: a message that is
// rejected after being counted is rolled back with Penalize. All methods are
// safe for concurrent use.
type Store interface {
	// Record increments the user's message counter, creating the record on
	// first use, and returns the new count.
	Record(ctx context.Context, userID int64) (int, error)

	// Penalize decrements the user's counter by one, floored at zero.
	Penalize(ctx context.Context, userID int64) error

	// CheckCooldown reports whether the user may post now. The user is
	// blocked only when their counter exceeds maxBurst AND an accepted
	// message exists within the cooldown window. When blocked, retryAfter
	// is how long until the window reopens.
	CheckCooldown(ctx context.Context, userID int64, now time.Time, maxBurst int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)

	// MarkAccepted records now as the user's last accepted message time.
	MarkAccepted(ctx context.Context, userID int64, now time.Time) error
}
