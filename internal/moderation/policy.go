package moderation

import (
	"context"
	"log"
	"time"

	"github.com/resaleguard/resale-bot/internal/activity"
)

// Outcome is the kind of verdict the policy reached for a message.
type Outcome string

const (
	// OutcomeAllow means the message passed every check.
	OutcomeAllow Outcome = "allow"

	// OutcomeMissingHashtag means the message carries none of the required
	// hashtags.
	OutcomeMissingHashtag Outcome = "missing_hashtag"

	// OutcomePriceTooLow means a sale offer listed a price below the
	// configured minimum.
	OutcomePriceTooLow Outcome = "price_too_low"

	// OutcomeCooldown means the user exceeded the burst threshold and is
	// still inside the cooldown window.
	OutcomeCooldown Outcome = "cooldown"
)

// Verdict is the policy's decision for one message. Price is set for
// OutcomePriceTooLow, RetryAfter for OutcomeCooldown.
type Verdict struct {
	Outcome    Outcome
	Price      int
	RetryAfter time.Duration
}

// Allowed reports whether the message may stay.
func (v Verdict) Allowed() bool {
	return v.Outcome == OutcomeAllow
}

// Message is the slice of an inbound chat message the policy needs.
type Message struct {
	UserID int64
	Text   string
	Now    time.Time
}

// Config holds the policy thresholds.
type Config struct {
	RequiredHashtags []string      // at least one must be present
	SaleHashtag      string        // messages with this tag get the price check
	MinPrice         int           // minimum listed price for sale offers
	MaxBurst         int           // accepted messages before cooldown kicks in
	CooldownWindow   time.Duration // how long a bursting user is blocked
}

// Policy is the moderation decision engine for the resale topic. It owns no
// platform side effects: callers delete messages and send notifications based
// on the returned verdict.
type Policy struct {
	cfg     Config
	tracker activity.Store
}

// NewPolicy creates a Policy over the given activity tracker.
func NewPolicy(cfg Config, tracker activity.Store) *Policy {
	return &Policy{cfg: cfg, tracker: tracker}
}

// Evaluate runs the decision order for one in-topic message from a
// non-admin user. First match wins:
//
//  1. count the message
//  2. cooldown active        -> Cooldown (counter stays incremented)
//  3. mark accepted
//  4. no required hashtag    -> MissingHashtag, counter rolled back
//  5. sale offer under price -> PriceTooLow, counter rolled back
//  6. Allow
//
// A cooldown rejection deliberately keeps the counted attempt while content
// rejections roll it back: this asymmetry is inherited behavior the group
// depends on (repeat offenders inside the window stay throttled).
//
// Tracker errors (possible with the Redis store) fail open: the check that
// errored is skipped and evaluation continues, so a Redis outage never
// blocks the topic.
func (p *Policy) Evaluate(ctx context.Context, msg Message) Verdict {
	if _, err := p.tracker.Record(ctx, msg.UserID); err != nil {
		log.Printf("[policy] record user=%d: %v (failing open)", msg.UserID, err)
	}

	allowed, retryAfter, err := p.tracker.CheckCooldown(ctx, msg.UserID, msg.Now, p.cfg.MaxBurst, p.cfg.CooldownWindow)
	if err != nil {
		log.Printf("[policy] cooldown check user=%d: %v (failing open)", msg.UserID, err)
	}
	if !allowed {
		return Verdict{Outcome: OutcomeCooldown, RetryAfter: retryAfter}
	}

	// The cooldown clock resets here, before the content checks, so even a
	// message about to be rejected for content counts as recent activity.
	if err := p.tracker.MarkAccepted(ctx, msg.UserID, msg.Now); err != nil {
		log.Printf("[policy] mark accepted user=%d: %v", msg.UserID, err)
	}

	if !HasRequiredHashtag(msg.Text, p.cfg.RequiredHashtags) {
		p.penalize(ctx, msg.UserID)
		return Verdict{Outcome: OutcomeMissingHashtag}
	}

	if ContainsHashtag(msg.Text, p.cfg.SaleHashtag) {
		if price := ExtractPrice(msg.Text); price < p.cfg.MinPrice {
			p.penalize(ctx, msg.UserID)
			return Verdict{Outcome: OutcomePriceTooLow, Price: price}
		}
	}

	return Verdict{Outcome: OutcomeAllow}
}

func (p *Policy) penalize(ctx context.Context, userID int64) {
	if err := p.tracker.Penalize(ctx, userID); err != nil {
		log.Printf("[policy] penalize user=%d: %v", userID, err)
	}
}
