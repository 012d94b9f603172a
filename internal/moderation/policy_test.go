package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/resaleguard/resale-bot/internal/activity"
)

func testPolicy() *Policy {
	return NewPolicy(Config{
		RequiredHashtags: []string{"#продам", "#куплю"},
		SaleHashtag:      "#продам",
		MinPrice:         3000,
		MaxBurst:         3,
		CooldownWindow:   time.Hour,
	}, activity.NewMemoryStore())
}

func TestEvaluate_ContentChecks(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		outcome Outcome
		price   int
	}{
		{"valid sale offer", "#продам велосипед 4500 грн", OutcomeAllow, 0},
		{"valid buy request", "#куплю ноутбук", OutcomeAllow, 0},
		{"missing hashtag", "продам велосипед 4500", OutcomeMissingHashtag, 0},
		{"sale under minimum", "#продам зарядку 500 грн", OutcomePriceTooLow, 500},
		{"sale no price", "#продам зарядку", OutcomePriceTooLow, 0},
		{"sale at minimum", "#продам телефон 3000грн", OutcomeAllow, 0},
		{"sale shorthand price", "#продам ноутбук 15k", OutcomeAllow, 0},
		{"buy request low number ok", "#куплю до 500 грн", OutcomeAllow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPolicy() // fresh tracker per case
			v := p.Evaluate(context.Background(), Message{UserID: 1, Text: tt.text, Now: base})
			if v.Outcome != tt.outcome {
				t.Errorf("Evaluate(%q).Outcome = %q, want %q", tt.text, v.Outcome, tt.outcome)
			}
			if v.Outcome == OutcomePriceTooLow && v.Price != tt.price {
				t.Errorf("Evaluate(%q).Price = %d, want %d", tt.text, v.Price, tt.price)
			}
		})
	}
}

func TestEvaluate_CooldownAfterBurst(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Three accepted messages within the window pass.
	for i := 0; i < 3; i++ {
		v := p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю щось", Now: base.Add(time.Duration(i) * time.Minute)})
		if !v.Allowed() {
			t.Fatalf("message %d: outcome %q, want allow", i+1, v.Outcome)
		}
	}

	// The fourth message inside the window is rejected with a retry hint.
	v := p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю ще щось", Now: base.Add(3 * time.Minute)})
	if v.Outcome != OutcomeCooldown {
		t.Fatalf("message 4: outcome %q, want cooldown", v.Outcome)
	}
	if v.RetryAfter <= 0 || v.RetryAfter > time.Hour {
		t.Errorf("RetryAfter = %v, want within (0, 1h]", v.RetryAfter)
	}

	// After the window elapses the user may post again.
	v = p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю знову", Now: base.Add(2 * time.Minute).Add(time.Hour)})
	if !v.Allowed() {
		t.Errorf("post-window message: outcome %q, want allow", v.Outcome)
	}
}

// A cooldown rejection keeps its counted attempt, so the user stays blocked
// for further messages inside the window. Inherited behavior.
func TestEvaluate_CooldownRejectionStaysCounted(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю щось", Now: base})
	}
	for i := 0; i < 3; i++ {
		v := p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю щось", Now: base.Add(time.Duration(i+1) * time.Minute)})
		if v.Outcome != OutcomeCooldown {
			t.Fatalf("in-window message %d: outcome %q, want cooldown", i+1, v.Outcome)
		}
	}
}

// The cooldown clock resets before the content checks run, so a message that
// passes the cooldown but is then rejected for content still counts as recent
// activity. Inherited behavior.
func TestEvaluate_ContentRejectResetsCooldownClock(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Fill the burst: three accepted messages at t0.
	for i := 0; i < 3; i++ {
		v := p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю щось", Now: base})
		if !v.Allowed() {
			t.Fatalf("message %d: outcome %q, want allow", i+1, v.Outcome)
		}
	}

	// Outside the window this message passes the cooldown check and resets
	// the clock, then gets rejected for content and rolled back.
	v := p.Evaluate(ctx, Message{UserID: 7, Text: "без тегу", Now: base.Add(70 * time.Minute)})
	if v.Outcome != OutcomeMissingHashtag {
		t.Fatalf("content-rejected message: outcome %q, want missing_hashtag", v.Outcome)
	}

	// A valid message shortly after is blocked: the rejected message moved
	// the last-accepted time forward even though its count was rolled back.
	v = p.Evaluate(ctx, Message{UserID: 7, Text: "#куплю щось", Now: base.Add(80 * time.Minute)})
	if v.Outcome != OutcomeCooldown {
		t.Fatalf("follow-up message: outcome %q, want cooldown", v.Outcome)
	}
}

// Content rejections roll the counter back, so rejected messages alone never
// push a user over the burst threshold.
func TestEvaluate_RejectedMessagesDoNotCountTowardBurst(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		v := p.Evaluate(ctx, Message{UserID: 9, Text: "без тегу", Now: base.Add(time.Duration(i) * time.Minute)})
		if v.Outcome != OutcomeMissingHashtag {
			t.Fatalf("reject %d: outcome %q, want missing_hashtag", i+1, v.Outcome)
		}
	}

	v := p.Evaluate(ctx, Message{UserID: 9, Text: "#куплю нарешті", Now: base.Add(20 * time.Minute)})
	if !v.Allowed() {
		t.Errorf("valid message after rejects: outcome %q, want allow", v.Outcome)
	}
}

func TestEvaluate_UsersTrackedIndependently(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		p.Evaluate(ctx, Message{UserID: 1, Text: "#куплю щось", Now: base})
	}

	// A different user is unaffected by user 1's burst.
	v := p.Evaluate(ctx, Message{UserID: 2, Text: "#куплю щось", Now: base})
	if !v.Allowed() {
		t.Errorf("second user's first message: outcome %q, want allow", v.Outcome)
	}
}
