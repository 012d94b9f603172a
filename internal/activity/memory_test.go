package activity

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_RecordIncrements(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := s.Record(ctx, 1)
		if err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		if got != want {
			t.Fatalf("Record() = %d, want %d", got, want)
		}
	}

	// A different user gets a fresh counter.
	got, err := s.Record(ctx, 2)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if got != 1 {
		t.Errorf("Record(new user) = %d, want 1", got)
	}
}

func TestMemoryStore_PenalizeFloorsAtZero(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Penalize with no prior record must not go negative.
	if err := s.Penalize(ctx, 1); err != nil {
		t.Fatalf("Penalize() error: %v", err)
	}
	count, err := s.Record(ctx, 1)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count after penalize-then-record = %d, want 1", count)
	}

	s.Record(ctx, 1)
	s.Penalize(ctx, 1)
	count, _ = s.Record(ctx, 1)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestMemoryStore_CheckCooldown(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := time.Hour

	tests := []struct {
		name       string
		records    int
		accepted   time.Time
		now        time.Time
		allowed    bool
		retryAfter time.Duration
	}{
		{"under threshold", 3, base, base.Add(time.Minute), true, 0},
		{"over threshold inside window", 4, base, base.Add(10 * time.Minute), false, 50 * time.Minute},
		{"over threshold after window", 4, base, base.Add(window), true, 0},
		{"over threshold no accepted yet", 4, time.Time{}, base, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore()
			for i := 0; i < tt.records; i++ {
				s.Record(ctx, 1)
			}
			if !tt.accepted.IsZero() {
				s.MarkAccepted(ctx, 1, tt.accepted)
			}

			allowed, retryAfter, err := s.CheckCooldown(ctx, 1, tt.now, 3, window)
			if err != nil {
				t.Fatalf("CheckCooldown() error: %v", err)
			}
			if allowed != tt.allowed {
				t.Errorf("allowed = %v, want %v", allowed, tt.allowed)
			}
			if retryAfter != tt.retryAfter {
				t.Errorf("retryAfter = %v, want %v", retryAfter, tt.retryAfter)
			}
		})
	}
}

func TestMemoryStore_ConcurrentRecord(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Record(ctx, 1)
		}()
	}
	wg.Wait()

	count, err := s.Record(ctx, 1)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if count != goroutines+1 {
		t.Errorf("count = %d, want %d", count, goroutines+1)
	}
}
