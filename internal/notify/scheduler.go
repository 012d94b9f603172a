// Package notify schedules the delayed deletion of transient bot messages:
// rejection notices, welcome messages and command confirmations all disappear
// after a short delay so the topic stays readable.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// deleteTimeout bounds a single delete call once its timer fires.
const deleteTimeout = 10 * time.Second

// Deleter deletes a message on the chat platform.
type Deleter interface {
	Delete(ctx context.Context, chatID int64, messageID int) error
}

// Scheduler fires message deletions after a delay. Deletions are
// fire-and-forget: a failure is logged and never retried, and a pending
// timer never blocks the handler that scheduled it.
type Scheduler struct {
	deleter Deleter

	// wg tracks in-flight deletions so tests can wait for them.
	wg sync.WaitGroup
}

// NewScheduler creates a Scheduler deleting through the given Deleter.
func NewScheduler(deleter Deleter) *Scheduler {
	return &Scheduler{deleter: deleter}
}

// ScheduleDeletion arranges for the message to be deleted after delay.
// It returns immediately.
func (s *Scheduler) ScheduleDeletion(chatID int64, messageID int, delay time.Duration) {
	s.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()

		if err := s.deleter.Delete(ctx, chatID, messageID); err != nil {
			log.Printf("[notify] delete chat=%d message=%d: %v", chatID, messageID, err)
		}
	})
}

// Wait blocks until all scheduled deletions have run. Only used in tests and
// during shutdown; new deletions scheduled while waiting are included.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
