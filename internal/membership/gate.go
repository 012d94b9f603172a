// Package membership gates new group members: everyone who joins is
// restricted from posting until they acknowledge the group rules via the
// inline button under the welcome message. Bot accounts are exempt.
package membership

import "sync"

// Gate tracks which users are currently restricted. It decides whether a
// restrict/unrestrict platform call is due; issuing the call is the caller's
// job so the lock is never held across I/O.
type Gate struct {
	mu         sync.Mutex
	restricted map[int64]bool
}

// NewGate creates an empty Gate.
func NewGate() *Gate {
	return &Gate{restricted: make(map[int64]bool)}
}

// OnJoin records a new member and reports whether the caller should restrict
// them. Bots are never restricted.
func (g *Gate) OnJoin(userID int64, isBot bool) bool {
	if isBot {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.restricted[userID] = true
	return true
}

// OnAcknowledge records that the user accepted the rules and reports whether
// the caller should lift their restriction. Acknowledging twice is harmless:
// the second call reports false.
func (g *Gate) OnAcknowledge(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.restricted[userID] {
		return false
	}
	delete(g.restricted, userID)
	return true
}

// IsRestricted reports whether the user is awaiting acknowledgement.
func (g *Gate) IsRestricted(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.restricted[userID]
}
