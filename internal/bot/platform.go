// Package bot routes inbound chat events (messages, joins, button clicks,
// admin commands) to the moderation core and turns verdicts into platform
// actions: deleting messages, sending notifications and restricting members.
package bot

import (
	"context"
	"time"
)

// Role is a user's membership role in the group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Privileged reports whether the role is exempt from moderation.
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Platform is the chat-platform boundary the handlers program against.
// The production implementation talks to the Telegram Bot API; tests use a
// fake. Every call is one attempt: callers log failures and move on.
type Platform interface {
	// RoleOf looks up the user's membership role in the chat.
	RoleOf(ctx context.Context, chatID, userID int64) (Role, error)

	// Send posts text into the given chat and topic (topicID 0 = general)
	// and returns the new message's ID. When withRulesButton is set the
	// message carries the rules acknowledgement keyboard.
	Send(ctx context.Context, chatID int64, topicID int, text string, withRulesButton bool) (int, error)

	// Delete removes a message. Also satisfies notify.Deleter.
	Delete(ctx context.Context, chatID int64, messageID int) error

	// Restrict toggles the user's permission to post in the chat.
	Restrict(ctx context.Context, chatID, userID int64, canPost bool) error
}

// Message is an inbound text message or command.
type Message struct {
	ChatID    int64
	MessageID int
	TopicID   int // discussion-topic (thread) ID, 0 when outside any topic
	UserID    int64
	Username  string // without the @ prefix, may be empty
	Text      string
	Time      time.Time
}

// JoinedMember is one user from a new-member join event.
type JoinedMember struct {
	UserID   int64
	Username string
	IsBot    bool
}
