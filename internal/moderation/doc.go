// Package moderation implements the content policy for the moderated resale
// topic. It extracts listed prices from free-form text, checks messages for
// the required hashtags, and combines both with per-user activity tracking
// into a single verdict per message.
package moderation
