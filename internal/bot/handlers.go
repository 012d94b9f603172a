package bot

import (
	"context"
	"log"
	"time"

	"github.com/resaleguard/resale-bot/internal/config"
	"github.com/resaleguard/resale-bot/internal/membership"
	"github.com/resaleguard/resale-bot/internal/metrics"
	"github.com/resaleguard/resale-bot/internal/moderation"
	"github.com/resaleguard/resale-bot/internal/notify"
	"github.com/resaleguard/resale-bot/internal/topic"
)

// Handlers holds the bot's event handlers and their collaborators. One
// handler invocation runs per inbound event; invocations for different users
// may run concurrently, so all shared state lives behind the collaborators'
// own locks and no lock is held across a Platform call.
type Handlers struct {
	cfg      config.Config
	platform Platform
	policy   *moderation.Policy
	gate     *membership.Gate
	topics   *topic.Registry
	sched    *notify.Scheduler
}

// NewHandlers wires the handlers to their collaborators.
func NewHandlers(cfg config.Config, platform Platform, policy *moderation.Policy, gate *membership.Gate, topics *topic.Registry, sched *notify.Scheduler) *Handlers {
	return &Handlers{
		cfg:      cfg,
		platform: platform,
		policy:   policy,
		gate:     gate,
		topics:   topics,
		sched:    sched,
	}
}

// HandleStart replies to the /start command.
func (h *Handlers) HandleStart(ctx context.Context, msg Message) {
	if _, err := h.platform.Send(ctx, msg.ChatID, msg.TopicID, startReply, false); err != nil {
		h.platformError("send", err)
	}
}

// HandleSetTopic processes the /resale_topic admin command. The command must
// be issued inside the topic to moderate; the topic the command was posted in
// becomes the moderated one. Both the command and the confirmation are
// deleted after a short delay.
func (h *Handlers) HandleSetTopic(ctx context.Context, msg Message) {
	if !h.roleOf(ctx, msg.ChatID, msg.UserID).Privileged() {
		h.notifyTransient(ctx, msg.ChatID, msg.TopicID, adminOnlyText(msg.Username))
		return
	}

	if msg.TopicID == 0 {
		h.notifyTransient(ctx, msg.ChatID, 0, topicUseInsideMsg)
		return
	}

	h.topics.Set(msg.TopicID)

	confirmationID, err := h.platform.Send(ctx, msg.ChatID, msg.TopicID, topicSetReply, false)
	if err != nil {
		h.platformError("send", err)
		h.notifyTransient(ctx, msg.ChatID, msg.TopicID, topicSetErrMsg)
		return
	}

	h.sched.ScheduleDeletion(msg.ChatID, confirmationID, h.cfg.CommandDeleteDelay)
	h.sched.ScheduleDeletion(msg.ChatID, msg.MessageID, h.cfg.CommandDeleteDelay)

	log.Printf("[bot] moderated topic set to %d by user=%d", msg.TopicID, msg.UserID)
}

// HandleNewMembers welcomes joining users: each non-bot member is restricted
// until they acknowledge the rules, and receives a transient welcome message
// carrying the acknowledgement button. The join service message is deleted.
func (h *Handlers) HandleNewMembers(ctx context.Context, chatID int64, serviceMessageID int, members []JoinedMember) {
	for _, m := range members {
		if !h.gate.OnJoin(m.UserID, m.IsBot) {
			continue
		}
		metrics.MemberJoinsTotal.Inc()

		if err := h.platform.Restrict(ctx, chatID, m.UserID, false); err != nil {
			h.platformError("restrict", err)
		}

		welcomeID, err := h.platform.Send(ctx, chatID, 0, welcomeText(m.Username), true)
		if err != nil {
			h.platformError("send", err)
			continue
		}
		h.sched.ScheduleDeletion(chatID, welcomeID, h.cfg.WelcomeDeleteDelay)

		log.Printf("[bot] new member welcomed: user=%d", m.UserID)
	}

	if err := h.platform.Delete(ctx, chatID, serviceMessageID); err != nil {
		h.platformError("delete", err)
	}
}

// HandleAcknowledge processes a rules-acknowledgement button click. It lifts
// the restriction and returns the text to answer the callback with, plus
// whether the keyboard should be removed from the welcome message.
//
// The platform call is issued even when the gate has no record of the user
// (e.g. after a restart), so a restricted member is never locked out.
func (h *Handlers) HandleAcknowledge(ctx context.Context, chatID, userID int64) (string, bool) {
	if err := h.platform.Restrict(ctx, chatID, userID, true); err != nil {
		h.platformError("restrict", err)
		return ackErrReply, false
	}

	lifted := h.gate.OnAcknowledge(userID)
	if lifted {
		metrics.AcknowledgementsTotal.Inc()
	}

	log.Printf("[bot] user=%d accepted the rules", userID)
	return ackReply, lifted
}

// HandleText moderates a text message. Messages outside the moderated topic,
// or sent before a topic is registered, pass untouched. Admin and owner
// messages are always allowed and never counted. Everything else goes
// through the policy; a rejected message is deleted and answered with a
// transient notification naming the reason.
func (h *Handlers) HandleText(ctx context.Context, msg Message) {
	topicID, ok := h.topics.Get()
	if !ok || msg.TopicID != topicID {
		return
	}

	if h.roleOf(ctx, msg.ChatID, msg.UserID).Privileged() {
		log.Printf("[bot] admin message allowed: user=%d", msg.UserID)
		return
	}

	start := time.Now()
	verdict := h.policy.Evaluate(ctx, moderation.Message{
		UserID: msg.UserID,
		Text:   msg.Text,
		Now:    msg.Time,
	})
	metrics.EvaluateLatency.Observe(time.Since(start).Seconds())
	metrics.VerdictsTotal.WithLabelValues(string(verdict.Outcome)).Inc()

	if verdict.Allowed() {
		return
	}

	log.Printf("[bot] message rejected: user=%d message=%d outcome=%s", msg.UserID, msg.MessageID, verdict.Outcome)

	if err := h.platform.Delete(ctx, msg.ChatID, msg.MessageID); err != nil {
		h.platformError("delete", err)
		return
	}

	var text string
	switch verdict.Outcome {
	case moderation.OutcomeMissingHashtag:
		text = missingHashtagText(msg.Username, h.cfg.RequiredHashtags)
	case moderation.OutcomePriceTooLow:
		text = priceTooLowText(msg.Username, h.cfg.MinPrice)
	case moderation.OutcomeCooldown:
		text = cooldownText(msg.Username, h.cfg.CooldownWindow)
	default:
		return
	}

	h.notifyTransient(ctx, msg.ChatID, topicID, text)
}

// roleOf looks the user's role up, treating lookup failures as "member" so a
// flaky role check falls toward stricter moderation.
func (h *Handlers) roleOf(ctx context.Context, chatID, userID int64) Role {
	role, err := h.platform.RoleOf(ctx, chatID, userID)
	if err != nil {
		h.platformError("role", err)
		return RoleMember
	}
	return role
}

// notifyTransient sends a notification and schedules its deletion.
func (h *Handlers) notifyTransient(ctx context.Context, chatID int64, topicID int, text string) {
	id, err := h.platform.Send(ctx, chatID, topicID, text, false)
	if err != nil {
		h.platformError("send", err)
		return
	}
	h.sched.ScheduleDeletion(chatID, id, h.cfg.NotificationDeleteDelay)
}

func (h *Handlers) platformError(op string, err error) {
	metrics.PlatformErrorsTotal.WithLabelValues(op).Inc()
	log.Printf("[bot] platform %s failed: %v", op, err)
}
