package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tb "gopkg.in/telebot.v3"
)

// Telegram adapts the Telegram Bot API (via telebot) to the Platform
// interface and routes telebot updates into the Handlers. telebot runs each
// update on its own goroutine, which gives the concurrency model the
// handlers are written for.
type Telegram struct {
	bot         *tb.Bot
	rulesMarkup *tb.ReplyMarkup
	rulesBtn    tb.Btn
}

// NewTelegram connects to the Telegram Bot API with long polling.
func NewTelegram(token string, pollTimeout time.Duration) (*Telegram, error) {
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: connect: %w", err)
	}

	markup := &tb.ReplyMarkup{}
	btn := markup.Data(rulesButtonText, "rules_accepted")
	markup.Inline(markup.Row(btn))

	return &Telegram{bot: b, rulesMarkup: markup, rulesBtn: btn}, nil
}

// RoleOf looks up the user's membership role in the chat.
func (t *Telegram) RoleOf(_ context.Context, chatID, userID int64) (Role, error) {
	member, err := t.bot.ChatMemberOf(&tb.Chat{ID: chatID}, &tb.User{ID: userID})
	if err != nil {
		return RoleMember, fmt.Errorf("telegram: chat member of: %w", err)
	}

	switch member.Role {
	case tb.Creator:
		return RoleOwner, nil
	case tb.Administrator:
		return RoleAdmin, nil
	default:
		return RoleMember, nil
	}
}

// Send posts text into the chat, addressed to the given topic thread.
func (t *Telegram) Send(_ context.Context, chatID int64, topicID int, text string, withRulesButton bool) (int, error) {
	opts := &tb.SendOptions{ThreadID: topicID}
	if withRulesButton {
		opts.ReplyMarkup = t.rulesMarkup
	}

	msg, err := t.bot.Send(tb.ChatID(chatID), text, opts)
	if err != nil {
		return 0, fmt.Errorf("telegram: send: %w", err)
	}
	return msg.ID, nil
}

// Delete removes a message.
func (t *Telegram) Delete(_ context.Context, chatID int64, messageID int) error {
	err := t.bot.Delete(&tb.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	})
	if err != nil {
		return fmt.Errorf("telegram: delete: %w", err)
	}
	return nil
}

// Restrict toggles the user's posting permissions in the chat. Restrictions
// have no expiry; they are lifted by the acknowledgement flow.
func (t *Telegram) Restrict(_ context.Context, chatID, userID int64, canPost bool) error {
	err := t.bot.Restrict(&tb.Chat{ID: chatID}, &tb.ChatMember{
		User:            &tb.User{ID: userID},
		RestrictedUntil: tb.Forever(),
		Rights: tb.Rights{
			CanSendMessages: canPost,
			CanSendMedia:    canPost,
			CanSendPolls:    canPost,
			CanSendOther:    canPost,
			CanAddPreviews:  canPost,
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: restrict: %w", err)
	}
	return nil
}

// Register wires the handlers to telebot's update routing.
func (t *Telegram) Register(h *Handlers) {
	t.bot.Handle("/start", func(c tb.Context) error {
		h.HandleStart(context.Background(), messageEvent(c.Message()))
		return nil
	})

	t.bot.Handle("/resale_topic", func(c tb.Context) error {
		h.HandleSetTopic(context.Background(), messageEvent(c.Message()))
		return nil
	})

	t.bot.Handle(tb.OnText, func(c tb.Context) error {
		h.HandleText(context.Background(), messageEvent(c.Message()))
		return nil
	})

	t.bot.Handle(tb.OnUserJoined, func(c tb.Context) error {
		m := c.Message()
		members := joinedMembers(m)
		h.HandleNewMembers(context.Background(), m.Chat.ID, m.ID, members)
		return nil
	})

	t.bot.Handle(&t.rulesBtn, func(c tb.Context) error {
		cb := c.Callback()
		if cb == nil || cb.Message == nil {
			return nil
		}

		text, removeKeyboard := h.HandleAcknowledge(context.Background(), cb.Message.Chat.ID, cb.Sender.ID)
		if removeKeyboard {
			if _, err := t.bot.EditReplyMarkup(cb.Message, nil); err != nil {
				h.platformError("edit", err)
			}
		}
		return c.Respond(&tb.CallbackResponse{Text: text})
	})
}

// Start begins long polling. It blocks until Stop is called.
func (t *Telegram) Start() {
	t.bot.Start()
}

// Stop terminates long polling.
func (t *Telegram) Stop() {
	t.bot.Stop()
}

func messageEvent(m *tb.Message) Message {
	msg := Message{
		ChatID:    m.Chat.ID,
		MessageID: m.ID,
		TopicID:   m.ThreadID,
		Text:      m.Text,
		Time:      m.Time(),
	}
	if m.Sender != nil {
		msg.UserID = m.Sender.ID
		msg.Username = m.Sender.Username
	}
	return msg
}

func joinedMembers(m *tb.Message) []JoinedMember {
	users := m.UsersJoined
	if len(users) == 0 && m.UserJoined != nil {
		users = []tb.User{*m.UserJoined}
	}

	members := make([]JoinedMember, 0, len(users))
	for _, u := range users {
		members = append(members, JoinedMember{
			UserID:   u.ID,
			Username: u.Username,
			IsBot:    u.IsBot,
		})
	}
	return members
}
