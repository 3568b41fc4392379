// Package transport bridges the chat platform and the dispatcher. The
// Telegram adapter feeds incoming text messages into the dispatcher
// and delivers replies back to the originating chat.
package transport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"chat-game-bot/internal/config"
	"chat-game-bot/internal/dispatcher"
)

// Telegram is the telebot-backed transport. In private chats every
// message is forwarded; in group chats only messages that @-mention
// the bot are, with the mention stripped before dispatch.
type Telegram struct {
	bot        *tele.Bot
	dispatcher *dispatcher.Dispatcher
}

// NewTelegram creates the Telegram transport.
func NewTelegram(cfg *config.Config, d *dispatcher.Dispatcher) (*Telegram, error) {
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	t := &Telegram{bot: bot, dispatcher: d}
	bot.Handle(tele.OnText, t.onText)
	return t, nil
}

// onText turns one incoming Telegram message into a dispatcher submit.
func (t *Telegram) onText(c tele.Context) error {
	sender := c.Sender()
	chat := c.Chat()
	if sender == nil || chat == nil {
		return nil
	}

	text := c.Text()
	group := chat.Type != tele.ChatPrivate
	if group {
		stripped, mentioned := StripMention(text, t.bot.Me.Username)
		if !mentioned {
			return nil
		}
		text = stripped
	}

	msg := dispatcher.Message{
		Sender:     strconv.FormatInt(sender.ID, 10),
		SenderName: senderName(sender),
		Chat:       strconv.FormatInt(chat.ID, 10),
		Text:       text,
		Group:      group,
	}
	if err := t.dispatcher.Submit(msg); err != nil {
		log.Warn().Err(err).Str("sender", msg.Sender).Msg("dropping message")
	}
	return nil
}

// Reply sends text back to the chat the message arrived in.
func (t *Telegram) Reply(msg dispatcher.Message, text string) error {
	chatID, err := strconv.ParseInt(msg.Chat, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", msg.Chat, err)
	}
	if _, err := t.bot.Send(tele.ChatID(chatID), text); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// Start begins long polling. Blocks until Stop is called.
func (t *Telegram) Start() {
	log.Info().Str("bot", t.bot.Me.Username).Msg("starting telegram transport")
	t.bot.Start()
}

// Stop halts polling.
func (t *Telegram) Stop() {
	log.Info().Msg("stopping telegram transport")
	t.bot.Stop()
}

// senderName picks the name replies address the sender by.
func senderName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// StripMention reports whether text addresses the bot and returns the
// text with the leading or trailing @mention removed. The mention may
// appear anywhere; only the first occurrence is stripped.
func StripMention(text, botUsername string) (string, bool) {
	if botUsername == "" {
		return text, false
	}
	mention := "@" + botUsername
	idx := strings.Index(text, mention)
	if idx < 0 {
		return text, false
	}
	stripped := text[:idx] + text[idx+len(mention):]
	return strings.TrimSpace(stripped), true
}
