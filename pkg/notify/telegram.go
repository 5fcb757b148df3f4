package notify

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate moq -out mocks/bot_api.go -pkg mocks -skip-ensure -fmt goimports . BotAPI

// BotAPI is the subset of the telegram client used by the dispatcher
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramDispatcher sends notifications to a telegram chat
type TelegramDispatcher struct {
	bot    BotAPI
	chatID int64
}

// NewTelegramDispatcher creates a dispatcher backed by the bot API client
func NewTelegramDispatcher(bot BotAPI, chatID int64) *TelegramDispatcher {
	return &TelegramDispatcher{bot: bot, chatID: chatID}
}

// Send delivers each notification as a separate message. Delivery failures
// for one notification do not stop the rest of the batch, the first error
// is returned after the batch completes.
func (d *TelegramDispatcher) Send(_ context.Context, notifications []Notification) error {
	var firstErr error
	for _, n := range notifications {
		text := fmt.Sprintf("*%s*\n%s\n\n%s",
			tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, n.FeedTitle),
			tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, n.ArticleTitle),
			tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, n.Link),
		)
		msg := tgbotapi.NewMessage(d.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := d.bot.Send(msg); err != nil {
			lgr.Printf("[WARN] failed to send telegram notification for %q: %v", n.ArticleTitle, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("send notification: %w", err)
			}
		}
	}
	return firstErr
}
