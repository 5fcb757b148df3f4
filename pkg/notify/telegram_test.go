package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalev/feedsync/pkg/notify/mocks"
)

func TestTelegramDispatcher_Send(t *testing.T) {
	bot := &mocks.BotAPIMock{
		SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			return tgbotapi.Message{}, nil
		},
	}
	d := NewTelegramDispatcher(bot, 42)

	err := d.Send(context.Background(), []Notification{
		{FeedTitle: "Tech Blog", ArticleTitle: "New release", Link: "https://example.com/1"},
		{FeedTitle: "Tech Blog", ArticleTitle: "Another post", Link: "https://example.com/2"},
	})
	require.NoError(t, err)
	require.Len(t, bot.SendCalls(), 2)

	msg, ok := bot.SendCalls()[0].C.(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)
	assert.Contains(t, msg.Text, "Tech Blog")
	assert.Contains(t, msg.Text, "New release")
}

func TestTelegramDispatcher_SendEscapesMarkdown(t *testing.T) {
	bot := &mocks.BotAPIMock{
		SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			return tgbotapi.Message{}, nil
		},
	}
	d := NewTelegramDispatcher(bot, 1)

	err := d.Send(context.Background(), []Notification{
		{FeedTitle: "A_B", ArticleTitle: "Hello [world]", Link: "https://example.com/x_y"},
	})
	require.NoError(t, err)
	require.Len(t, bot.SendCalls(), 1)

	msg := bot.SendCalls()[0].C.(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, `A\_B`)
	assert.Contains(t, msg.Text, `\[world\]`)
}

func TestTelegramDispatcher_SendContinuesAfterFailure(t *testing.T) {
	calls := 0
	bot := &mocks.BotAPIMock{
		SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			calls++
			if calls == 1 {
				return tgbotapi.Message{}, errors.New("chat not found")
			}
			return tgbotapi.Message{}, nil
		},
	}
	d := NewTelegramDispatcher(bot, 1)

	err := d.Send(context.Background(), []Notification{
		{ArticleTitle: "first"},
		{ArticleTitle: "second"},
	})
	require.Error(t, err)
	assert.Len(t, bot.SendCalls(), 2, "failure on one notification must not stop the batch")
}

func TestLogDispatcher_Send(t *testing.T) {
	d := LogDispatcher{}
	err := d.Send(context.Background(), []Notification{{ArticleTitle: "x"}})
	assert.NoError(t, err)
}
