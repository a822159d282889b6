package telegram

import (
	"context"
	"fmt"

	"github.com/Formula-SAE/signupspark/internal/messages"

	tapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type sender interface {
	Send(c tapi.Chattable) (tapi.Message, error)
}

// TelegramBot posts signup notices to one chat.
type TelegramBot struct {
	bot     sender
	chatID  int64
	baseURL string
}

func NewTelegramBot(token string, chatID int64, baseURL string) (*TelegramBot, error) {
	bot, err := tapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		chatID:  chatID,
		baseURL: baseURL,
	}, nil
}

func (t *TelegramBot) Name() string {
	return "telegram"
}

// Notify sends plain text. The client has no context support, so ctx is only
// checked before sending.
func (t *TelegramBot) Notify(ctx context.Context, notice messages.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tapi.NewMessage(t.chatID, notice.Text(t.baseURL))
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send to chat %d: %w", t.chatID, err)
	}
	return nil
}
