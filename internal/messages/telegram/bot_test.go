package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type fakeBot struct {
	sent []tapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tapi.Chattable) (tapi.Message, error) {
	if msg, ok := c.(tapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tapi.Message{}, f.err
}

func testNotice() messages.Notice {
	return messages.Notice{
		Campaign: store.Campaign{ID: "c1", Code: "ABCD-1234", Name: "Bake Sale"},
		Task: store.Task{
			ID:            "t1",
			Name:          "Cookies",
			Status:        store.TASK_TAKEN,
			AssignedTo:    "Sam",
			AssignedEmail: "sam@example.com",
			AssignedPhone: "555-0100",
		},
	}
}

func TestTelegramBotNotify(t *testing.T) {
	t.Run("sends plain text to the chat", func(t *testing.T) {
		fake := &fakeBot{}
		bot := &TelegramBot{bot: fake, chatID: 42, baseURL: "https://spark.test"}

		require.NoError(t, bot.Notify(context.Background(), testNotice()))

		require.Len(t, fake.sent, 1)
		assert.Equal(t, int64(42), fake.sent[0].ChatID)
		assert.Contains(t, fake.sent[0].Text, "Participant: Sam")
		assert.Contains(t, fake.sent[0].Text, "Phone: 555-0100")
		assert.Contains(t, fake.sent[0].Text, "Due Date: Not specified")
		assert.Contains(t, fake.sent[0].Text, "https://spark.test/campaign/ABCD-1234")
	})

	t.Run("cancelled context sends nothing", func(t *testing.T) {
		fake := &fakeBot{}
		bot := &TelegramBot{bot: fake, chatID: 42}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, bot.Notify(ctx, testNotice()), context.Canceled)
		assert.Empty(t, fake.sent)
	})

	t.Run("send failure is wrapped", func(t *testing.T) {
		fake := &fakeBot{err: errors.New("chat not found")}
		bot := &TelegramBot{bot: fake, chatID: 42}

		err := bot.Notify(context.Background(), testNotice())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "chat 42")
	})
}
