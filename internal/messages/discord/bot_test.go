package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	channelID string
	content   string
	err       error
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.content = content
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
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
		},
	}
}

func TestDiscordBotNotify(t *testing.T) {
	t.Run("posts markdown to the configured channel", func(t *testing.T) {
		session := &fakeSession{}
		bot := &DiscordBot{session: session, channelID: "123", baseURL: "https://spark.test"}

		require.NoError(t, bot.Notify(context.Background(), testNotice()))

		assert.Equal(t, "123", session.channelID)
		assert.Contains(t, session.content, "### New signup in Bake Sale")
		assert.Contains(t, session.content, "**Participant**: Sam")
		assert.Contains(t, session.content, "[Open campaign](https://spark.test/campaign/ABCD-1234)")
	})

	t.Run("send failure is wrapped", func(t *testing.T) {
		session := &fakeSession{err: errors.New("missing access")}
		bot := &DiscordBot{session: session, channelID: "123"}

		err := bot.Notify(context.Background(), testNotice())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "channel 123")
	})

	assert.Equal(t, "discord", (&DiscordBot{}).Name())
}
