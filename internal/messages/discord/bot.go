package discord

import (
	"context"
	"fmt"

	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/bwmarrin/discordgo"
)

type channelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordBot posts signup notices to a single channel.
type DiscordBot struct {
	session   channelSender
	channelID string
	baseURL   string
}

func NewDiscordBot(token, channelID, baseURL string) (*DiscordBot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordBot{
		session:   dg,
		channelID: channelID,
		baseURL:   baseURL,
	}, nil
}

func (b *DiscordBot) Name() string {
	return "discord"
}

func (b *DiscordBot) Notify(ctx context.Context, notice messages.Notice) error {
	_, err := b.session.ChannelMessageSend(b.channelID, notice.Markdown(b.baseURL), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send to channel %s: %w", b.channelID, err)
	}
	return nil
}
