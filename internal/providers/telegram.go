package providers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// TelegramClient delivers alerts to users who linked a telegram chat.
type TelegramClient struct {
	bot *bot.Bot
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	return &TelegramClient{bot: b}, nil
}

func (c *TelegramClient) Send(ctx context.Context, chatID int64, text string) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if _, err := c.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", chatID, err)
	}
	return nil
}
