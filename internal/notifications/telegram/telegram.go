// Package telegram forwards delivered notifications to a Telegram chat.
package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pocket-ledger/backend/internal/notifications"
)

var ErrChatIDMissing = errors.New("the telegram chat id must be set when a bot token is configured")

// Config selects the bot and the chat reminders are sent to.
type Config struct {
	Token    string `yaml:"token"`
	ChatID   int64  `yaml:"chatId"`
	Endpoint string `yaml:"endpoint"` // Bot API endpoint format, defaults to the public API
}

// Enabled reports whether a bot token is configured.
func (c Config) Enabled() bool {
	return c.Token != ""
}

func (c Config) Validate() error {
	if c.Enabled() && c.ChatID == 0 {
		return ErrChatIDMissing
	}

	return nil
}

// Forwarder sends delivered notifications as chat messages.
type Forwarder struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New authenticates the bot and returns a Forwarder for the configured chat.
func New(c Config) (*Forwarder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(c.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &Forwarder{api: api, chatID: c.ChatID}, nil
}

// Send posts the title and body of the notification to the chat.
func (f *Forwarder) Send(d notifications.Delivery) error {
	msg := tgbotapi.NewMessage(f.chatID, fmt.Sprintf("%s\n%s", d.Title, d.Body))

	_, err := f.api.Send(msg)
	if err != nil {
		return fmt.Errorf("sending %s to telegram: %w", d.Key, err)
	}

	return nil
}
