package chatbot

import (
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramProvider defines the contract for Telegram API operations
type TelegramProvider interface {
	// SendMessage sends plain text, inside a forum topic when threadID is set,
	// and returns the new message id.
	SendMessage(chatID int64, threadID int, text string) (int, error)

	// SendMessageWithMarkup sends text with a reply_markup (keyboards).
	SendMessageWithMarkup(chatID int64, threadID int, text string, markup interface{}) (int, error)

	// DeleteMessage removes a message the bot can delete
	DeleteMessage(chatID int64, messageID int) error

	// GetUpdates long-polls for updates and returns them undecoded so fields
	// the client library lacks survive.
	GetUpdates(offset, timeout int) ([]json.RawMessage, error)

	// SetWebhook configures the webhook URL for receiving updates
	SetWebhook(webhookURL string) error

	// DeleteWebhook removes the configured webhook
	DeleteWebhook() error

	// GetMe returns information about the bot
	GetMe() (*tgbotapi.User, error)
}
