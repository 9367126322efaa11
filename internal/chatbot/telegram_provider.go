package chatbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"remindbot/internal/config"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const initRetries = 5

// telegramProvider implements the TelegramProvider interface using the telegram-bot-api library
type telegramProvider struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
	config config.ChatbotConfig
}

// NewTelegramProvider creates a new TelegramProvider instance. Start-up
// network failures are retried with exponential backoff; a rejected token
// is not.
func NewTelegramProvider(cfg config.ChatbotConfig, logger *zap.Logger) (TelegramProvider, error) {
	if cfg.Token == "" {
		return nil, NewConfigurationError("token", "telegram bot token is required", "")
	}

	// long polling holds the request open for cfg.Timeout seconds
	client := &http.Client{Timeout: time.Duration(cfg.Timeout+10) * time.Second}
	return NewTelegramProviderWithClient(cfg, client, logger)
}

// NewTelegramProviderWithClient is NewTelegramProvider over a caller supplied
// HTTP client.
func NewTelegramProviderWithClient(cfg config.ChatbotConfig, client tgbotapi.HTTPClient, logger *zap.Logger) (TelegramProvider, error) {
	if cfg.Token == "" {
		return nil, NewConfigurationError("token", "telegram bot token is required", "")
	}

	var bot *tgbotapi.BotAPI
	operation := func() error {
		b, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
		if err != nil {
			var apiErr *tgbotapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
				return backoff.Permanent(err)
			}
			return err
		}
		bot = b
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), initRetries)
	err := backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		logger.Warn("Telegram bot init failed, retrying",
			zap.Duration("retry_in", next),
			zap.Error(err))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot initialized successfully", zap.String("username", bot.Self.UserName))

	return &telegramProvider{
		bot:    bot,
		logger: logger,
		config: cfg,
	}, nil
}

// SendMessage sends a plain text message to the specified chat
func (p *telegramProvider) SendMessage(chatID int64, threadID int, text string) (int, error) {
	return p.send(chatID, threadID, text, nil)
}

// SendMessageWithMarkup sends a message with a reply markup
func (p *telegramProvider) SendMessageWithMarkup(chatID int64, threadID int, text string, markup interface{}) (int, error) {
	return p.send(chatID, threadID, text, markup)
}

// send goes through sendMessage directly: the library's MessageConfig has no
// message_thread_id field.
func (p *telegramProvider) send(chatID int64, threadID int, text string, markup interface{}) (int, error) {
	correlationID := fmt.Sprintf("msg_%d_%d", chatID, time.Now().Unix())

	p.logger.Debug("Sending message",
		zap.String("correlation_id", correlationID),
		zap.Int64("chat_id", chatID),
		zap.Int("thread_id", threadID),
		zap.Int("text_length", len(text)))

	params := tgbotapi.Params{}
	if err := params.AddFirstValid("chat_id", chatID); err != nil {
		return 0, WrapTelegramError(err, "send_message")
	}
	params["text"] = text
	params.AddNonZero("message_thread_id", threadID)
	if markup != nil {
		if err := params.AddInterface("reply_markup", markup); err != nil {
			return 0, WrapTelegramError(err, "send_message")
		}
	}

	resp, err := p.bot.MakeRequest("sendMessage", params)
	if err != nil {
		p.logger.Error("Failed to send message",
			zap.String("correlation_id", correlationID),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return 0, toAPIError("send_message", err)
	}

	var sent tgbotapi.Message
	if err := json.Unmarshal(resp.Result, &sent); err != nil {
		return 0, WrapTelegramError(err, "send_message")
	}

	p.logger.Debug("Message sent successfully",
		zap.String("correlation_id", correlationID),
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", sent.MessageID))

	return sent.MessageID, nil
}

// DeleteMessage removes a message from a chat
func (p *telegramProvider) DeleteMessage(chatID int64, messageID int) error {
	_, err := p.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		return toAPIError("delete_message", err)
	}
	return nil
}

// GetUpdates fetches pending updates as raw JSON
func (p *telegramProvider) GetUpdates(offset, timeout int) ([]json.RawMessage, error) {
	params := tgbotapi.Params{}
	params.AddNonZero("offset", offset)
	params.AddNonZero("timeout", timeout)
	if err := params.AddInterface("allowed_updates", []string{"message"}); err != nil {
		return nil, WrapTelegramError(err, "get_updates")
	}

	resp, err := p.bot.MakeRequest("getUpdates", params)
	if err != nil {
		return nil, toAPIError("get_updates", err)
	}

	var updates []json.RawMessage
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		return nil, WrapParsingError(err, "get_updates")
	}
	return updates, nil
}

// SetWebhook configures the webhook URL for receiving updates
func (p *telegramProvider) SetWebhook(webhookURL string) error {
	p.logger.Info("Setting webhook", zap.String("webhook_url", webhookURL))

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		p.logger.Error("Failed to create webhook config",
			zap.String("webhook_url", webhookURL),
			zap.Error(err))
		return fmt.Errorf("failed to create webhook config: %w", err)
	}

	_, err = p.bot.Request(webhookConfig)
	if err != nil {
		p.logger.Error("Failed to set webhook",
			zap.String("webhook_url", webhookURL),
			zap.Error(err))
		return toAPIError("set_webhook", err)
	}

	p.logger.Info("Webhook set successfully", zap.String("webhook_url", webhookURL))
	return nil
}

// DeleteWebhook removes the configured webhook
func (p *telegramProvider) DeleteWebhook() error {
	p.logger.Info("Deleting webhook")

	_, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		p.logger.Error("Failed to delete webhook", zap.Error(err))
		return toAPIError("delete_webhook", err)
	}

	p.logger.Info("Webhook deleted successfully")
	return nil
}

// GetMe returns information about the bot
func (p *telegramProvider) GetMe() (*tgbotapi.User, error) {
	p.logger.Debug("Getting bot information")

	me, err := p.bot.GetMe()
	if err != nil {
		p.logger.Error("Failed to get bot information", zap.Error(err))
		return nil, toAPIError("get_me", err)
	}

	p.logger.Debug("Bot information retrieved successfully",
		zap.String("username", me.UserName),
		zap.String("first_name", me.FirstName))

	return &me, nil
}
