package chatbot

import (
	"context"
	"errors"
	"time"

	"remindbot/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ReplyCleaner deletes bot chatter some time after it was sent
type ReplyCleaner interface {
	ScheduleDeletion(chatID int64, messageID int)
}

// ChatbotService defines the interface for chatbot operations
type ChatbotService interface {
	// HandleWebhook processes one raw update pushed by Telegram
	HandleWebhook(ctx context.Context, webhookData []byte) error
	// HandleUpdate answers one parsed message
	HandleUpdate(ctx context.Context, in *Incoming) error
	// RunPolling long-polls getUpdates until ctx is cancelled
	RunPolling(ctx context.Context) error
}

// chatbotService implements the ChatbotService interface
type chatbotService struct {
	logger    *zap.Logger
	provider  TelegramProvider
	parser    *WebhookParser
	processor *CommandProcessor
	cleaner   ReplyCleaner
	config    config.ChatbotConfig
}

// NewChatbotService creates a new instance of ChatbotService. cleaner may be
// nil when self-cleanup is off.
func NewChatbotService(provider TelegramProvider, processor *CommandProcessor, cleaner ReplyCleaner, logger *zap.Logger, cfg config.ChatbotConfig) ChatbotService {
	return &chatbotService{
		logger:    logger,
		provider:  provider,
		parser:    NewWebhookParser(),
		processor: processor,
		cleaner:   cleaner,
		config:    cfg,
	}
}

// HandleWebhook processes incoming webhook data from Telegram
func (s *chatbotService) HandleWebhook(ctx context.Context, webhookData []byte) error {
	s.logger.Debug("Handling webhook", zap.Int("data_size", len(webhookData)))

	in, err := s.parser.Parse(webhookData)
	if errors.Is(err, ErrUnsupportedUpdate) {
		s.logger.Debug("Ignoring unsupported update", zap.Error(err))
		return nil
	}
	if err != nil {
		s.logger.Error("Failed to parse webhook update", zap.Error(err))
		return err
	}

	return s.HandleUpdate(ctx, in)
}

// HandleUpdate runs the processor and sends its reply
func (s *chatbotService) HandleUpdate(ctx context.Context, in *Incoming) error {
	correlationID := s.parser.BuildCorrelationID(in)

	reply, err := s.processor.Process(ctx, in)
	if err != nil {
		s.logger.Error("Command processing failed",
			zap.String("correlation_id", correlationID),
			zap.String("command", string(in.Command)),
			zap.Error(err))
	}
	if reply.IsEmpty() {
		return nil
	}

	var messageID int
	var sendErr error
	if reply.Markup != nil {
		messageID, sendErr = s.provider.SendMessageWithMarkup(in.ChatID, in.ThreadID, reply.Text, reply.Markup)
	} else {
		messageID, sendErr = s.provider.SendMessage(in.ChatID, in.ThreadID, reply.Text)
	}
	if sendErr != nil {
		s.logger.Error("Failed to send reply",
			zap.String("correlation_id", correlationID),
			zap.Int64("chat_id", in.ChatID),
			zap.Error(sendErr))
		return sendErr
	}

	if s.cleaner != nil && !reply.Persistent {
		s.cleaner.ScheduleDeletion(in.ChatID, messageID)
		if in.Type == MessageTypeCommand {
			s.cleaner.ScheduleDeletion(in.ChatID, in.MessageID)
		}
	}

	return nil
}

// RunPolling fetches updates with getUpdates and handles them in order. The
// offset advances past every update, including ones that fail to parse.
func (s *chatbotService) RunPolling(ctx context.Context) error {
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 30
	}

	retry := backoff.NewExponentialBackOff()
	retry.MaxElapsedTime = 0
	retry.MaxInterval = time.Minute

	s.logger.Info("Starting long polling", zap.Int("timeout", timeout))

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Long polling stopped")
			return nil
		}

		updates, err := s.provider.GetUpdates(offset, timeout)
		if err != nil {
			wait := retry.NextBackOff()
			var apiErr TelegramAPIError
			if errors.As(err, &apiErr) && apiErr.RetryDelay() > wait {
				wait = apiErr.RetryDelay()
			}
			if IsTemporaryError(err) {
				s.logger.Warn("Failed to fetch updates",
					zap.Duration("retry_in", wait),
					zap.Error(err))
			} else {
				s.logger.Error("Update polling rejected",
					zap.Duration("retry_in", wait),
					zap.Error(err))
			}
			select {
			case <-ctx.Done():
				s.logger.Info("Long polling stopped")
				return nil
			case <-time.After(wait):
			}
			continue
		}
		retry.Reset()

		for _, raw := range updates {
			id, err := s.parser.UpdateID(raw)
			if err != nil {
				s.logger.Warn("Skipping undecodable update", zap.Error(err))
				continue
			}
			if id >= offset {
				offset = id + 1
			}

			if err := s.HandleWebhook(ctx, raw); err != nil {
				s.logger.Warn("Update handling failed",
					zap.Int("update_id", id),
					zap.Error(err))
			}
		}
	}
}
