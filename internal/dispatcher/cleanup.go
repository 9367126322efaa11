package dispatcher

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MessageDeleter removes a previously sent message
type MessageDeleter interface {
	DeleteMessage(chatID int64, messageID int) error
}

// OneShotScheduler runs a task once after a delay
type OneShotScheduler interface {
	ScheduleOnce(delay time.Duration, fn func(ctx context.Context)) string
}

// SelfCleaner deletes messages some time after they were sent. Deletion is
// best-effort: a message already gone or too old to delete is only logged.
type SelfCleaner struct {
	scheduler OneShotScheduler
	deleter   MessageDeleter
	delay     time.Duration
	logger    *zap.Logger
}

// NewSelfCleaner creates a cleaner. A non-positive delay disables deletion.
func NewSelfCleaner(scheduler OneShotScheduler, deleter MessageDeleter, delay time.Duration, logger *zap.Logger) *SelfCleaner {
	return &SelfCleaner{
		scheduler: scheduler,
		deleter:   deleter,
		delay:     delay,
		logger:    logger,
	}
}

// Enabled reports whether ScheduleDeletion does anything
func (c *SelfCleaner) Enabled() bool {
	return c != nil && c.delay > 0
}

// ScheduleDeletion queues messageID in chatID for deletion after the delay.
func (c *SelfCleaner) ScheduleDeletion(chatID int64, messageID int) {
	if !c.Enabled() || messageID == 0 {
		return
	}

	key := c.scheduler.ScheduleOnce(c.delay, func(ctx context.Context) {
		if ctx.Err() != nil {
			return
		}
		if err := c.deleter.DeleteMessage(chatID, messageID); err != nil {
			c.logger.Debug("Could not delete message",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err))
			return
		}
		c.logger.Debug("Message deleted",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID))
	})

	c.logger.Debug("Message scheduled for deletion",
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
		zap.Duration("delay", c.delay),
		zap.String("task", key))
}
