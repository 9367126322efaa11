package dispatcher

import (
	"context"

	"remindbot/internal/common"
	"remindbot/internal/events"
	"remindbot/internal/scheduler"

	"go.uber.org/zap"
)

// MessageSender delivers text to a chat, inside a forum thread when threadID
// is non-zero. It returns the id of the sent message.
type MessageSender interface {
	SendMessage(chatID int64, threadID int, text string) (int, error)
}

// Cleaner removes a sent message at some later point
type Cleaner interface {
	ScheduleDeletion(chatID int64, messageID int)
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithCleaner schedules every delivered reminder message for deletion.
func WithCleaner(cleaner Cleaner) Option {
	return func(d *Dispatcher) {
		d.cleaner = cleaner
	}
}

// WithClock overrides the clock used to time deliveries.
func WithClock(clock common.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

// Dispatcher turns a fired trigger into one outbound message. Failures are
// logged and reported as events; nothing is retried.
type Dispatcher struct {
	sender    MessageSender
	cleaner   Cleaner
	publisher *common.EventPublisher
	clock     common.Clock
	logger    *zap.Logger
}

// New creates a Dispatcher
func New(sender MessageSender, eventBus events.EventBus, logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:    sender,
		publisher: common.NewEventPublisher(eventBus, logger),
		clock:     common.NewRealClock(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fire delivers the payload of reminder id. It matches scheduler.DispatchFunc.
// The returned error only informs the caller; the trigger stays armed.
func (d *Dispatcher) Fire(ctx context.Context, id int64, p scheduler.Payload) error {
	if err := ctx.Err(); err != nil {
		d.logger.Warn("Skipping delivery after shutdown",
			zap.Int64("reminder_id", id),
			zap.Int64("chat_id", p.ChatID))
		return NewDeliveryError(id, p.ChatID, err)
	}

	start := d.clock.Now()
	messageID, err := d.sender.SendMessage(p.ChatID, p.ThreadID, p.Text)
	took := d.clock.Now().Sub(start)

	if err != nil {
		d.logger.Error("Reminder delivery failed",
			zap.Int64("reminder_id", id),
			zap.Int64("chat_id", p.ChatID),
			zap.Int("thread_id", p.ThreadID),
			zap.Duration("took", took),
			zap.Error(err))

		d.publisher.Publish(events.TopicReminderDeliveryFailed, events.ReminderDeliveryFailed{
			Event:      events.NewEvent(),
			ReminderID: id,
			ChatID:     p.ChatID,
			ThreadID:   p.ThreadID,
			Error:      err.Error(),
		})
		return NewDeliveryError(id, p.ChatID, err)
	}

	d.logger.Info("Reminder delivered",
		zap.Int64("reminder_id", id),
		zap.Int64("chat_id", p.ChatID),
		zap.Int("message_id", messageID),
		zap.Duration("took", took))

	d.publisher.Publish(events.TopicReminderDelivered, events.ReminderDelivered{
		Event:      events.NewEvent(),
		ReminderID: id,
		ChatID:     p.ChatID,
		ThreadID:   p.ThreadID,
		MessageID:  messageID,
	})

	if d.cleaner != nil && messageID != 0 {
		d.cleaner.ScheduleDeletion(p.ChatID, messageID)
	}
	return nil
}
