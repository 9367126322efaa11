package common

import (
	"remindbot/internal/events"

	"go.uber.org/zap"
)

// EventPublisher publishes domain events on a best-effort basis: a failed
// publish is logged and never propagated to the operation that caused it.
type EventPublisher struct {
	eventBus events.EventBus
	logger   *zap.Logger
}

// NewEventPublisher creates a new EventPublisher instance. A nil bus turns
// every Publish into a no-op.
func NewEventPublisher(eventBus events.EventBus, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{
		eventBus: eventBus,
		logger:   logger,
	}
}

// Publish sends event on topic and reports whether it was accepted
func (p *EventPublisher) Publish(topic string, event interface{}) bool {
	if p == nil || p.eventBus == nil {
		return false
	}

	if err := p.eventBus.Publish(topic, event); err != nil {
		p.logger.Warn("Failed to publish event",
			zap.String("topic", topic),
			zap.Error(err))
		return false
	}
	return true
}
