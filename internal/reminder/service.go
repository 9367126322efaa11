package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"remindbot/internal/common"
	"remindbot/internal/events"
	"remindbot/internal/scheduler"
	"remindbot/internal/timerule"

	"go.uber.org/zap"
)

// Triggers is the part of the scheduling engine the reminder layer drives
type Triggers interface {
	Schedule(id int64, rule timerule.TimeRule, payload scheduler.Payload) error
	Cancel(id int64) bool
	RehydrateAll(jobs []scheduler.Job) (int, error)
	ArmedIDs() []int64
	NextFire(id int64, after time.Time) (time.Time, bool)
}

// Scheduled is a listed reminder with the next instant it fires
type Scheduled struct {
	ResolvedReminder
	Next time.Time `json:"next"`
}

// Service is the command-facing reminder API: every mutation keeps the store
// and the live triggers in step.
type Service interface {
	Add(ctx context.Context, n NewReminder) (ResolvedReminder, error)
	List(ctx context.Context, ownerID, chatID int64) ([]Scheduled, error)
	Delete(ctx context.Context, id, ownerID, chatID int64) (bool, error)
	SetTimezone(ctx context.Context, userID int64, timezone string) error
	Timezone(ctx context.Context, userID int64) (string, bool, error)
}

type reminderService struct {
	store     Store
	triggers  Triggers
	eventBus  events.EventBus
	publisher *common.EventPublisher
	clock     common.Clock
	logger    *zap.Logger
}

// NewService creates the reminder service and subscribes it to owner removal
func NewService(store Store, triggers Triggers, eventBus events.EventBus, clock common.Clock, logger *zap.Logger) Service {
	if clock == nil {
		clock = common.NewRealClock()
	}

	s := &reminderService{
		store:     store,
		triggers:  triggers,
		eventBus:  eventBus,
		publisher: common.NewEventPublisher(eventBus, logger),
		clock:     clock,
		logger:    logger,
	}

	s.setupEventSubscriptions()
	return s
}

func (s *reminderService) setupEventSubscriptions() {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Subscribe(events.TopicUserRemoved, s.handleUserRemoved); err != nil {
		s.logger.Error("Failed to subscribe to UserRemoved events", zap.Error(err))
	}
}

// handleUserRemoved disarms the triggers of reminders the store removed by
// cascade together with their owner.
func (s *reminderService) handleUserRemoved(event events.UserRemoved) {
	cancelled := 0
	for _, id := range event.ReminderIDs {
		if s.triggers.Cancel(id) {
			cancelled++
		}
	}

	s.logger.Info("Cancelled triggers of removed user",
		zap.Int64("user_id", event.UserID),
		zap.Int("reminders", len(event.ReminderIDs)),
		zap.Int("cancelled", cancelled))
}

// Add validates, persists and arms a reminder in the owner's current timezone
func (s *reminderService) Add(ctx context.Context, n NewReminder) (ResolvedReminder, error) {
	if err := n.Validate(); err != nil {
		return ResolvedReminder{}, err
	}

	id, err := s.store.Create(ctx, n)
	if err != nil {
		s.logger.Error("Failed to store reminder",
			zap.Int64("owner_id", n.OwnerID),
			zap.Error(err))
		return ResolvedReminder{}, err
	}

	tz, err := s.resolveTimezone(ctx, n.OwnerID)
	if err != nil {
		s.rollback(ctx, id, n)
		return ResolvedReminder{}, err
	}

	created := ResolvedReminder{
		Reminder: Reminder{
			ID:       id,
			OwnerID:  n.OwnerID,
			ChatID:   n.ChatID,
			ThreadID: n.ThreadID,
			Day:      n.Day,
			At:       n.At,
			Text:     n.Text,
		},
		Timezone: tz,
	}

	rule := created.Rule(tz)
	if err := s.triggers.Schedule(id, rule, created.Payload()); err != nil {
		s.rollback(ctx, id, n)
		return ResolvedReminder{}, SchedulingError{ReminderID: id, Cause: err}
	}

	s.publisher.Publish(events.TopicReminderCreated, events.ReminderCreated{
		Event:      events.NewEvent(),
		ReminderID: id,
		OwnerID:    n.OwnerID,
		ChatID:     n.ChatID,
		Rule:       rule.String(),
	})

	s.logger.Info("Reminder added",
		zap.Int64("reminder_id", id),
		zap.Int64("owner_id", n.OwnerID),
		zap.Stringer("rule", rule))
	return created, nil
}

// rollback removes a stored row whose trigger could not be armed
func (s *reminderService) rollback(ctx context.Context, id int64, n NewReminder) {
	if _, err := s.store.Delete(ctx, id, n.OwnerID, n.ChatID); err != nil {
		s.logger.Error("Failed to roll back unarmed reminder",
			zap.Int64("reminder_id", id),
			zap.Error(err))
	}
}

// List returns the owner's reminders in the chat with their next fire time
func (s *reminderService) List(ctx context.Context, ownerID, chatID int64) ([]Scheduled, error) {
	reminders, err := s.store.ListByOwnerAndChat(ctx, ownerID, chatID)
	if err != nil {
		return nil, err
	}

	tz, err := s.resolveTimezone(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	now := s.clock.Now()
	listed := make([]Scheduled, 0, len(reminders))
	for _, r := range reminders {
		next, ok := s.triggers.NextFire(r.ID, now)
		if !ok {
			next = r.Rule(tz).Next(now)
		}
		listed = append(listed, Scheduled{
			ResolvedReminder: ResolvedReminder{Reminder: r, Timezone: tz},
			Next:             next.In(loc),
		})
	}
	return listed, nil
}

// Delete removes the reminder if owner and chat match, then disarms it
func (s *reminderService) Delete(ctx context.Context, id, ownerID, chatID int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, id, ownerID, chatID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.triggers.Cancel(id)

	s.publisher.Publish(events.TopicReminderDeleted, events.ReminderDeleted{
		Event:      events.NewEvent(),
		ReminderID: id,
		OwnerID:    ownerID,
		ChatID:     chatID,
	})

	s.logger.Info("Reminder deleted",
		zap.Int64("reminder_id", id),
		zap.Int64("owner_id", ownerID))
	return true, nil
}

// SetTimezone stores the user's IANA timezone. Armed reminders keep their
// old timezone until the next rehydration or reconciliation pass.
func (s *reminderService) SetTimezone(ctx context.Context, userID int64, timezone string) error {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return fmt.Errorf("empty timezone: %w", ErrInvalidTimezone)
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("%q: %w", timezone, ErrInvalidTimezone)
	}

	if err := s.store.UpsertTimezone(ctx, userID, timezone); err != nil {
		return err
	}

	s.publisher.Publish(events.TopicTimezoneChanged, events.TimezoneChanged{
		Event:    events.NewEvent(),
		UserID:   userID,
		Timezone: timezone,
	})

	s.logger.Info("Timezone updated",
		zap.Int64("user_id", userID),
		zap.String("timezone", timezone))
	return nil
}

// Timezone returns the stored preference, if any
func (s *reminderService) Timezone(ctx context.Context, userID int64) (string, bool, error) {
	return s.store.GetTimezone(ctx, userID)
}

// resolveTimezone substitutes UTC for a missing preference without storing it
func (s *reminderService) resolveTimezone(ctx context.Context, userID int64) (string, error) {
	tz, ok, err := s.store.GetTimezone(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok || tz == "" {
		return timerule.DefaultLocation, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		s.logger.Warn("Stored timezone is unknown, falling back to UTC",
			zap.Int64("user_id", userID),
			zap.String("timezone", tz))
		return timerule.DefaultLocation, nil
	}
	return tz, nil
}

// IsForeignKeyViolation reports whether err means the owner is not allowed
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, ErrForeignKeyViolation)
}
