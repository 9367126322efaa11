package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// ReminderCreated is published after a reminder is stored and armed
type ReminderCreated struct {
	Event
	ReminderID int64  `json:"reminder_id"`
	OwnerID    int64  `json:"owner_id"`
	ChatID     int64  `json:"chat_id"`
	Rule       string `json:"rule"`
}

// ReminderDeleted is published after a reminder row is removed and its trigger cancelled
type ReminderDeleted struct {
	Event
	ReminderID int64 `json:"reminder_id"`
	OwnerID    int64 `json:"owner_id"`
	ChatID     int64 `json:"chat_id"`
}

// ReminderDelivered is published when a fired reminder reached the chat
type ReminderDelivered struct {
	Event
	ReminderID int64 `json:"reminder_id"`
	ChatID     int64 `json:"chat_id"`
	ThreadID   int   `json:"thread_id,omitempty"`
	MessageID  int   `json:"message_id"`
}

// ReminderDeliveryFailed is published when sending a fired reminder failed
type ReminderDeliveryFailed struct {
	Event
	ReminderID int64  `json:"reminder_id"`
	ChatID     int64  `json:"chat_id"`
	ThreadID   int    `json:"thread_id,omitempty"`
	Error      string `json:"error"`
}

// UserAdded is published when a user joins the allow-list
type UserAdded struct {
	Event
	UserID  int64 `json:"user_id"`
	AddedBy int64 `json:"added_by"`
}

// UserRemoved is published after an owner was removed from the allow-list.
// ReminderIDs are the reminders the store cascade-deleted with the owner.
type UserRemoved struct {
	Event
	UserID      int64   `json:"user_id"`
	ReminderIDs []int64 `json:"reminder_ids"`
}

// TimezoneChanged is published after a user's timezone preference is upserted
type TimezoneChanged struct {
	Event
	UserID   int64  `json:"user_id"`
	Timezone string `json:"timezone"`
}

// Event topics constants
const (
	TopicReminderCreated        = "reminder.created"
	TopicReminderDeleted        = "reminder.deleted"
	TopicReminderDelivered      = "reminder.delivered"
	TopicReminderDeliveryFailed = "reminder.delivery_failed"
	TopicUserAdded              = "user.added"
	TopicUserRemoved            = "user.removed"
	TopicTimezoneChanged        = "user.timezone_changed"
)
