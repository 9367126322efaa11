package dispatcher

import (
	"fmt"
)

// ErrCodeDeliveryFailed marks a reminder that could not be sent
const ErrCodeDeliveryFailed = "DELIVERY_FAILED"

// DeliveryError reports a failed send of a fired reminder
type DeliveryError struct {
	ReminderID int64
	ChatID     int64
	Cause      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver reminder %d to chat %d: %v", e.ReminderID, e.ChatID, e.Cause)
}

func (e *DeliveryError) Code() string {
	return ErrCodeDeliveryFailed
}

func (e *DeliveryError) Message() string {
	return e.Cause.Error()
}

// Temporary is false: a failed occurrence is not retried
func (e *DeliveryError) Temporary() bool {
	return false
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// NewDeliveryError creates a new DeliveryError
func NewDeliveryError(reminderID, chatID int64, cause error) error {
	return &DeliveryError{ReminderID: reminderID, ChatID: chatID, Cause: cause}
}
