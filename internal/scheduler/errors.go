package scheduler

import (
	"fmt"
)

// SchedulerError defines the interface for scheduler-specific errors
type SchedulerError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// schedulerError implements the SchedulerError interface
type schedulerError struct {
	code      string
	message   string
	temporary bool
}

func (e *schedulerError) Error() string {
	return fmt.Sprintf("scheduler error [%s]: %s", e.code, e.message)
}

func (e *schedulerError) Code() string {
	return e.code
}

func (e *schedulerError) Message() string {
	return e.message
}

func (e *schedulerError) Temporary() bool {
	return e.temporary
}

// Error constants
const (
	ErrSchedulerNotRunning     = "scheduler_not_running"
	ErrSchedulerAlreadyRunning = "scheduler_already_running"
	ErrInvalidConfiguration    = "invalid_configuration"
	ErrInvalidSchedule         = "invalid_schedule"
	ErrShutdownTimeout         = "shutdown_timeout"
)

// TriggerError reports a reminder whose trigger could not be armed.
type TriggerError struct {
	schedulerError
	ReminderID int64
	Operation  string
	Err        error
}

func (e *TriggerError) Unwrap() error {
	return e.Err
}

type ShutdownError struct {
	schedulerError
	Timeout string
}

type ConfigurationError struct {
	schedulerError
	Field string
	Value interface{}
}

// Constructor functions
func NewSchedulerError(code, message string) error {
	return &schedulerError{
		code:      code,
		message:   message,
		temporary: false,
	}
}

func NewTriggerError(reminderID int64, operation string, err error) error {
	return &TriggerError{
		schedulerError: schedulerError{
			code:      ErrInvalidSchedule,
			message:   fmt.Sprintf("failed to %s trigger for reminder %d: %v", operation, reminderID, err),
			temporary: false,
		},
		ReminderID: reminderID,
		Operation:  operation,
		Err:        err,
	}
}

func NewShutdownError(message string, timeout string) error {
	return &ShutdownError{
		schedulerError: schedulerError{
			code:      ErrShutdownTimeout,
			message:   message,
			temporary: false,
		},
		Timeout: timeout,
	}
}

func NewConfigurationError(field string, value interface{}, message string) error {
	return &ConfigurationError{
		schedulerError: schedulerError{
			code:      ErrInvalidConfiguration,
			message:   fmt.Sprintf("invalid configuration for field %s (value: %v): %s", field, value, message),
			temporary: false,
		},
		Field: field,
		Value: value,
	}
}

// Error classification helpers
func IsTemporaryError(err error) bool {
	if schedErr, ok := err.(SchedulerError); ok {
		return schedErr.Temporary()
	}
	return false
}

func IsConfigurationError(err error) bool {
	if schedErr, ok := err.(SchedulerError); ok {
		return schedErr.Code() == ErrInvalidConfiguration
	}
	return false
}
