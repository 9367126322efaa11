package reminder

import (
	"errors"
	"fmt"
)

// Error codes for the reminder module
const (
	ErrCodeForeignKey        = "FOREIGN_KEY_VIOLATION"
	ErrCodeRepository        = "REPOSITORY_ERROR"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeSchedulingFailed  = "SCHEDULING_FAILED"
	ErrCodeAlreadyRehydrated = "ALREADY_REHYDRATED"
)

var (
	// ErrForeignKeyViolation is returned when a reminder's owner is not on the allow-list
	ErrForeignKeyViolation = errors.New("reminder owner is not an allowed user")
	// ErrAlreadyRehydrated is returned by a second Rehydrator.Run in one process
	ErrAlreadyRehydrated = errors.New("reminders already rehydrated")
	// ErrInvalidTimezone is returned for timezone names the tz database does not know
	ErrInvalidTimezone = errors.New("unknown timezone")
)

// ReminderError interface for reminder-specific errors
type ReminderError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// ValidationError represents a rejected reminder definition
type ValidationError struct {
	Field      string
	Value      interface{}
	ErrMessage string
	Cause      error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("reminder validation failed for field '%s': %s (value: %v)", e.Field, e.ErrMessage, e.Value)
}

func (e ValidationError) Code() string {
	return ErrCodeValidationFailed
}

func (e ValidationError) Message() string {
	return e.ErrMessage
}

func (e ValidationError) Temporary() bool {
	return false
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// SchedulingError reports a stored reminder whose trigger could not be armed
type SchedulingError struct {
	ReminderID int64
	Cause      error
}

func (e SchedulingError) Error() string {
	return fmt.Sprintf("failed to arm trigger for reminder %d: %v", e.ReminderID, e.Cause)
}

func (e SchedulingError) Code() string {
	return ErrCodeSchedulingFailed
}

func (e SchedulingError) Message() string {
	return "failed to arm trigger"
}

func (e SchedulingError) Temporary() bool {
	return false
}

func (e SchedulingError) Unwrap() error {
	return e.Cause
}

// RepositoryError represents database operation failures
type RepositoryError struct {
	Operation string
	Details   string
	Cause     error
}

func (e RepositoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repository error during %s: %s (caused by: %v)", e.Operation, e.Details, e.Cause)
	}
	return fmt.Sprintf("repository error during %s: %s", e.Operation, e.Details)
}

func (e RepositoryError) Code() string {
	return ErrCodeRepository
}

func (e RepositoryError) Message() string {
	return e.Details
}

// Temporary is true: store failures are transient from the caller's view
func (e RepositoryError) Temporary() bool {
	return true
}

func (e RepositoryError) Unwrap() error {
	return e.Cause
}

// WrapRepositoryError wraps an error as a RepositoryError
func WrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return RepositoryError{
		Operation: operation,
		Details:   "database operation failed",
		Cause:     err,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) error {
	return ValidationError{
		Field:      field,
		Value:      value,
		ErrMessage: message,
	}
}

// IsTemporaryError checks if the error is temporary and can be retried
func IsTemporaryError(err error) bool {
	var rErr ReminderError
	if errors.As(err, &rErr) {
		return rErr.Temporary()
	}
	return false
}

// IsValidationError checks if the error is a rejected definition
func IsValidationError(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}
