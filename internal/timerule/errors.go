package timerule

import (
	"errors"
	"fmt"
)

// ErrInvalidRule is matched by every rule validation failure.
var ErrInvalidRule = errors.New("invalid time rule")

// InvalidRuleError describes which part of a rule failed validation
type InvalidRuleError struct {
	Field      string
	Value      interface{}
	ErrMessage string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid time rule field '%s': %s (value: %v)", e.Field, e.ErrMessage, e.Value)
}

func (e *InvalidRuleError) Code() string {
	return "INVALID_RULE"
}

func (e *InvalidRuleError) Message() string {
	return e.ErrMessage
}

func (e *InvalidRuleError) Temporary() bool {
	return false
}

// Is lets errors.Is(err, ErrInvalidRule) match any InvalidRuleError.
func (e *InvalidRuleError) Is(target error) bool {
	return target == ErrInvalidRule
}

// NewInvalidRuleError creates a new InvalidRuleError
func NewInvalidRuleError(field string, value interface{}, message string) error {
	return &InvalidRuleError{
		Field:      field,
		Value:      value,
		ErrMessage: message,
	}
}
