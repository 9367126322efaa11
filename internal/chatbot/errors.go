package chatbot

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatbotError defines the interface for chatbot-specific errors
type ChatbotError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// TelegramAPIError is a failed Bot API call. StatusCode is zero when the
// request never got an answer.
type TelegramAPIError struct {
	Operation   string
	StatusCode  int
	APIError    string
	Description string
	RetryAfter  int
}

func (e TelegramAPIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("telegram %s: %s", e.Operation, e.Description)
	}
	return fmt.Sprintf("telegram %s rejected with %d: %s", e.Operation, e.StatusCode, e.Description)
}

func (e TelegramAPIError) Code() string {
	return "TELEGRAM_API_ERROR"
}

func (e TelegramAPIError) Message() string {
	return e.Description
}

func (e TelegramAPIError) Temporary() bool {
	return e.APIError == codeNetwork ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError ||
		e.RetryAfter > 0
}

// RetryDelay is the wait Telegram asked for, zero when it gave none
func (e TelegramAPIError) RetryDelay() time.Duration {
	return time.Duration(e.RetryAfter) * time.Second
}

// WebhookParsingError represents errors when parsing webhook data
type WebhookParsingError struct {
	UpdateType string
	Details    string
	Cause      error
}

func (e WebhookParsingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("webhook parsing error for %s: %s (caused by: %v)", e.UpdateType, e.Details, e.Cause)
	}
	return fmt.Sprintf("webhook parsing error for %s: %s", e.UpdateType, e.Details)
}

func (e WebhookParsingError) Code() string {
	return "WEBHOOK_PARSING_ERROR"
}

func (e WebhookParsingError) Message() string {
	return e.Details
}

func (e WebhookParsingError) Temporary() bool {
	return false
}

func (e WebhookParsingError) Unwrap() error {
	return e.Cause
}

// CommandProcessingError represents errors during command execution
type CommandProcessingError struct {
	Command string
	Reason  string
	UserID  int64
	ChatID  int64
	Cause   error
}

func (e CommandProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command processing error for %s: %s (caused by: %v)", e.Command, e.Reason, e.Cause)
	}
	return fmt.Sprintf("command processing error for %s: %s", e.Command, e.Reason)
}

func (e CommandProcessingError) Code() string {
	return "COMMAND_PROCESSING_ERROR"
}

func (e CommandProcessingError) Message() string {
	return e.Reason
}

func (e CommandProcessingError) Temporary() bool {
	return false
}

func (e CommandProcessingError) Unwrap() error {
	return e.Cause
}

// ConfigurationError represents invalid bot configuration
type ConfigurationError struct {
	Field  string
	Reason string
	Value  string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field %s: %s (value: %s)", e.Field, e.Reason, e.Value)
}

func (e ConfigurationError) Code() string {
	return "CONFIGURATION_ERROR"
}

func (e ConfigurationError) Message() string {
	return e.Reason
}

func (e ConfigurationError) Temporary() bool {
	return false
}

const (
	codeNetwork  = "NETWORK_ERROR"
	codeEncoding = "ENCODING_ERROR"
)

// WrapTelegramError marks a request or response that could not be encoded
// or decoded locally. Such errors are never temporary.
func WrapTelegramError(err error, operation string) error {
	if err == nil {
		return nil
	}

	return TelegramAPIError{
		Operation:   operation,
		APIError:    codeEncoding,
		Description: err.Error(),
	}
}

// toAPIError keeps the status and retry hint of a Bot API rejection. Anything
// that is not a rejection failed on the way and is reported as a network error.
func toAPIError(operation string, err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return TelegramAPIError{
			Operation:   operation,
			APIError:    codeNetwork,
			Description: err.Error(),
		}
	}

	return TelegramAPIError{
		Operation:   operation,
		StatusCode:  apiErr.Code,
		APIError:    telegramErrorCode(apiErr.Code),
		Description: apiErr.Message,
		RetryAfter:  apiErr.RetryAfter,
	}
}

// WrapParsingError wraps an error as a WebhookParsingError
func WrapParsingError(err error, updateType string) error {
	if err == nil {
		return nil
	}

	return WebhookParsingError{
		UpdateType: updateType,
		Details:    "failed to parse webhook data",
		Cause:      err,
	}
}

// NewCommandError creates a new CommandProcessingError
func NewCommandError(command Command, reason string, userID, chatID int64, cause error) error {
	return CommandProcessingError{
		Command: string(command),
		Reason:  reason,
		UserID:  userID,
		ChatID:  chatID,
		Cause:   cause,
	}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field, reason, value string) error {
	return ConfigurationError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// IsTemporaryError determines if an error is temporary
func IsTemporaryError(err error) bool {
	var chatbotErr ChatbotError
	if errors.As(err, &chatbotErr) {
		return chatbotErr.Temporary()
	}
	return false
}

// IsConfigurationError determines if an error is configuration-related
func IsConfigurationError(err error) bool {
	var cfgErr ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsTelegramAPIError determines if an error is from Telegram API
func IsTelegramAPIError(err error) bool {
	var apiErr TelegramAPIError
	return errors.As(err, &apiErr)
}

// IsWebhookParsingError determines if an error is from webhook parsing
func IsWebhookParsingError(err error) bool {
	var parseErr WebhookParsingError
	return errors.As(err, &parseErr)
}

// 409 means another consumer holds getUpdates, usually a webhook still set
var telegramErrorCodes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusConflict:            "CONFLICT",
	http.StatusTooManyRequests:     "TOO_MANY_REQUESTS",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	http.StatusBadGateway:          "BAD_GATEWAY",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
	http.StatusGatewayTimeout:      "GATEWAY_TIMEOUT",
}

func telegramErrorCode(statusCode int) string {
	if code, exists := telegramErrorCodes[statusCode]; exists {
		return code
	}
	return "UNKNOWN_ERROR"
}
