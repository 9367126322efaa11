package chatbot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// KeyboardBuilder provides utilities for creating reply keyboards
type KeyboardBuilder struct{}

// NewKeyboardBuilder creates a new KeyboardBuilder instance
func NewKeyboardBuilder() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

// BuildLocationRequest creates a one-time keyboard with a single button that
// shares the user's location.
func (kb *KeyboardBuilder) BuildLocationRequest(label string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(label),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

// RemoveKeyboard hides a previously shown reply keyboard
func (kb *KeyboardBuilder) RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}
