//go:build test || integration

package chatbot

import (
	"encoding/json"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StubTelegramProvider is an in-memory TelegramProvider for end-to-end tests
type StubTelegramProvider struct {
	mu      sync.Mutex
	nextID  int
	sent    []SentMessage
	deleted []DeletedMessage
	updates []json.RawMessage
}

// SentMessage represents a message sent through the stub provider for verification
type SentMessage struct {
	MessageID int
	ChatID    int64
	ThreadID  int
	Text      string
	Markup    interface{}
}

// DeletedMessage is one DeleteMessage call
type DeletedMessage struct {
	ChatID    int64
	MessageID int
}

// NewStubTelegramProvider creates a stub whose message ids start at 1000
func NewStubTelegramProvider() *StubTelegramProvider {
	return &StubTelegramProvider{nextID: 1000}
}

func (s *StubTelegramProvider) SendMessage(chatID int64, threadID int, text string) (int, error) {
	return s.SendMessageWithMarkup(chatID, threadID, text, nil)
}

func (s *StubTelegramProvider) SendMessageWithMarkup(chatID int64, threadID int, text string, markup interface{}) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.sent = append(s.sent, SentMessage{MessageID: s.nextID, ChatID: chatID, ThreadID: threadID, Text: text, Markup: markup})
	return s.nextID, nil
}

func (s *StubTelegramProvider) DeleteMessage(chatID int64, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, DeletedMessage{ChatID: chatID, MessageID: messageID})
	return nil
}

// QueueUpdate makes raw available to the next GetUpdates call
func (s *StubTelegramProvider) QueueUpdate(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, json.RawMessage(raw))
}

func (s *StubTelegramProvider) GetUpdates(offset, timeout int) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.updates
	s.updates = nil
	return out, nil
}

func (s *StubTelegramProvider) SetWebhook(string) error { return nil }

func (s *StubTelegramProvider) DeleteWebhook() error { return nil }

func (s *StubTelegramProvider) GetMe() (*tgbotapi.User, error) {
	return &tgbotapi.User{ID: 1, IsBot: true, UserName: "stub_bot"}, nil
}

// SentMessages returns a copy of everything sent so far
func (s *StubTelegramProvider) SentMessages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.sent...)
}

// DeletedMessages returns a copy of every deletion so far
func (s *StubTelegramProvider) DeletedMessages() []DeletedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeletedMessage(nil), s.deleted...)
}
