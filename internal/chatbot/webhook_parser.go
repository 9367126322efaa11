package chatbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrUnsupportedUpdate marks updates the bot does not act on (edits,
// channel posts, service messages).
var ErrUnsupportedUpdate = errors.New("unsupported update")

// WebhookParser provides utilities for parsing Telegram webhook updates
type WebhookParser struct{}

// NewWebhookParser creates a new WebhookParser instance
func NewWebhookParser() *WebhookParser {
	return &WebhookParser{}
}

// topicFields are forum fields the client library does not decode
type topicFields struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		MessageThreadID int  `json:"message_thread_id"`
		IsTopicMessage  bool `json:"is_topic_message"`
	} `json:"message"`
}

// ParseUpdate unmarshals webhook data into a Telegram Update struct
func (p *WebhookParser) ParseUpdate(updateData []byte) (*tgbotapi.Update, error) {
	if len(updateData) == 0 {
		return nil, fmt.Errorf("empty update data")
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(updateData, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update data: %w", err)
	}

	if update.UpdateID == 0 {
		return nil, fmt.Errorf("invalid update: missing update ID")
	}

	return &update, nil
}

// UpdateID reads only the update id, so a poller can advance past updates
// it cannot otherwise parse.
func (p *WebhookParser) UpdateID(updateData []byte) (int, error) {
	var peek topicFields
	if err := json.Unmarshal(updateData, &peek); err != nil {
		return 0, err
	}
	return peek.UpdateID, nil
}

// Parse turns raw update JSON into an Incoming message. The forum topic id
// is read from the raw JSON and kept only for real topic messages.
func (p *WebhookParser) Parse(updateData []byte) (*Incoming, error) {
	update, err := p.ParseUpdate(updateData)
	if err != nil {
		return nil, WrapParsingError(err, "telegram_update")
	}

	in, err := p.ExtractMessage(update)
	if err != nil {
		return nil, err
	}

	var peek topicFields
	if err := json.Unmarshal(updateData, &peek); err != nil {
		return nil, WrapParsingError(err, "message_thread_id")
	}
	if peek.Message != nil && peek.Message.IsTopicMessage {
		in.ThreadID = peek.Message.MessageThreadID
	}

	return in, nil
}

// ExtractMessage converts a Telegram message to an Incoming
func (p *WebhookParser) ExtractMessage(update *tgbotapi.Update) (*Incoming, error) {
	if update == nil {
		return nil, fmt.Errorf("update is nil")
	}

	msg := update.Message
	if msg == nil {
		return nil, ErrUnsupportedUpdate
	}
	if msg.From == nil || msg.Chat == nil {
		return nil, ErrUnsupportedUpdate
	}

	in := &Incoming{
		UpdateID:  update.UpdateID,
		MessageID: msg.MessageID,
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		Type:      p.DetermineMessageType(msg),
		Text:      msg.Text,
		Timestamp: time.Unix(int64(msg.Date), 0),
	}

	switch in.Type {
	case MessageTypeCommand:
		command, err := p.ExtractCommand(msg)
		if err != nil {
			return nil, err
		}
		in.Command = command
		in.Args = msg.CommandArguments()
	case MessageTypeLocation:
		in.Location = &Location{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	}

	return in, nil
}

// DetermineMessageType classifies the message type
func (p *WebhookParser) DetermineMessageType(msg *tgbotapi.Message) MessageType {
	if msg.Location != nil {
		return MessageTypeLocation
	}
	if msg.IsCommand() {
		return MessageTypeCommand
	}
	return MessageTypeText
}

// ExtractCommand parses bot commands from messages. A trailing @botname is
// already stripped by the library.
func (p *WebhookParser) ExtractCommand(message *tgbotapi.Message) (Command, error) {
	if message == nil {
		return "", fmt.Errorf("message is nil")
	}

	if !message.IsCommand() {
		return "", fmt.Errorf("message is not a command")
	}

	command := Command("/" + message.Command())
	if !command.IsValid() {
		return "", fmt.Errorf("unknown command %s: %w", command, ErrUnsupportedUpdate)
	}
	return command, nil
}

// BuildCorrelationID generates a unique correlation ID for tracking
func (p *WebhookParser) BuildCorrelationID(in *Incoming) string {
	if in == nil {
		return fmt.Sprintf("corr_%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("msg_%d_%d_%d", in.UpdateID, in.MessageID, time.Now().Unix())
}
