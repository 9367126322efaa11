package chatbot

import (
	"time"
)

// Command represents supported bot commands
type Command string

const (
	CommandStart      Command = "/start"
	CommandHelp       Command = "/help"
	CommandAdd        Command = "/add"
	CommandList       Command = "/list"
	CommandDelete     Command = "/delete"
	CommandAddUser    Command = "/adduser"
	CommandRemoveUser Command = "/removeuser"
)

// IsValid checks if the command is one the bot answers
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandHelp, CommandAdd, CommandList, CommandDelete, CommandAddUser, CommandRemoveUser:
		return true
	default:
		return false
	}
}

// MessageType represents the kind of incoming message
type MessageType string

const (
	MessageTypeCommand  MessageType = "command"
	MessageTypeLocation MessageType = "location"
	MessageTypeText     MessageType = "text"
)

// Location is a shared geographic point
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Incoming is one user message reduced to what the bot acts on
type Incoming struct {
	UpdateID  int         `json:"update_id"`
	MessageID int         `json:"message_id"`
	UserID    int64       `json:"user_id"`
	ChatID    int64       `json:"chat_id"`
	ThreadID  int         `json:"thread_id,omitempty"`
	Type      MessageType `json:"type"`
	Command   Command     `json:"command,omitempty"`
	// Args is the raw text after the command, spacing preserved.
	Args      string    `json:"args,omitempty"`
	Text      string    `json:"text,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Reply is what the bot answers with
type Reply struct {
	Text string
	// Markup is a Telegram reply_markup value, nil for none.
	Markup interface{}
	// Persistent replies are kept even when self-cleanup is on.
	Persistent bool
}

// IsEmpty reports whether there is nothing to send
func (r Reply) IsEmpty() bool {
	return r.Text == ""
}
