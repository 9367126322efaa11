package chatbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandUpdate(updateID int, text string, commandLen int, extra string) []byte {
	return []byte(fmt.Sprintf(`{
		"update_id": %d,
		"message": {
			"message_id": 77,
			"date": 1714900000,
			"from": {"id": 42, "is_bot": false, "first_name": "Ann"},
			"chat": {"id": -1001, "type": "supergroup"},
			"text": %q,
			"entities": [{"type": "bot_command", "offset": 0, "length": %d}]%s
		}
	}`, updateID, text, commandLen, extra))
}

func TestWebhookParser_ParseCommand(t *testing.T) {
	p := NewWebhookParser()

	in, err := p.Parse(commandUpdate(10, "/add вторник 09:00 planning  call", 4, ""))
	require.NoError(t, err)

	assert.Equal(t, 10, in.UpdateID)
	assert.Equal(t, 77, in.MessageID)
	assert.Equal(t, int64(42), in.UserID)
	assert.Equal(t, int64(-1001), in.ChatID)
	assert.Equal(t, MessageTypeCommand, in.Type)
	assert.Equal(t, CommandAdd, in.Command)
	assert.Equal(t, "вторник 09:00 planning  call", in.Args)
	assert.Zero(t, in.ThreadID)
	assert.Equal(t, int64(1714900000), in.Timestamp.Unix())
}

func TestWebhookParser_CommandAddressedToBot(t *testing.T) {
	in, err := NewWebhookParser().Parse(commandUpdate(11, "/list@remind_bot", 16, ""))
	require.NoError(t, err)
	assert.Equal(t, CommandList, in.Command)
	assert.Empty(t, in.Args)
}

func TestWebhookParser_ThreadID(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		want  int
	}{
		{
			name:  "forum topic message",
			extra: `, "message_thread_id": 5, "is_topic_message": true`,
			want:  5,
		},
		{
			name:  "reply thread outside a forum",
			extra: `, "message_thread_id": 9`,
			want:  0,
		},
		{
			name: "no thread",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewWebhookParser().Parse(commandUpdate(12, "/list", 5, tt.extra))
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.ThreadID)
		})
	}
}

func TestWebhookParser_ParseLocation(t *testing.T) {
	raw := []byte(`{
		"update_id": 13,
		"message": {
			"message_id": 3,
			"date": 1714900000,
			"from": {"id": 42, "is_bot": false, "first_name": "Ann"},
			"chat": {"id": 42, "type": "private"},
			"location": {"latitude": 55.75, "longitude": 37.62}
		}
	}`)

	in, err := NewWebhookParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeLocation, in.Type)
	require.NotNil(t, in.Location)
	assert.InDelta(t, 55.75, in.Location.Latitude, 1e-9)
	assert.InDelta(t, 37.62, in.Location.Longitude, 1e-9)
}

func TestWebhookParser_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "edited message",
			raw:  `{"update_id": 14, "edited_message": {"message_id": 1, "date": 1, "chat": {"id": 1, "type": "private"}}}`,
		},
		{
			name: "channel post without sender",
			raw:  `{"update_id": 15, "message": {"message_id": 1, "date": 1, "chat": {"id": -5, "type": "channel"}, "text": "hi"}}`,
		},
		{
			name: "unknown command",
			raw:  string(commandUpdate(16, "/weather", 8, "")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWebhookParser().Parse([]byte(tt.raw))
			assert.True(t, errors.Is(err, ErrUnsupportedUpdate), "got %v", err)
		})
	}
}

func TestWebhookParser_Malformed(t *testing.T) {
	p := NewWebhookParser()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "{oops"},
		{name: "missing update id", raw: `{"message": {"message_id": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, IsWebhookParsingError(err))
		})
	}
}

func TestWebhookParser_UpdateID(t *testing.T) {
	p := NewWebhookParser()

	id, err := p.UpdateID(json.RawMessage(`{"update_id": 99, "poll": {}}`))
	require.NoError(t, err)
	assert.Equal(t, 99, id)

	_, err = p.UpdateID(json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestWebhookParser_PlainText(t *testing.T) {
	raw := []byte(`{
		"update_id": 17,
		"message": {
			"message_id": 4,
			"date": 1714900000,
			"from": {"id": 42, "is_bot": false, "first_name": "Ann"},
			"chat": {"id": 42, "type": "private"},
			"text": "hello"
		}
	}`)

	in, err := NewWebhookParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeText, in.Type)
	assert.Equal(t, "hello", in.Text)
	assert.Empty(t, in.Command)
}
