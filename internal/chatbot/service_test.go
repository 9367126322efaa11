package chatbot_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"remindbot/internal/chatbot"
	"remindbot/internal/config"
	"remindbot/internal/mocks"
	"remindbot/internal/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type routerFixture struct {
	provider  *mocks.MockTelegramProvider
	cleaner   *mocks.MockReplyCleaner
	reminders *mocks.MockService
	access    *mocks.MockAccessService
	service   chatbot.ChatbotService
}

func newRouterFixture(t *testing.T, withCleaner bool) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &routerFixture{
		provider:  mocks.NewMockTelegramProvider(ctrl),
		cleaner:   mocks.NewMockReplyCleaner(ctrl),
		reminders: mocks.NewMockService(ctrl),
		access:    mocks.NewMockAccessService(ctrl),
	}

	processor := chatbot.NewCommandProcessor(f.reminders, f.access, fixedResolver("UTC"), chatbot.TextsFor("en"), zap.NewNop())
	var cleaner chatbot.ReplyCleaner
	if withCleaner {
		cleaner = f.cleaner
	}
	f.service = chatbot.NewChatbotService(f.provider, processor, cleaner, zap.NewNop(), config.ChatbotConfig{Timeout: 1})
	return f
}

func rawCommand(updateID int, userID int64, text string, commandLen int, extra string) string {
	return fmt.Sprintf(`{
		"update_id": %d,
		"message": {
			"message_id": 77,
			"date": 1714900000,
			"from": {"id": %d, "is_bot": false, "first_name": "Ann"},
			"chat": {"id": -100, "type": "supergroup"},
			"text": %q,
			"entities": [{"type": "bot_command", "offset": 0, "length": %d}]%s
		}
	}`, updateID, userID, text, commandLen, extra)
}

func TestChatbotService_HelpIsNotCleanedUp(t *testing.T) {
	f := newRouterFixture(t, true)

	f.provider.EXPECT().SendMessage(int64(-100), 0, chatbot.TextsFor("en").Help).Return(500, nil)
	f.cleaner.EXPECT().ScheduleDeletion(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, f.service.HandleWebhook(context.Background(), []byte(rawCommand(1, memberID, "/help", 5, ""))))
}

func TestChatbotService_RepliesAreCleanedUp(t *testing.T) {
	f := newRouterFixture(t, true)

	f.access.EXPECT().IsAllowed(gomock.Any(), memberID).Return(true, nil)
	f.reminders.EXPECT().List(gomock.Any(), memberID, int64(-100)).Return([]reminder.Scheduled{}, nil)
	f.provider.EXPECT().SendMessage(int64(-100), 5, "No reminders.").Return(500, nil)
	f.cleaner.EXPECT().ScheduleDeletion(int64(-100), 500)
	f.cleaner.EXPECT().ScheduleDeletion(int64(-100), 77)

	raw := rawCommand(2, memberID, "/list", 5, `, "message_thread_id": 5, "is_topic_message": true`)
	require.NoError(t, f.service.HandleWebhook(context.Background(), []byte(raw)))
}

func TestChatbotService_NoCleanerKeepsReplies(t *testing.T) {
	f := newRouterFixture(t, false)

	f.access.EXPECT().IsAllowed(gomock.Any(), strangerID).Return(false, nil)
	f.provider.EXPECT().SendMessage(int64(-100), 0, "Access denied.").Return(500, nil)

	require.NoError(t, f.service.HandleWebhook(context.Background(), []byte(rawCommand(3, strangerID, "/list", 5, ""))))
}

func TestChatbotService_StartSendsKeyboard(t *testing.T) {
	f := newRouterFixture(t, true)

	f.reminders.EXPECT().Timezone(gomock.Any(), memberID).Return("", false, nil)
	f.provider.EXPECT().
		SendMessageWithMarkup(int64(-100), 0, chatbot.TextsFor("en").AskLocation, gomock.Any()).
		Return(501, nil)

	require.NoError(t, f.service.HandleWebhook(context.Background(), []byte(rawCommand(4, memberID, "/start", 6, ""))))
}

func TestChatbotService_SilentCommandsSendNothing(t *testing.T) {
	f := newRouterFixture(t, true)

	f.access.EXPECT().IsAdmin(memberID).Return(false)
	f.provider.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, f.service.HandleWebhook(context.Background(), []byte(rawCommand(5, memberID, "/adduser 9", 8, ""))))
}

func TestChatbotService_IgnoresUnsupportedUpdates(t *testing.T) {
	f := newRouterFixture(t, true)

	for _, raw := range []string{
		`{"update_id": 6, "edited_message": {"message_id": 1, "date": 1, "chat": {"id": 1, "type": "private"}}}`,
		rawCommand(7, memberID, "/weather", 8, ""),
	} {
		assert.NoError(t, f.service.HandleWebhook(context.Background(), []byte(raw)))
	}
}

func TestChatbotService_MalformedWebhook(t *testing.T) {
	f := newRouterFixture(t, true)

	err := f.service.HandleWebhook(context.Background(), []byte("{oops"))
	require.Error(t, err)
	assert.True(t, chatbot.IsWebhookParsingError(err))
}

func TestChatbotService_SendFailure(t *testing.T) {
	f := newRouterFixture(t, true)

	sendErr := chatbot.TelegramAPIError{Operation: "send_message", StatusCode: 403, Description: "bot was kicked"}
	f.provider.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, sendErr)
	f.cleaner.EXPECT().ScheduleDeletion(gomock.Any(), gomock.Any()).Times(0)

	err := f.service.HandleWebhook(context.Background(), []byte(rawCommand(8, memberID, "/help", 5, "")))
	assert.ErrorIs(t, err, sendErr)
}

func TestChatbotService_RunPollingAdvancesOffset(t *testing.T) {
	f := newRouterFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batch := []json.RawMessage{
		json.RawMessage(rawCommand(40, memberID, "/help", 5, "")),
		json.RawMessage(`{"update_id": 41, "edited_message": {"message_id": 1, "date": 1, "chat": {"id": 1, "type": "private"}}}`),
		json.RawMessage(`not json`),
	}

	gomock.InOrder(
		f.provider.EXPECT().GetUpdates(0, 1).Return(batch, nil),
		f.provider.EXPECT().GetUpdates(42, 1).DoAndReturn(func(offset, timeout int) ([]json.RawMessage, error) {
			cancel()
			return nil, nil
		}),
	)
	f.provider.EXPECT().SendMessage(int64(-100), 0, gomock.Any()).Return(600, nil)

	done := make(chan error, 1)
	go func() { done <- f.service.RunPolling(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}

func TestChatbotService_RunPollingRetriesAfterError(t *testing.T) {
	f := newRouterFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		f.provider.EXPECT().GetUpdates(0, 1).Return(nil, errors.New("connection reset")),
		f.provider.EXPECT().GetUpdates(0, 1).DoAndReturn(func(offset, timeout int) ([]json.RawMessage, error) {
			cancel()
			return nil, nil
		}),
	)

	done := make(chan error, 1)
	go func() { done <- f.service.RunPolling(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}

func TestChatbotService_RunPollingStopsWhileWaiting(t *testing.T) {
	f := newRouterFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())

	f.provider.EXPECT().GetUpdates(0, 1).DoAndReturn(func(offset, timeout int) ([]json.RawMessage, error) {
		cancel()
		return nil, errors.New("timeout")
	})

	assert.NoError(t, f.service.RunPolling(ctx))
}
