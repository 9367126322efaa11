package chatbot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"remindbot/internal/chatbot"
	"remindbot/internal/common"
	"remindbot/internal/mocks"
	"remindbot/internal/reminder"
	"remindbot/internal/scheduler"
	"remindbot/internal/timerule"
	"remindbot/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	adminID    int64 = 1
	memberID   int64 = 2
	strangerID int64 = 3
	groupChat  int64 = -100
)

type fixedResolver string

func (r fixedResolver) TimezoneFor(lat, lng float64) string { return string(r) }

type processorFixture struct {
	repo      *reminder.MemoryRepository
	engine    *scheduler.Engine
	reminders reminder.Service
	processor *chatbot.CommandProcessor
	texts     chatbot.Texts
}

func newProcessorFixture(t *testing.T) *processorFixture {
	t.Helper()

	logger := zap.NewNop()
	repo := reminder.NewMemoryRepository(chatbot.DayAliases)
	engine := scheduler.NewEngine(logger)
	clock := common.NewMockClock(time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC))
	reminders := reminder.NewService(repo, engine, nil, clock, logger)
	access := user.NewAccessService(repo, []int64{adminID}, nil, logger)

	_, err := access.SyncAdmins(context.Background())
	require.NoError(t, err)
	_, err = repo.AddAllowedUser(context.Background(), memberID)
	require.NoError(t, err)

	texts := chatbot.TextsFor("en")
	return &processorFixture{
		repo:      repo,
		engine:    engine,
		reminders: reminders,
		processor: chatbot.NewCommandProcessor(reminders, access, fixedResolver("Europe/Moscow"), texts, logger),
		texts:     texts,
	}
}

func command(userID int64, cmd chatbot.Command, args string) *chatbot.Incoming {
	return &chatbot.Incoming{
		UserID:  userID,
		ChatID:  groupChat,
		Type:    chatbot.MessageTypeCommand,
		Command: cmd,
		Args:    args,
	}
}

func (f *processorFixture) process(t *testing.T, in *chatbot.Incoming) chatbot.Reply {
	t.Helper()
	reply, err := f.processor.Process(context.Background(), in)
	require.NoError(t, err)
	return reply
}

func TestCommandProcessor_StartAsksForLocationOnce(t *testing.T) {
	f := newProcessorFixture(t)

	reply := f.process(t, command(memberID, chatbot.CommandStart, ""))
	assert.Equal(t, f.texts.AskLocation, reply.Text)
	assert.True(t, reply.Persistent)
	keyboard, ok := reply.Markup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, keyboard.Keyboard[0][0].RequestLocation)

	location := &chatbot.Incoming{
		UserID:   memberID,
		ChatID:   groupChat,
		Type:     chatbot.MessageTypeLocation,
		Location: &chatbot.Location{Latitude: 55.75, Longitude: 37.62},
	}
	reply = f.process(t, location)
	assert.Contains(t, reply.Text, "Europe/Moscow")
	assert.IsType(t, tgbotapi.ReplyKeyboardRemove{}, reply.Markup)

	tz, ok, err := f.reminders.Timezone(context.Background(), memberID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Europe/Moscow", tz)

	reply = f.process(t, command(memberID, chatbot.CommandStart, ""))
	assert.Equal(t, f.texts.WelcomeBack, reply.Text)
	assert.Nil(t, reply.Markup)
}

func TestCommandProcessor_Add(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		args    string
		want    string
		armed   bool
		wantDay timerule.Weekday
	}{
		{name: "russian day name", userID: memberID, args: "вторник 09:00 planning  call", want: "Reminder #1 added (timezone UTC).", armed: true, wantDay: timerule.Tuesday},
		{name: "short day symbol", userID: memberID, args: "fri 18:30 retro", want: "Reminder #1 added (timezone UTC).", armed: true, wantDay: timerule.Friday},
		{name: "admin", userID: adminID, args: "пн 10:00 sync", want: "Reminder #1 added (timezone UTC).", armed: true, wantDay: timerule.Monday},
		{name: "stranger", userID: strangerID, args: "mon 10:00 x", want: "Access denied."},
		{name: "missing text", userID: memberID, args: "mon 10:00", want: "Usage: /add <day> <HH:MM> <text>"},
		{name: "no arguments", userID: memberID, args: "", want: "Usage: /add <day> <HH:MM> <text>"},
		{name: "unknown day", userID: memberID, args: "someday 10:00 x", want: "Unknown day of week."},
		{name: "bad time", userID: memberID, args: "mon 25:00 x", want: "Invalid time format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProcessorFixture(t)

			reply := f.process(t, command(tt.userID, chatbot.CommandAdd, tt.args))
			assert.Equal(t, tt.want, reply.Text)
			assert.False(t, reply.Persistent)
			assert.Equal(t, tt.armed, f.engine.IsArmed(1))

			if tt.armed {
				listed, err := f.reminders.List(context.Background(), tt.userID, groupChat)
				require.NoError(t, err)
				require.Len(t, listed, 1)
				assert.Equal(t, tt.wantDay, listed[0].Day)
			}
		})
	}
}

func TestCommandProcessor_AddKeepsTextSpacing(t *testing.T) {
	f := newProcessorFixture(t)
	f.process(t, command(memberID, chatbot.CommandAdd, "  ср   07:05   water  the plants "))

	listed, err := f.reminders.List(context.Background(), memberID, groupChat)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "water  the plants", listed[0].Text)
	assert.Equal(t, timerule.TimeOfDay{Hour: 7, Minute: 5}, listed[0].At)
}

func TestCommandProcessor_AddKeepsThreadID(t *testing.T) {
	f := newProcessorFixture(t)
	in := command(memberID, chatbot.CommandAdd, "mon 09:00 standup")
	in.ThreadID = 14
	f.process(t, in)

	listed, err := f.reminders.List(context.Background(), memberID, groupChat)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 14, listed[0].ThreadID)
}

func TestCommandProcessor_List(t *testing.T) {
	f := newProcessorFixture(t)

	reply := f.process(t, command(memberID, chatbot.CommandList, ""))
	assert.Equal(t, "No reminders.", reply.Text)

	f.process(t, command(memberID, chatbot.CommandAdd, "tue 09:00 standup"))
	f.process(t, command(memberID, chatbot.CommandAdd, "mon 08:00 gym"))

	reply = f.process(t, command(memberID, chatbot.CommandList, ""))
	assert.Equal(t,
		"Your reminders:\n"+
			"1 — Tuesday, 09:00, standup (06.05 09:00 UTC)\n"+
			"2 — Monday, 08:00, gym (12.05 08:00 UTC)",
		reply.Text)

	reply = f.process(t, command(strangerID, chatbot.CommandList, ""))
	assert.Equal(t, "Access denied.", reply.Text)
}

func TestCommandProcessor_Delete(t *testing.T) {
	f := newProcessorFixture(t)
	f.process(t, command(memberID, chatbot.CommandAdd, "tue 09:00 standup"))

	tests := []struct {
		name   string
		userID int64
		args   string
		want   string
	}{
		{name: "not a number", userID: memberID, args: "abc", want: "Usage: /delete <id>"},
		{name: "missing id", userID: memberID, args: "", want: "Usage: /delete <id>"},
		{name: "someone else's reminder", userID: adminID, args: "1", want: "Reminder not found."},
		{name: "stranger", userID: strangerID, args: "1", want: "Access denied."},
		{name: "owner", userID: memberID, args: "1", want: "Reminder #1 deleted."},
		{name: "already gone", userID: memberID, args: "1", want: "Reminder not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := f.process(t, command(tt.userID, chatbot.CommandDelete, tt.args))
			assert.Equal(t, tt.want, reply.Text)
		})
	}
	assert.False(t, f.engine.IsArmed(1))
}

func TestCommandProcessor_AdminCommands(t *testing.T) {
	f := newProcessorFixture(t)
	f.process(t, command(memberID, chatbot.CommandAdd, "tue 09:00 standup"))

	tests := []struct {
		name   string
		userID int64
		cmd    chatbot.Command
		args   string
		want   string
	}{
		{name: "non-admin add is ignored", userID: memberID, cmd: chatbot.CommandAddUser, args: "7", want: ""},
		{name: "non-admin remove is ignored", userID: memberID, cmd: chatbot.CommandRemoveUser, args: "1", want: ""},
		{name: "add usage", userID: adminID, cmd: chatbot.CommandAddUser, args: "-7", want: "Usage: /adduser <user_id>"},
		{name: "add", userID: adminID, cmd: chatbot.CommandAddUser, args: "7", want: "User 7 added."},
		{name: "add again", userID: adminID, cmd: chatbot.CommandAddUser, args: "7", want: "User 7 is already allowed."},
		{name: "remove usage", userID: adminID, cmd: chatbot.CommandRemoveUser, args: "x", want: "Usage: /removeuser <user_id>"},
		{name: "remove admin", userID: adminID, cmd: chatbot.CommandRemoveUser, args: "1", want: "Admins cannot be removed."},
		{name: "remove unknown", userID: adminID, cmd: chatbot.CommandRemoveUser, args: "99", want: "User 99 not found."},
		{name: "remove member", userID: adminID, cmd: chatbot.CommandRemoveUser, args: "2", want: "User 2 removed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := f.process(t, command(tt.userID, tt.cmd, tt.args))
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, tt.want == "", reply.IsEmpty())
		})
	}

	allowed, err := f.repo.IsAllowedUser(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, allowed)

	// the removed member's reminder is gone from the store
	listed, err := f.reminders.List(context.Background(), memberID, groupChat)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommandProcessor_HelpAndText(t *testing.T) {
	f := newProcessorFixture(t)

	reply := f.process(t, command(strangerID, chatbot.CommandHelp, ""))
	assert.Equal(t, f.texts.Help, reply.Text)
	assert.True(t, reply.Persistent)

	reply = f.process(t, &chatbot.Incoming{UserID: memberID, ChatID: groupChat, Type: chatbot.MessageTypeText, Text: "hello"})
	assert.True(t, reply.IsEmpty())
}

func TestCommandProcessor_StoreFailure(t *testing.T) {
	f := newProcessorFixture(t)
	f.repo.FailOn("list", errors.New("connection reset"))

	reply, err := f.processor.Process(context.Background(), command(memberID, chatbot.CommandList, ""))
	require.Error(t, err)
	assert.Equal(t, f.texts.InternalError, reply.Text)

	var cmdErr chatbot.CommandProcessingError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, memberID, cmdErr.UserID)
}

func TestCommandProcessor_AddMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		wantErr bool
	}{
		{name: "owner not on allow-list", err: reminder.ErrForeignKeyViolation, want: "Access denied."},
		{name: "text rejected", err: reminder.ValidationError{Field: "reminder", ErrMessage: "too long"}, want: "Reminder text is too long."},
		{name: "engine refused", err: reminder.SchedulingError{ReminderID: 4, Cause: errors.New("boom")}, want: "Something went wrong, please try again later.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reminders := mocks.NewMockService(ctrl)
			access := mocks.NewMockAccessService(ctrl)

			access.EXPECT().IsAllowed(gomock.Any(), memberID).Return(true, nil)
			reminders.EXPECT().Add(gomock.Any(), gomock.Any()).Return(reminder.ResolvedReminder{}, tt.err)

			p := chatbot.NewCommandProcessor(reminders, access, fixedResolver("UTC"), chatbot.TextsFor("en"), zap.NewNop())
			reply, err := p.Process(context.Background(), command(memberID, chatbot.CommandAdd, "mon 09:00 x"))
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestCommandProcessor_RussianReplies(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := mocks.NewMockService(ctrl)
	access := mocks.NewMockAccessService(ctrl)

	access.EXPECT().IsAllowed(gomock.Any(), memberID).Return(false, nil)

	p := chatbot.NewCommandProcessor(reminders, access, fixedResolver("UTC"), chatbot.TextsFor("ru"), zap.NewNop())
	reply, err := p.Process(context.Background(), command(memberID, chatbot.CommandList, ""))
	require.NoError(t, err)
	assert.Equal(t, "Доступ запрещён.", reply.Text)
}
