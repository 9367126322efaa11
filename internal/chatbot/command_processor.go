package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"remindbot/internal/common"
	"remindbot/internal/reminder"
	"remindbot/internal/timerule"
	"remindbot/internal/user"

	"go.uber.org/zap"
)

// TimezoneResolver maps a shared location to an IANA timezone name
type TimezoneResolver interface {
	TimezoneFor(lat, lng float64) string
}

// CommandProcessor turns incoming messages into replies
type CommandProcessor struct {
	reminders reminder.Service
	access    user.AccessService
	resolver  TimezoneResolver
	texts     Texts
	keyboards *KeyboardBuilder
	logger    *zap.Logger
}

// NewCommandProcessor creates a new CommandProcessor instance
func NewCommandProcessor(reminders reminder.Service, access user.AccessService, resolver TimezoneResolver, texts Texts, logger *zap.Logger) *CommandProcessor {
	return &CommandProcessor{
		reminders: reminders,
		access:    access,
		resolver:  resolver,
		texts:     texts,
		keyboards: NewKeyboardBuilder(),
		logger:    logger,
	}
}

// Process answers one incoming message. An error is returned only for
// failures the user cannot fix; the reply then carries a generic apology.
func (cp *CommandProcessor) Process(ctx context.Context, in *Incoming) (Reply, error) {
	switch in.Type {
	case MessageTypeLocation:
		return cp.ProcessLocation(ctx, in)
	case MessageTypeCommand:
		return cp.processCommand(ctx, in)
	default:
		return Reply{}, nil
	}
}

func (cp *CommandProcessor) processCommand(ctx context.Context, in *Incoming) (Reply, error) {
	cp.logger.Info("Processing command",
		zap.String("command", string(in.Command)),
		zap.Int64("user_id", in.UserID),
		zap.Int64("chat_id", in.ChatID))

	switch in.Command {
	case CommandStart:
		return cp.ProcessStartCommand(ctx, in)
	case CommandHelp:
		return Reply{Text: cp.texts.Help, Persistent: true}, nil
	case CommandAdd:
		return cp.withAccess(ctx, in, cp.ProcessAddCommand)
	case CommandList:
		return cp.withAccess(ctx, in, cp.ProcessListCommand)
	case CommandDelete:
		return cp.withAccess(ctx, in, cp.ProcessDeleteCommand)
	case CommandAddUser:
		return cp.ProcessAddUserCommand(ctx, in)
	case CommandRemoveUser:
		return cp.ProcessRemoveUserCommand(ctx, in)
	default:
		return Reply{}, nil
	}
}

type handler func(ctx context.Context, in *Incoming) (Reply, error)

func (cp *CommandProcessor) withAccess(ctx context.Context, in *Incoming, next handler) (Reply, error) {
	allowed, err := cp.access.IsAllowed(ctx, in.UserID)
	if err != nil {
		return cp.internalError(in, "access check failed", err)
	}
	if !allowed {
		return Reply{Text: cp.texts.AccessDenied}, nil
	}
	return next(ctx, in)
}

// ProcessStartCommand asks for a location until the user has a timezone
func (cp *CommandProcessor) ProcessStartCommand(ctx context.Context, in *Incoming) (Reply, error) {
	_, ok, err := cp.reminders.Timezone(ctx, in.UserID)
	if err != nil {
		return cp.internalError(in, "timezone lookup failed", err)
	}
	if ok {
		return Reply{Text: cp.texts.WelcomeBack}, nil
	}
	return Reply{
		Text:       cp.texts.AskLocation,
		Markup:     cp.keyboards.BuildLocationRequest(cp.texts.LocationButton),
		Persistent: true,
	}, nil
}

// ProcessLocation stores the timezone at the shared location
func (cp *CommandProcessor) ProcessLocation(ctx context.Context, in *Incoming) (Reply, error) {
	if in.Location == nil {
		return Reply{}, nil
	}

	tz := cp.resolver.TimezoneFor(in.Location.Latitude, in.Location.Longitude)
	if err := cp.reminders.SetTimezone(ctx, in.UserID, tz); err != nil {
		return cp.internalError(in, "storing timezone failed", err)
	}

	cp.logger.Info("Timezone resolved from location",
		zap.Int64("user_id", in.UserID),
		zap.String("timezone", tz))

	return Reply{
		Text:   fmt.Sprintf(cp.texts.TimezoneSet, tz),
		Markup: cp.keyboards.RemoveKeyboard(),
	}, nil
}

// ProcessAddCommand handles /add <day> <HH:MM> <text>
func (cp *CommandProcessor) ProcessAddCommand(ctx context.Context, in *Incoming) (Reply, error) {
	dayArg, rest := nextField(in.Args)
	timeArg, rest := nextField(rest)
	text := strings.TrimSpace(rest)
	if dayArg == "" || timeArg == "" || text == "" {
		return Reply{Text: cp.texts.AddUsage}, nil
	}

	day, err := timerule.ParseWeekday(dayArg, DayAliases)
	if err != nil {
		return Reply{Text: cp.texts.BadDay}, nil
	}
	at, err := timerule.ParseTimeOfDay(timeArg)
	if err != nil {
		return Reply{Text: cp.texts.BadTime}, nil
	}

	created, err := cp.reminders.Add(ctx, reminder.NewReminder{
		OwnerID:  in.UserID,
		ChatID:   in.ChatID,
		ThreadID: in.ThreadID,
		Day:      day,
		At:       at,
		Text:     text,
	})
	switch {
	case err == nil:
	case reminder.IsForeignKeyViolation(err):
		return Reply{Text: cp.texts.AccessDenied}, nil
	case errors.Is(err, timerule.ErrInvalidRule):
		return Reply{Text: cp.texts.BadTime}, nil
	case reminder.IsValidationError(err):
		return Reply{Text: cp.texts.BadText}, nil
	default:
		return cp.internalError(in, "adding reminder failed", err)
	}

	return Reply{Text: fmt.Sprintf(cp.texts.Added, created.ID, created.Timezone)}, nil
}

// ProcessListCommand lists the user's reminders in this chat
func (cp *CommandProcessor) ProcessListCommand(ctx context.Context, in *Incoming) (Reply, error) {
	listed, err := cp.reminders.List(ctx, in.UserID, in.ChatID)
	if err != nil {
		return cp.internalError(in, "listing reminders failed", err)
	}
	if len(listed) == 0 {
		return Reply{Text: cp.texts.NoReminders}, nil
	}

	lines := make([]string, 0, len(listed)+1)
	lines = append(lines, cp.texts.ListHeader)
	for _, r := range listed {
		lines = append(lines, cp.texts.ListLine(r.ID, r.Day, r.At, r.Text, r.Next))
	}
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

// ProcessDeleteCommand handles /delete <id>
func (cp *CommandProcessor) ProcessDeleteCommand(ctx context.Context, in *Incoming) (Reply, error) {
	arg, _ := nextField(in.Args)
	id, err := common.ParseID("id", arg)
	if err != nil {
		return Reply{Text: cp.texts.DeleteUsage}, nil
	}

	deleted, err := cp.reminders.Delete(ctx, id, in.UserID, in.ChatID)
	if err != nil {
		return cp.internalError(in, "deleting reminder failed", err)
	}
	if !deleted {
		return Reply{Text: cp.texts.NotFound}, nil
	}
	return Reply{Text: fmt.Sprintf(cp.texts.Deleted, id)}, nil
}

// ProcessAddUserCommand handles /adduser <user_id>. Non-admins get no answer.
func (cp *CommandProcessor) ProcessAddUserCommand(ctx context.Context, in *Incoming) (Reply, error) {
	if !cp.access.IsAdmin(in.UserID) {
		return Reply{}, nil
	}

	arg, _ := nextField(in.Args)
	target, err := common.ParseID("user_id", arg)
	if err != nil {
		return Reply{Text: cp.texts.AddUserUsage}, nil
	}

	added, err := cp.access.AddUser(ctx, in.UserID, target)
	if err != nil {
		return cp.internalError(in, "adding user failed", err)
	}
	if !added {
		return Reply{Text: fmt.Sprintf(cp.texts.UserAlreadyAllowed, target)}, nil
	}
	return Reply{Text: fmt.Sprintf(cp.texts.UserAdded, target)}, nil
}

// ProcessRemoveUserCommand handles /removeuser <user_id>. Non-admins get no answer.
func (cp *CommandProcessor) ProcessRemoveUserCommand(ctx context.Context, in *Incoming) (Reply, error) {
	if !cp.access.IsAdmin(in.UserID) {
		return Reply{}, nil
	}

	arg, _ := nextField(in.Args)
	target, err := common.ParseID("user_id", arg)
	if err != nil {
		return Reply{Text: cp.texts.RemoveUserUsage}, nil
	}

	removal, err := cp.access.RemoveUser(ctx, in.UserID, target)
	switch {
	case err == nil:
	case errors.Is(err, user.ErrProtectedUser):
		return Reply{Text: cp.texts.CannotRemoveAdmin}, nil
	default:
		return cp.internalError(in, "removing user failed", err)
	}

	if !removal.Removed {
		return Reply{Text: fmt.Sprintf(cp.texts.UserNotFound, target)}, nil
	}
	return Reply{Text: fmt.Sprintf(cp.texts.UserRemoved, target)}, nil
}

func (cp *CommandProcessor) internalError(in *Incoming, reason string, err error) (Reply, error) {
	return Reply{Text: cp.texts.InternalError}, NewCommandError(in.Command, reason, in.UserID, in.ChatID, err)
}

// nextField splits off the first whitespace-separated field; rest keeps its
// inner spacing.
func nextField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
