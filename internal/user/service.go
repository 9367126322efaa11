package user

import (
	"context"
	"fmt"

	"remindbot/internal/common"
	"remindbot/internal/events"
	"remindbot/internal/reminder"

	"go.uber.org/zap"
)

// AccessService decides who may use the bot and maintains the allow-list
type AccessService interface {
	Role(ctx context.Context, userID int64) (Role, error)
	IsAllowed(ctx context.Context, userID int64) (bool, error)
	IsAdmin(userID int64) bool
	AddUser(ctx context.Context, actorID, userID int64) (bool, error)
	RemoveUser(ctx context.Context, actorID, userID int64) (Removal, error)
	SyncAdmins(ctx context.Context) (int, error)
}

type accessService struct {
	allowList reminder.AllowList
	admins    map[int64]struct{}
	publisher *common.EventPublisher
	logger    *zap.Logger
}

// NewAccessService creates an AccessService. Admin ids come from configuration
// and are allowed whether or not they are in the table.
func NewAccessService(allowList reminder.AllowList, adminIDs []int64, eventBus events.EventBus, logger *zap.Logger) AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &accessService{
		allowList: allowList,
		admins:    admins,
		publisher: common.NewEventPublisher(eventBus, logger),
		logger:    logger,
	}
}

func (s *accessService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

func (s *accessService) Role(ctx context.Context, userID int64) (Role, error) {
	if s.IsAdmin(userID) {
		return RoleAdmin, nil
	}
	ok, err := s.allowList.IsAllowedUser(ctx, userID)
	if err != nil {
		return RoleStranger, err
	}
	if ok {
		return RoleAllowed, nil
	}
	return RoleStranger, nil
}

func (s *accessService) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	role, err := s.Role(ctx, userID)
	if err != nil {
		return false, err
	}
	return role != RoleStranger, nil
}

// AddUser puts userID on the allow-list. It reports false if already there.
func (s *accessService) AddUser(ctx context.Context, actorID, userID int64) (bool, error) {
	if !s.IsAdmin(actorID) {
		return false, ErrNotAdmin
	}
	if userID <= 0 {
		return false, fmt.Errorf("%d: %w", userID, ErrInvalidUserID)
	}

	added, err := s.allowList.AddAllowedUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to add allowed user",
			zap.Int64("actor_id", actorID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false, err
	}

	if added {
		s.publisher.Publish(events.TopicUserAdded, events.UserAdded{
			Event:   events.NewEvent(),
			UserID:  userID,
			AddedBy: actorID,
		})
	}

	s.logger.Info("Allowed user added",
		zap.Int64("actor_id", actorID),
		zap.Int64("user_id", userID),
		zap.Bool("new", added))
	return added, nil
}

// RemoveUser takes userID off the allow-list. Their reminders go with them
// and the published UserRemoved event carries the ids so live triggers
// can be cancelled.
func (s *accessService) RemoveUser(ctx context.Context, actorID, userID int64) (Removal, error) {
	if !s.IsAdmin(actorID) {
		return Removal{}, ErrNotAdmin
	}
	if userID <= 0 {
		return Removal{}, fmt.Errorf("%d: %w", userID, ErrInvalidUserID)
	}
	if s.IsAdmin(userID) {
		return Removal{}, ErrProtectedUser
	}

	ids, removed, err := s.allowList.RemoveAllowedUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to remove allowed user",
			zap.Int64("actor_id", actorID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return Removal{}, err
	}

	result := Removal{UserID: userID, Removed: removed, Cascade: ids}
	if !removed {
		return result, nil
	}

	s.publisher.Publish(events.TopicUserRemoved, events.UserRemoved{
		Event:       events.NewEvent(),
		UserID:      userID,
		ReminderIDs: ids,
	})

	s.logger.Info("Allowed user removed",
		zap.Int64("actor_id", actorID),
		zap.Int64("user_id", userID),
		zap.Int("reminders_removed", len(ids)))
	return result, nil
}

// SyncAdmins makes sure every configured admin has an allow-list row, so
// their reminders satisfy the owner foreign key.
func (s *accessService) SyncAdmins(ctx context.Context) (int, error) {
	added := 0
	for id := range s.admins {
		ok, err := s.allowList.AddAllowedUser(ctx, id)
		if err != nil {
			return added, fmt.Errorf("sync admin %d: %w", id, err)
		}
		if ok {
			added++
		}
	}

	s.logger.Info("Admins synced to allow-list",
		zap.Int("admins", len(s.admins)),
		zap.Int("added", added))
	return added, nil
}
