package user_test

import (
	"context"
	"errors"
	"testing"

	"remindbot/internal/events"
	"remindbot/internal/mocks"
	"remindbot/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const admin int64 = 1

var errStore = errors.New("connection reset")

func TestAccessService_AddUserStoreFailurePublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	allowList := mocks.NewMockAllowList(ctrl)
	bus := events.NewMockEventBus()

	allowList.EXPECT().AddAllowedUser(gomock.Any(), int64(10)).Return(false, errStore)

	svc := user.NewAccessService(allowList, []int64{admin}, bus, zap.NewNop())
	added, err := svc.AddUser(context.Background(), admin, 10)
	require.ErrorIs(t, err, errStore)
	assert.False(t, added)
	assert.Empty(t, bus.GetPublishedEvents(events.TopicUserAdded))
}

func TestAccessService_RemoveUserStoreFailurePublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	allowList := mocks.NewMockAllowList(ctrl)
	bus := events.NewMockEventBus()

	allowList.EXPECT().RemoveAllowedUser(gomock.Any(), int64(10)).Return(nil, false, errStore)

	svc := user.NewAccessService(allowList, []int64{admin}, bus, zap.NewNop())
	removal, err := svc.RemoveUser(context.Background(), admin, 10)
	require.ErrorIs(t, err, errStore)
	assert.Equal(t, user.Removal{}, removal)
	assert.Empty(t, bus.GetPublishedEvents(events.TopicUserRemoved))
}

func TestAccessService_GuardsNeverReachTheStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	allowList := mocks.NewMockAllowList(ctrl)
	svc := user.NewAccessService(allowList, []int64{admin}, events.NewMockEventBus(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.AddUser(ctx, 10, 11)
	assert.ErrorIs(t, err, user.ErrNotAdmin)

	_, err = svc.AddUser(ctx, admin, 0)
	assert.ErrorIs(t, err, user.ErrInvalidUserID)

	_, err = svc.RemoveUser(ctx, admin, admin)
	assert.ErrorIs(t, err, user.ErrProtectedUser)

	ok, err := svc.IsAllowed(ctx, admin)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccessService_IsAllowedAsksTheStoreForMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	allowList := mocks.NewMockAllowList(ctrl)

	gomock.InOrder(
		allowList.EXPECT().IsAllowedUser(gomock.Any(), int64(10)).Return(true, nil),
		allowList.EXPECT().IsAllowedUser(gomock.Any(), int64(20)).Return(false, errStore),
	)

	svc := user.NewAccessService(allowList, []int64{admin}, events.NewMockEventBus(), zap.NewNop())

	ok, err := svc.IsAllowed(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.IsAllowed(context.Background(), 20)
	assert.ErrorIs(t, err, errStore)
}

func TestAccessService_SyncAdminsStopsOnStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	allowList := mocks.NewMockAllowList(ctrl)

	allowList.EXPECT().AddAllowedUser(gomock.Any(), admin).Return(false, errStore)

	svc := user.NewAccessService(allowList, []int64{admin}, events.NewMockEventBus(), zap.NewNop())
	added, err := svc.SyncAdmins(context.Background())
	require.ErrorIs(t, err, errStore)
	assert.Zero(t, added)
}
