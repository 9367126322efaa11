package events

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		event interface{}
	}{
		{
			name:  "reminder created",
			topic: TopicReminderCreated,
			event: ReminderCreated{Event: NewEvent(), ReminderID: 7, OwnerID: 42, ChatID: 100, Rule: "tue 09:00 UTC"},
		},
		{
			name:  "delivery failed",
			topic: TopicReminderDeliveryFailed,
			event: ReminderDeliveryFailed{Event: NewEvent(), ReminderID: 7, ChatID: 100, Error: "chat not found"},
		},
		{
			name:  "user removed",
			topic: TopicUserRemoved,
			event: UserRemoved{Event: NewEvent(), UserID: 42, ReminderIDs: []int64{1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewEventBus(zap.NewNop())
			defer bus.Close()

			var received interface{}
			require.NoError(t, bus.Subscribe(tt.topic, func(event interface{}) {
				received = event
			}))

			require.NoError(t, bus.Publish(tt.topic, tt.event))
			assert.Equal(t, tt.event, received)
		})
	}
}

func TestEventBus_TypedHandler(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	defer bus.Close()

	var got UserRemoved
	require.NoError(t, bus.Subscribe(TopicUserRemoved, func(e UserRemoved) {
		got = e
	}))

	require.NoError(t, bus.Publish(TopicUserRemoved, UserRemoved{UserID: 42, ReminderIDs: []int64{3}}))
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, []int64{3}, got.ReminderIDs)
}

func TestEventBus_TopicIsolation(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	defer bus.Close()

	var created, deleted atomic.Int32
	require.NoError(t, bus.Subscribe(TopicReminderCreated, func(ReminderCreated) { created.Add(1) }))
	require.NoError(t, bus.Subscribe(TopicReminderDeleted, func(ReminderDeleted) { deleted.Add(1) }))

	require.NoError(t, bus.Publish(TopicReminderCreated, ReminderCreated{ReminderID: 1}))
	require.NoError(t, bus.Publish(TopicReminderCreated, ReminderCreated{ReminderID: 2}))

	assert.Equal(t, int32(2), created.Load())
	assert.Equal(t, int32(0), deleted.Load())
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	defer bus.Close()

	var calls atomic.Int32
	handler := func(ReminderDelivered) { calls.Add(1) }

	require.NoError(t, bus.Subscribe(TopicReminderDelivered, handler))
	require.NoError(t, bus.Publish(TopicReminderDelivered, ReminderDelivered{}))
	require.NoError(t, bus.Unsubscribe(TopicReminderDelivered, handler))
	require.NoError(t, bus.Publish(TopicReminderDelivered, ReminderDelivered{}))

	assert.Equal(t, int32(1), calls.Load())
}

func TestEventBus_ClosedBus(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(TopicUserAdded, UserAdded{}), ErrBusClosed)
	assert.ErrorIs(t, bus.Subscribe(TopicUserAdded, func(UserAdded) {}), ErrBusClosed)
	assert.ErrorIs(t, bus.Unsubscribe(TopicUserAdded, func(UserAdded) {}), ErrBusClosed)
}

func TestEventBus_PanickingHandler(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	defer bus.Close()

	require.NoError(t, bus.Subscribe(TopicReminderDeleted, func(ReminderDeleted) {
		panic("handler exploded")
	}))

	var err error
	assert.NotPanics(t, func() {
		err = bus.Publish(TopicReminderDeleted, ReminderDeleted{ReminderID: 1})
	})
	assert.Error(t, err)
}

func TestEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	defer bus.Close()

	var calls atomic.Int32
	require.NoError(t, bus.Subscribe(TopicReminderDelivered, func(ReminderDelivered) { calls.Add(1) }))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = bus.Publish(TopicReminderDelivered, ReminderDelivered{ReminderID: id})
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, int32(20), calls.Load())
}

func TestMockEventBus(t *testing.T) {
	bus := NewMockEventBus()

	var got []int64
	require.NoError(t, bus.Subscribe(TopicUserRemoved, func(e UserRemoved) {
		got = append(got, e.UserID)
	}))
	assert.Equal(t, 1, bus.GetSubscriberCount(TopicUserRemoved))

	require.NoError(t, bus.Publish(TopicUserRemoved, UserRemoved{UserID: 5}))
	require.NoError(t, bus.Publish(TopicUserRemoved, "wrong type"))

	assert.Equal(t, []int64{5}, got)
	assert.Len(t, bus.GetPublishedEvents(TopicUserRemoved), 2)
	assert.Len(t, bus.HandlerErrors(), 1)

	bus.ClearEvents()
	assert.Empty(t, bus.GetPublishedEvents(TopicUserRemoved))
}
