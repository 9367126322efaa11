package events

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// MockEventBus provides an in-memory implementation of EventBus for testing.
// Handlers are invoked synchronously so assertions can follow Publish directly.
type MockEventBus struct {
	mutex           sync.RWMutex
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	errors          []error
	publishErr      error
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	if reflect.TypeOf(handler) == nil || reflect.TypeOf(handler).Kind() != reflect.Func {
		return fmt.Errorf("%s is not of type reflect.Func", reflect.TypeOf(handler))
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	handlers := m.subscriptions[topic]
	target := reflect.ValueOf(handler).Pointer()
	for i, h := range handlers {
		if reflect.ValueOf(h).Pointer() == target {
			m.subscriptions[topic] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("topic %s doesn't exist", topic)
}

// Publish implements the EventBus interface
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	if m.publishErr != nil {
		err := m.publishErr
		m.mutex.Unlock()
		return err
	}
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)
	handlers := make([]interface{}, len(m.subscriptions[topic]))
	copy(handlers, m.subscriptions[topic])
	m.mutex.Unlock()

	for _, handler := range handlers {
		m.invokeHandler(handler, event)
	}
	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions = make(map[string][]interface{})
	return nil
}

// SetPublishError makes every following Publish fail with err
func (m *MockEventBus) SetPublishError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.publishErr = err
}

// GetPublishedEvents returns the events published on topic
func (m *MockEventBus) GetPublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	events := make([]interface{}, len(m.publishedEvents[topic]))
	copy(events, m.publishedEvents[topic])
	return events
}

// GetSubscriberCount returns the number of handlers on topic
func (m *MockEventBus) GetSubscriberCount(topic string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.subscriptions[topic])
}

// HandlerErrors returns panics and type mismatches seen while invoking handlers
func (m *MockEventBus) HandlerErrors() []error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]error(nil), m.errors...)
}

// ClearEvents forgets every published event
func (m *MockEventBus) ClearEvents() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.publishedEvents = make(map[string][]interface{})
}

// WaitForEvent polls until an event is published on topic or timeout elapses
func (m *MockEventBus) WaitForEvent(topic string, timeout time.Duration) (interface{}, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if events := m.GetPublishedEvents(topic); len(events) > 0 {
			return events[len(events)-1], nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil, fmt.Errorf("timeout waiting for event on topic %s", topic)
}

func (m *MockEventBus) invokeHandler(handler interface{}, event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			m.recordError(fmt.Errorf("handler panic: %v", r))
		}
	}()

	fn := reflect.ValueOf(handler)
	if fn.Type().NumIn() != 1 {
		m.recordError(fmt.Errorf("handler must take exactly one argument, got %d", fn.Type().NumIn()))
		return
	}

	arg := reflect.ValueOf(event)
	if !arg.IsValid() || !arg.Type().AssignableTo(fn.Type().In(0)) {
		m.recordError(fmt.Errorf("type mismatch: handler expects %s, event is %T", fn.Type().In(0), event))
		return
	}
	fn.Call([]reflect.Value{arg})
}

func (m *MockEventBus) recordError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.errors = append(m.errors, err)
}
