package mocks

import (
	"context"
	"sync"

	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// AppendedEvent is one recorded outbox append.
type AppendedEvent struct {
	EventType string
	Payload   []byte
}

// MockOutboxRepository implements ports.OutboxRepository for testing.
type MockOutboxRepository struct {
	mu sync.Mutex

	AppendCalls []AppendedEvent
	AppendError error
}

var _ ports.OutboxRepository = (*MockOutboxRepository)(nil)

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) AppendEvent(ctx context.Context, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, AppendedEvent{EventType: eventType, Payload: payload})

	if m.AppendError != nil {
		return m.AppendError
	}
	return nil
}

// Events returns the recorded event types in order.
func (m *MockOutboxRepository) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.AppendCalls))
	for i, call := range m.AppendCalls {
		types[i] = call.EventType
	}
	return types
}

// MockActivityPublisher implements ports.ActivityPublisher for testing.
type MockActivityPublisher struct {
	mu sync.Mutex

	PublishCalls []ports.ActivityEvent
	PublishError error
}

var _ ports.ActivityPublisher = (*MockActivityPublisher)(nil)

func NewMockActivityPublisher() *MockActivityPublisher {
	return &MockActivityPublisher{}
}

func (m *MockActivityPublisher) PublishActivity(ctx context.Context, evt ports.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCalls = append(m.PublishCalls, evt)

	if m.PublishError != nil {
		return m.PublishError
	}
	return nil
}
