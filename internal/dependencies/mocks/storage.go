package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// MockStorage wraps a real Storage and lets tests inject failures per method
type MockStorage struct {
	storage.Storage

	mu sync.Mutex
	// Errors maps a method name (e.g. "CreateSubscriber") to the error it returns
	Errors map[string]error
	// BeforeCreate runs ahead of CreateSubscriber, after any injected error check
	BeforeCreate func(ctx context.Context, sub *model.Subscriber)
}

// Ensure MockStorage implements Storage
var _ storage.Storage = (*MockStorage)(nil)

// NewMockStorage wraps inner
func NewMockStorage(inner storage.Storage) *MockStorage {
	return &MockStorage{Storage: inner, Errors: map[string]error{}}
}

// Fail makes method return err until cleared with Fail(method, nil)
func (m *MockStorage) Fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.Errors, method)
		return
	}
	m.Errors[method] = err
}

func (m *MockStorage) injected(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Errors[method]
}

func (m *MockStorage) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	if err := m.injected("CreateSubscriber"); err != nil {
		return err
	}
	if m.BeforeCreate != nil {
		m.BeforeCreate(ctx, sub)
	}
	return m.Storage.CreateSubscriber(ctx, sub)
}

func (m *MockStorage) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	if err := m.injected("GetSubscriberByEmail"); err != nil {
		return nil, err
	}
	return m.Storage.GetSubscriberByEmail(ctx, email)
}

func (m *MockStorage) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	if err := m.injected("ListSubscribers"); err != nil {
		return nil, err
	}
	return m.Storage.ListSubscribers(ctx)
}

func (m *MockStorage) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	if err := m.injected("ListRecipients"); err != nil {
		return nil, err
	}
	return m.Storage.ListRecipients(ctx)
}

func (m *MockStorage) CountSubscribers(ctx context.Context) (int, error) {
	if err := m.injected("CountSubscribers"); err != nil {
		return 0, err
	}
	return m.Storage.CountSubscribers(ctx)
}

func (m *MockStorage) CountSubscribedSince(ctx context.Context, since time.Time) (int, error) {
	if err := m.injected("CountSubscribedSince"); err != nil {
		return 0, err
	}
	return m.Storage.CountSubscribedSince(ctx, since)
}
