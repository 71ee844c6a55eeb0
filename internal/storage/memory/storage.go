package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	subscribers map[model.SubscriberID]*model.Subscriber
	emailIndex  map[string]model.SubscriberID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		subscribers: make(map[model.SubscriberID]*model.Subscriber),
		emailIndex:  make(map[string]model.SubscriberID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	if !sub.Role.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidRole, sub.Role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emailIndex[sub.Email]; exists {
		return model.ErrEmailExists
	}
	stored := *sub
	s.subscribers[sub.ID] = &stored
	s.emailIndex[sub.Email] = sub.ID
	return nil
}

func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrSubscriberNotFound
	}
	sub := *s.subscribers[id]
	return &sub, nil
}

func (s *Storage) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := make([]*model.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		c := *sub
		subs = append(subs, &c)
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SubscribedAt.After(subs[j].SubscribedAt)
	})
	return subs, nil
}

func (s *Storage) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	subs, err := s.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	recipients := make([]model.Recipient, len(subs))
	for i, sub := range subs {
		recipients[i] = sub.Recipient()
	}
	return recipients, nil
}

func (s *Storage) CountSubscribers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers), nil
}

func (s *Storage) CountSubscribedSince(ctx context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, sub := range s.subscribers {
		if !sub.SubscribedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}
