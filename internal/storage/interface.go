package storage

import (
	"context"
	"time"

	"github.com/jumpigames/newsletter/internal/model"
)

// Storage defines the interface for subscriber persistence.
// Implementations enforce email uniqueness themselves: CreateSubscriber
// must fail with model.ErrEmailExists when the normalized email is taken,
// even if a concurrent caller passed a prior existence check.
type Storage interface {
	CreateSubscriber(ctx context.Context, sub *model.Subscriber) error
	GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error)

	// ListSubscribers returns all subscribers, newest first
	ListSubscribers(ctx context.Context) ([]*model.Subscriber, error)
	ListRecipients(ctx context.Context) ([]model.Recipient, error)

	CountSubscribers(ctx context.Context) (int, error)
	// CountSubscribedSince counts subscribers with SubscribedAt >= since
	CountSubscribedSince(ctx context.Context, since time.Time) (int, error)

	Close() error
}
