package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client, cfg), nil
}

// NewClient opens and verifies a Redis connection from cfg
func NewClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keys{prefix: cfg.KeyPrefix},
	}
}

// Client exposes the underlying connection so the session store can share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	if !sub.Role.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidRole, sub.Role)
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	// Claim the email first; SETNX is atomic so only one writer wins
	emailKey := s.keys.emailIndex(sub.Email)
	claimed, err := s.client.SetNX(ctx, emailKey, string(sub.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrEmailExists
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.subscriber(sub.ID), data, 0)
		pipe.ZAdd(ctx, s.keys.subscribedAtIndex(), redis.Z{
			Score:  float64(sub.SubscribedAt.UnixMicro()),
			Member: string(sub.ID),
		})
		return nil
	})
	if err != nil {
		// EXEC does not roll back; drop the partial write and release the claim
		cleanup := context.WithoutCancel(ctx)
		_ = s.client.Del(cleanup, s.keys.subscriber(sub.ID), emailKey).Err()
		return err
	}
	return nil
}

func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	id, err := s.client.Get(ctx, s.keys.emailIndex(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSubscriberNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, s.keys.subscriber(model.SubscriberID(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSubscriberNotFound
		}
		return nil, err
	}

	var sub model.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Storage) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	ids, err := s.client.ZRevRange(ctx, s.keys.subscribedAtIndex(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Subscriber{}, nil
	}

	subKeys := make([]string, len(ids))
	for i, id := range ids {
		subKeys[i] = s.keys.subscriber(model.SubscriberID(id))
	}

	values, err := s.client.MGet(ctx, subKeys...).Result()
	if err != nil {
		return nil, err
	}

	subs := make([]*model.Subscriber, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Deleted out-of-band
		}
		raw, ok := val.(string)
		if !ok {
			continue
		}
		var sub model.Subscriber
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return nil, fmt.Errorf("decoding subscriber: %w", err)
		}
		subs = append(subs, &sub)
	}

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
	n, err := s.client.ZCard(ctx, s.keys.subscribedAtIndex()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) CountSubscribedSince(ctx context.Context, since time.Time) (int, error) {
	min := strconv.FormatInt(since.UnixMicro(), 10)
	n, err := s.client.ZCount(ctx, s.keys.subscribedAtIndex(), min, "+inf").Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
