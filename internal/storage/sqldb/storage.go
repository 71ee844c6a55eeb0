package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Postgres SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// Storage is a SQL-backed implementation of the storage interface.
// Timestamps are written and read in UTC.
type Storage struct {
	db *sql.DB
}

// New opens the database, applies migrations and returns a ready store
func New(cfg Config) (*Storage, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, cfg.Dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an already migrated database
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

const subscriberColumns = "id, name, email, role, subscribed_at, agreed_to_terms"

func (s *Storage) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	if !sub.Role.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidRole, sub.Role)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO subscribers ("+subscriberColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		string(sub.ID), sub.Name, sub.Email, string(sub.Role), sub.SubscribedAt.UTC(), sub.AgreedToTerms,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("inserting subscriber: %w", err)
	}
	return nil
}

func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+subscriberColumns+" FROM subscribers WHERE email = $1", email)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSubscriberNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *Storage) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+subscriberColumns+" FROM subscribers ORDER BY subscribed_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := []*model.Subscriber{}
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Storage) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, email FROM subscribers ORDER BY subscribed_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing recipients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recipients := []model.Recipient{}
	for rows.Next() {
		var r model.Recipient
		if err := rows.Scan(&r.Name, &r.Email); err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

func (s *Storage) CountSubscribers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting subscribers: %w", err)
	}
	return n, nil
}

func (s *Storage) CountSubscribedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscribers WHERE subscribed_at >= $1", since.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting subscribers since: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*model.Subscriber, error) {
	var (
		sub        model.Subscriber
		id, role   string
		subscribed time.Time
	)
	if err := row.Scan(&id, &sub.Name, &sub.Email, &role, &subscribed, &sub.AgreedToTerms); err != nil {
		return nil, err
	}
	sub.ID = model.SubscriberID(id)
	sub.Role = model.Role(role)
	sub.SubscribedAt = subscribed.UTC()
	return &sub, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// Primary code only when extended codes are off
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
