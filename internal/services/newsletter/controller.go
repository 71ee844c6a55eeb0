package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jumpigames/newsletter/internal/dependencies/clock"
	"github.com/jumpigames/newsletter/internal/dependencies/random"
	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Validation errors
var (
	ErrMissingFields = errors.New("full name, email and agreement are required")
	ErrRoleRequired  = errors.New("parent or player group must be selected")
)

// SubscribeInput is a signup form submission after flag parsing
type SubscribeInput struct {
	FullName    string
	Email       string
	ParentGroup bool
	PlayerGroup bool

	// Agree is true when the agreement field was supplied with any truthy value
	Agree bool
	// AgreedToTerms is true only for an explicit "on" or boolean true
	AgreedToTerms bool
}

// Stats summarizes the subscriber list
type Stats struct {
	Total int
	Today int
}

// Controller handles signups and the admin read views
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// NewController creates a new newsletter Controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Subscribe validates a submission and stores a new subscriber.
// Checks run in order: required fields, role, email uniqueness.
func (c *Controller) Subscribe(ctx context.Context, in SubscribeInput) (*model.Subscriber, error) {
	name := strings.TrimSpace(in.FullName)
	email := model.NormalizeEmail(in.Email)
	if name == "" || email == "" || !in.Agree {
		return nil, ErrMissingFields
	}

	role, ok := model.RoleFromFlags(in.ParentGroup, in.PlayerGroup)
	if !ok {
		return nil, ErrRoleRequired
	}

	_, err := c.storage.GetSubscriberByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrEmailExists
	}
	if !errors.Is(err, model.ErrSubscriberNotFound) {
		return nil, fmt.Errorf("checking existing subscriber: %w", err)
	}

	sub := &model.Subscriber{
		ID:            model.SubscriberID(c.random.NewID()),
		Name:          name,
		Email:         email,
		Role:          role,
		SubscribedAt:  c.clock.Now(),
		AgreedToTerms: in.AgreedToTerms,
	}

	// A concurrent signup can still win between the check and the insert;
	// the store reports that as ErrEmailExists too
	if err := c.storage.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("creating subscriber: %w", err)
	}

	return sub, nil
}

// List returns every subscriber, newest first
func (c *Controller) List(ctx context.Context) ([]*model.Subscriber, error) {
	subs, err := c.storage.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	return subs, nil
}

// Stats counts all subscribers and those since local midnight
func (c *Controller) Stats(ctx context.Context) (*Stats, error) {
	total, err := c.storage.CountSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting subscribers: %w", err)
	}

	today, err := c.storage.CountSubscribedSince(ctx, clock.StartOfDay(c.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("counting today's subscribers: %w", err)
	}

	return &Stats{Total: total, Today: today}, nil
}
