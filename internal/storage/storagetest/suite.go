// Package storagetest holds the behavioural contract every storage backend
// must satisfy. Backend packages embed Suite and supply a fresh store per test.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Suite runs the shared storage contract. Set NewStorage in the embedding
// suite's SetupTest before calling Suite.SetupTest.
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

// base is a fixed reference instant; backends round-trip times in UTC
var base = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func newSubscriber(id, email string, at time.Time) *model.Subscriber {
	return &model.Subscriber{
		ID:            model.SubscriberID(id),
		Name:          "Name " + id,
		Email:         email,
		Role:          model.RoleParent,
		SubscribedAt:  at,
		AgreedToTerms: true,
	}
}

func (s *Suite) TestCreateAndGetByEmail() {
	sub := newSubscriber("sub-1", "alice@example.com", base)
	sub.Role = model.RolePlayer

	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, sub))

	got, err := s.Storage.GetSubscriberByEmail(s.Ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(sub.ID, got.ID)
	s.Equal(sub.Name, got.Name)
	s.Equal(model.RolePlayer, got.Role)
	s.True(got.AgreedToTerms)
	s.True(sub.SubscribedAt.Equal(got.SubscribedAt), "got %v want %v", got.SubscribedAt, sub.SubscribedAt)
}

func (s *Suite) TestCreateRejectsUnknownRole() {
	sub := newSubscriber("sub-1", "alice@example.com", base)
	sub.Role = "coach"

	err := s.Storage.CreateSubscriber(s.Ctx, sub)
	s.ErrorIs(err, model.ErrInvalidRole)

	// Nothing was written, so the email is still free
	_, err = s.Storage.GetSubscriberByEmail(s.Ctx, "alice@example.com")
	s.ErrorIs(err, model.ErrSubscriberNotFound)
}

func (s *Suite) TestGetByEmailNotFound() {
	_, err := s.Storage.GetSubscriberByEmail(s.Ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrSubscriberNotFound)
}

func (s *Suite) TestCreateDuplicateEmail() {
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("sub-1", "alice@example.com", base)))

	err := s.Storage.CreateSubscriber(s.Ctx, newSubscriber("sub-2", "alice@example.com", base.Add(time.Minute)))
	s.ErrorIs(err, model.ErrEmailExists)

	count, err := s.Storage.CountSubscribers(s.Ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestConcurrentDuplicateCreatesOnlyOneSucceeds() {
	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := newSubscriber(fmt.Sprintf("sub-%d", i), "race@example.com", base)
			errs[i] = s.Storage.CreateSubscriber(s.Ctx, sub)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrEmailExists)
		}
	}
	s.Equal(1, succeeded)
}

func (s *Suite) TestListSubscribersNewestFirst() {
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("old", "old@example.com", base)))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("new", "new@example.com", base.Add(2*time.Hour))))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("mid", "mid@example.com", base.Add(time.Hour))))

	subs, err := s.Storage.ListSubscribers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(subs, 3)
	s.Equal(model.SubscriberID("new"), subs[0].ID)
	s.Equal(model.SubscriberID("mid"), subs[1].ID)
	s.Equal(model.SubscriberID("old"), subs[2].ID)
}

func (s *Suite) TestListSubscribersEmpty() {
	subs, err := s.Storage.ListSubscribers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(subs)
}

func (s *Suite) TestListRecipients() {
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("a", "a@example.com", base)))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("b", "b@example.com", base.Add(time.Minute))))

	recipients, err := s.Storage.ListRecipients(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.Recipient{
		{Name: "Name a", Email: "a@example.com"},
		{Name: "Name b", Email: "b@example.com"},
	}, recipients)
}

func (s *Suite) TestCounts() {
	midnight := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("yesterday", "y@example.com", midnight.Add(-time.Minute))))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("at-midnight", "m@example.com", midnight)))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("today", "t@example.com", midnight.Add(10*time.Hour))))

	total, err := s.Storage.CountSubscribers(s.Ctx)
	s.Require().NoError(err)
	s.Equal(3, total)

	today, err := s.Storage.CountSubscribedSince(s.Ctx, midnight)
	s.Require().NoError(err)
	s.Equal(2, today)
}

func (s *Suite) TestCountSubscribedSinceHonoursOffsets() {
	// Midnight in UTC+3 is 21:00 UTC the previous day
	loc := time.FixedZone("IDT", 3*60*60)
	localMidnight := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("before", "b@example.com", localMidnight.Add(-time.Second).UTC())))
	s.Require().NoError(s.Storage.CreateSubscriber(s.Ctx, newSubscriber("after", "a@example.com", localMidnight.Add(time.Second).UTC())))

	count, err := s.Storage.CountSubscribedSince(s.Ctx, localMidnight)
	s.Require().NoError(err)
	s.Equal(1, count)
}
