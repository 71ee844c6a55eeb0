package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jumpigames/newsletter/internal/dependencies/mocks"
	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage/memory"
)

type ControllerSuite struct {
	suite.Suite
	storage    *mocks.MockStorage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = mocks.NewMockStorage(memory.New())
	s.clock = mocks.NewMockClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random)
	s.ctx = context.Background()
}

func validInput() SubscribeInput {
	return SubscribeInput{
		FullName:      "Dana Levi",
		Email:         "dana@example.com",
		PlayerGroup:   true,
		Agree:         true,
		AgreedToTerms: true,
	}
}

// Subscribe tests

func (s *ControllerSuite) TestSubscribeStoresSubscriber() {
	s.random.QueueID("sub-1")

	sub, err := s.controller.Subscribe(s.ctx, validInput())
	s.Require().NoError(err)
	s.Equal(model.SubscriberID("sub-1"), sub.ID)
	s.Equal(model.RolePlayer, sub.Role)
	s.Equal(s.clock.Now(), sub.SubscribedAt)
	s.True(sub.AgreedToTerms)

	stored, err := s.storage.GetSubscriberByEmail(s.ctx, "dana@example.com")
	s.Require().NoError(err)
	s.Equal("Dana Levi", stored.Name)
}

func (s *ControllerSuite) TestSubscribeNormalizesEmailAndName() {
	in := validInput()
	in.FullName = "  Dana  "
	in.Email = "  Dana@Example.COM "

	sub, err := s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)
	s.Equal("Dana", sub.Name)
	s.Equal("dana@example.com", sub.Email)
}

func (s *ControllerSuite) TestSubscribeMissingFields() {
	cases := map[string]func(*SubscribeInput){
		"no name":         func(in *SubscribeInput) { in.FullName = "" },
		"blank name":      func(in *SubscribeInput) { in.FullName = "   " },
		"no email":        func(in *SubscribeInput) { in.Email = "" },
		"no agreement":    func(in *SubscribeInput) { in.Agree = false },
		"missing and no role": func(in *SubscribeInput) {
			in.Email = ""
			in.PlayerGroup = false
		},
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			in := validInput()
			mutate(&in)
			_, err := s.controller.Subscribe(s.ctx, in)
			s.ErrorIs(err, ErrMissingFields)
		})
	}
}

func (s *ControllerSuite) TestSubscribeRequiresRole() {
	in := validInput()
	in.PlayerGroup = false

	_, err := s.controller.Subscribe(s.ctx, in)
	s.ErrorIs(err, ErrRoleRequired)

	count, _ := s.storage.CountSubscribers(s.ctx)
	s.Zero(count)
}

func (s *ControllerSuite) TestSubscribeParentWinsWhenBothSet() {
	in := validInput()
	in.ParentGroup = true

	sub, err := s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(model.RoleParent, sub.Role)
}

func (s *ControllerSuite) TestSubscribeRecordsNonAffirmativeAgreement() {
	in := validInput()
	in.AgreedToTerms = false

	sub, err := s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)
	s.False(sub.AgreedToTerms)
}

func (s *ControllerSuite) TestSubscribeDuplicateEmail() {
	_, err := s.controller.Subscribe(s.ctx, validInput())
	s.Require().NoError(err)

	in := validInput()
	in.Email = "DANA@example.com"
	_, err = s.controller.Subscribe(s.ctx, in)
	s.ErrorIs(err, model.ErrEmailExists)

	count, _ := s.storage.CountSubscribers(s.ctx)
	s.Equal(1, count)
}

func (s *ControllerSuite) TestSubscribeDuplicateDetectedAtInsert() {
	// Another signup lands between the existence check and the insert
	s.storage.BeforeCreate = func(ctx context.Context, sub *model.Subscriber) {
		s.storage.BeforeCreate = nil
		other := *sub
		other.ID = "winner"
		s.Require().NoError(s.storage.CreateSubscriber(ctx, &other))
	}

	_, err := s.controller.Subscribe(s.ctx, validInput())
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ControllerSuite) TestSubscribeStorageFailure() {
	boom := errors.New("connection refused")
	s.storage.Fail("CreateSubscriber", boom)

	_, err := s.controller.Subscribe(s.ctx, validInput())
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, model.ErrEmailExists)
}

func (s *ControllerSuite) TestSubscribeLookupFailure() {
	boom := errors.New("timeout")
	s.storage.Fail("GetSubscriberByEmail", boom)

	_, err := s.controller.Subscribe(s.ctx, validInput())
	s.ErrorIs(err, boom)
}

// List tests

func (s *ControllerSuite) TestListNewestFirst() {
	s.random.QueueID("first", "second")
	in := validInput()
	_, err := s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	in.Email = "other@example.com"
	_, err = s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)

	subs, err := s.controller.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(subs, 2)
	s.Equal(model.SubscriberID("second"), subs[0].ID)
	s.Equal(model.SubscriberID("first"), subs[1].ID)
}

func (s *ControllerSuite) TestListFailure() {
	s.storage.Fail("ListSubscribers", errors.New("down"))

	_, err := s.controller.List(s.ctx)
	s.Error(err)
}

// Stats tests

func (s *ControllerSuite) TestStatsCountsSinceMidnight() {
	s.clock.Set(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC))
	in := validInput()
	_, err := s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)

	s.clock.Set(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	in.Email = "today@example.com"
	_, err = s.controller.Subscribe(s.ctx, in)
	s.Require().NoError(err)

	stats, err := s.controller.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.Today)
}

func (s *ControllerSuite) TestStatsEmpty() {
	stats, err := s.controller.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(&Stats{}, stats)
}

func (s *ControllerSuite) TestStatsFailure() {
	s.storage.Fail("CountSubscribedSince", errors.New("down"))

	_, err := s.controller.Stats(s.ctx)
	s.Error(err)
}
