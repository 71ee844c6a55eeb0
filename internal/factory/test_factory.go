package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jumpigames/newsletter/internal/dependencies/mocks"
	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/session"
	"github.com/jumpigames/newsletter/internal/storage/memory"
	"github.com/jumpigames/newsletter/internal/testutil"
)

// TestAdminCode is the admin code accepted by a TestApp
const TestAdminCode = "3281"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MockSender  *mocks.MockSender
	MockStorage *mocks.MockStorage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return newTestApp(true)
}

// NewTestAppWithoutSender creates a TestApp whose email sender is not configured
func NewTestAppWithoutSender() *TestApp {
	return newTestApp(false)
}

func newTestApp(withSender bool) *TestApp {
	store := mocks.NewMockStorage(memory.New())
	mockClock := mocks.NewMockClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockSender := mocks.NewMockSender()

	// MinCost keeps login tests fast
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminCode), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	var sender email.Sender
	if withSender {
		sender = mockSender
	}
	app := newWithDependencies(store, session.New(session.Options{}), mockClock, mockRandom, hash, sender, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MockSender:  mockSender,
		MockStorage: store,
	}
}
