package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/jumpigames/newsletter/internal/email"
)

// ErrMockSend is returned for addresses listed in MockSender.FailFor
var ErrMockSend = errors.New("mock send failure")

// MockSender records sent messages instead of delivering them
type MockSender struct {
	mu sync.Mutex
	// Sent holds every successfully "sent" message in order
	Sent []email.Message
	// Attempts counts every Send call, including failures
	Attempts int
	// FailFor lists recipient addresses whose sends fail
	FailFor map[string]bool
	// CtxErrs records ctx.Err() as seen by each Send call
	CtxErrs []error
}

// Ensure MockSender implements Sender
var _ email.Sender = (*MockSender)(nil)

// NewMockSender creates a new MockSender
func NewMockSender() *MockSender {
	return &MockSender{FailFor: map[string]bool{}}
}

// Send records msg, or fails if its recipient is in FailFor
func (s *MockSender) Send(ctx context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attempts++
	s.CtxErrs = append(s.CtxErrs, ctx.Err())
	if s.FailFor[msg.To] {
		return ErrMockSend
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a copy of the sent messages
func (s *MockSender) Messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.Sent...)
}

// Reset clears recorded state
func (s *MockSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = nil
	s.Attempts = 0
	s.CtxErrs = nil
	s.FailFor = map[string]bool{}
}
