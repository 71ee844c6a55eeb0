package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/storage"
)

// Errors
var (
	ErrMissingContent      = errors.New("subject and message are required")
	ErrSenderNotConfigured = errors.New("no email sender configured")
)

// Result counts the outcome of one broadcast
type Result struct {
	Sent   int
	Failed int
}

// Service sends a newsletter update to every subscriber
type Service struct {
	storage storage.Storage
	sender  email.Sender
	logger  *slog.Logger
}

// New creates a broadcast service. sender may be nil, in which case every
// Send fails with ErrSenderNotConfigured.
func New(storage storage.Storage, sender email.Sender, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		sender:  sender,
		logger:  logger,
	}
}

// Configured reports whether an email sender is available
func (s *Service) Configured() bool {
	return s.sender != nil
}

// Send renders the update for each recipient and sends it, one at a time.
// A failed recipient is logged and counted; the remaining ones are still
// attempted. Once recipients are loaded the sends ignore ctx cancellation.
func (s *Service) Send(ctx context.Context, update email.Update) (*Result, error) {
	if strings.TrimSpace(update.Subject) == "" || strings.TrimSpace(update.Message) == "" {
		return nil, ErrMissingContent
	}
	if s.sender == nil {
		return nil, ErrSenderNotConfigured
	}

	recipients, err := s.storage.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading recipients: %w", err)
	}

	result := &Result{}
	if len(recipients) == 0 {
		return result, nil
	}

	sendCtx := context.WithoutCancel(ctx)
	for _, r := range recipients {
		if err := s.sendOne(sendCtx, r.Name, r.Email, update); err != nil {
			s.logger.ErrorContext(sendCtx, "failed to send update",
				slog.String("email", r.Email),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.logger.InfoContext(sendCtx, "update broadcast finished",
		slog.String("subject", update.Subject),
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *Service) sendOne(ctx context.Context, name, to string, update email.Update) error {
	html, err := email.RenderUpdate(name, update)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, email.Message{
		To:      to,
		Subject: update.Subject,
		HTML:    html,
	})
}
