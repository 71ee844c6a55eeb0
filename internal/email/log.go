package email

import (
	"context"
	"log/slog"
)

// LogSender logs emails instead of sending them.
// Useful for development.
type LogSender struct {
	logger *slog.Logger
	from   string
}

// NewLogSender creates a new log-based email sender.
func NewLogSender(logger *slog.Logger, from string) *LogSender {
	if from == "" {
		from = DefaultFrom
	}
	return &LogSender{logger: logger, from: from}
}

// Send logs the email details.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email not sent (log provider)",
		slog.String("from", s.from),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
