// Package email renders newsletter updates and delivers them through a
// pluggable provider.
package email

import "context"

// DefaultFrom is the sender address used when none is configured
const DefaultFrom = "Jumpi <onboarding@resend.dev>"

// Message represents an email message to be sent.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender is the interface for email providers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
