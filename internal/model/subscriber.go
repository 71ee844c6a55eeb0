package model

import (
	"strings"
	"time"
)

// SubscriberID uniquely identifies a subscriber
type SubscriberID string

// Role is the group a subscriber signed up as
type Role string

const (
	RoleParent Role = "parent"
	RolePlayer Role = "player"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleParent || r == RolePlayer
}

// RoleFromFlags resolves the signup role flags.
// The parent flag wins when both are set.
func RoleFromFlags(parent, player bool) (Role, bool) {
	switch {
	case parent:
		return RoleParent, true
	case player:
		return RolePlayer, true
	default:
		return "", false
	}
}

// Subscriber is a person who signed up for the newsletter.
// Records are never updated after creation.
type Subscriber struct {
	ID            SubscriberID `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"` // normalized, see NormalizeEmail
	Role          Role         `json:"role"`
	SubscribedAt  time.Time    `json:"subscribed_at"`
	AgreedToTerms bool         `json:"agreed_to_terms"`
}

// Recipient is the subset of a subscriber needed to address an email
type Recipient struct {
	Name  string
	Email string
}

// Recipient returns the addressing details for s
func (s *Subscriber) Recipient() Recipient {
	return Recipient{Name: s.Name, Email: s.Email}
}

// NormalizeEmail trims and lowercases an address; uniqueness is defined on the result
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
