package response

import (
	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
)

// dateLayout is the calendar-day format of subscriber list entries
const dateLayout = "2006-01-02"

// Message is the generic success body
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK builds a successful Message
func OK(message string) Message {
	return Message{Success: true, Message: message}
}

// AuthStatus is the response of the check-auth endpoint
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// Subscriber is one row of the admin subscriber list
type Subscriber struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Date  string `json:"date"`
}

// SubscriberFromModel converts a model.Subscriber; the date is the UTC day
func SubscriberFromModel(s *model.Subscriber) Subscriber {
	return Subscriber{
		ID:    string(s.ID),
		Name:  s.Name,
		Email: s.Email,
		Type:  string(s.Role),
		Date:  s.SubscribedAt.UTC().Format(dateLayout),
	}
}

// SubscribersFromModel converts a list, never returning nil
func SubscribersFromModel(subs []*model.Subscriber) []Subscriber {
	out := make([]Subscriber, len(subs))
	for i, s := range subs {
		out[i] = SubscriberFromModel(s)
	}
	return out
}

// Stats is the admin statistics body
type Stats struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

// StatsFromService converts newsletter.Stats
func StatsFromService(s *newsletter.Stats) Stats {
	return Stats{Total: s.Total, Today: s.Today}
}

// SendUpdate is the broadcast result body
type SendUpdate struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SentTo  int    `json:"sentTo"`
	Failed  int    `json:"failed"`
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
}
