package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case MessageResult:
		_, _ = fmt.Fprintln(o.w, v.Message)
	case AuthStatus:
		o.printAuthStatus(v)
	case []Subscriber:
		o.printSubscribers(v)
	case Stats:
		_, _ = fmt.Fprintf(o.w, "Total: %d\nToday: %d\n", v.Total, v.Today)
	case SendUpdateResult:
		o.printSendUpdate(v)
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// MessageResult is the generic success body
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthStatus response type
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// Subscriber response type
type Subscriber struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Date  string `json:"date"`
}

// Stats response type
type Stats struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

// SendUpdateResult response type
type SendUpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SentTo  int    `json:"sentTo"`
	Failed  int    `json:"failed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthStatus(s AuthStatus) {
	if s.Authenticated {
		_, _ = fmt.Fprintln(o.w, "Authenticated: yes")
		return
	}
	_, _ = fmt.Fprintln(o.w, "Authenticated: no")
}

func (o *Output) printSubscribers(subs []Subscriber) {
	if len(subs) == 0 {
		_, _ = fmt.Fprintln(o.w, "No subscribers")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tTYPE\tNAME\tEMAIL")
	for _, s := range subs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Date, s.Type, s.Name, s.Email)
	}
	_ = tw.Flush()
}

func (o *Output) printSendUpdate(r SendUpdateResult) {
	_, _ = fmt.Fprintln(o.w, r.Message)
	_, _ = fmt.Fprintf(o.w, "Sent: %d\nFailed: %d\n", r.SentTo, r.Failed)
}
