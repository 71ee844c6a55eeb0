package middleware

import (
	"net/http"
	"slices"
	"strings"

	raven "github.com/getsentry/raven-go"
)

// SentryHTTP describes r for a Sentry packet with the named cookies removed
// from both the cookie field and the copied headers.
func SentryHTTP(r *http.Request, redactCookies ...string) *raven.Http {
	h := raven.NewHttp(r)

	var kept []string
	for _, c := range r.Cookies() {
		if slices.Contains(redactCookies, c.Name) {
			continue
		}
		kept = append(kept, c.Name+"="+c.Value)
	}

	h.Cookies = strings.Join(kept, "; ")
	if h.Cookies == "" {
		delete(h.Headers, "Cookie")
	} else {
		h.Headers["Cookie"] = h.Cookies
	}
	return h
}
