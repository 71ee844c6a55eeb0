// Package session builds the cookie session manager that carries the admin
// flag between requests.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie
	CookieName = "session"

	// Lifetime is how long a session stays valid after login
	Lifetime = 24 * time.Hour
)

// Options configures the session manager
type Options struct {
	// Secure marks the cookie Secure with SameSite=None so the widget can be
	// embedded cross-site. Otherwise the cookie is SameSite=Lax.
	Secure bool
}

// New creates a session manager backed by the in-process memory store.
func New(opts Options) *scs.SessionManager {
	return newManager(memstore.New(), opts)
}

// NewRedis creates a session manager that stores sessions in Redis.
func NewRedis(client *redis.Client, opts Options) *scs.SessionManager {
	return newManager(goredisstore.New(client), opts)
}

func newManager(store scs.Store, opts Options) *scs.SessionManager {
	sm := scs.New()
	sm.Store = store

	sm.Lifetime = Lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	if opts.Secure {
		sm.Cookie.Secure = true
		sm.Cookie.SameSite = http.SameSiteNoneMode
	} else {
		sm.Cookie.SameSite = http.SameSiteLaxMode
	}

	return sm
}
