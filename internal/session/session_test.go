package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DevelopmentCookie(t *testing.T) {
	sm := New(Options{})

	assert.Equal(t, CookieName, sm.Cookie.Name)
	assert.Equal(t, Lifetime, sm.Lifetime)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.False(t, sm.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, sm.Cookie.SameSite)
}

func TestNew_SecureCookie(t *testing.T) {
	sm := New(Options{Secure: true})

	assert.True(t, sm.Cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, sm.Cookie.SameSite)
}

// roundTrip sets a flag on the first request and reads it back on the second
func roundTrip(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/set", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestSessionRoundTrip(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	managers := map[string]func() *scs.SessionManager{
		"memory": func() *scs.SessionManager { return New(Options{}) },
		"redis":  func() *scs.SessionManager { return NewRedis(client, Options{}) },
	}

	for name, newManager := range managers {
		t.Run(name, func(t *testing.T) {
			sm := newManager()
			mux := http.NewServeMux()
			mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
				sm.Put(r.Context(), "authenticated", true)
			})
			mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
				if sm.GetBool(r.Context(), "authenticated") {
					_, _ = w.Write([]byte("yes"))
					return
				}
				_, _ = w.Write([]byte("no"))
			})

			assert.Equal(t, "yes", roundTrip(t, sm.LoadAndSave(mux)))
		})
	}
}

func TestRedisStoreWritesSessionKey(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := NewRedis(client, Options{})
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), "authenticated", true)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// goredisstore uses the "scs:session:" prefix
	assert.True(t, mini.Exists("scs:session:"+cookies[0].Value))
}
