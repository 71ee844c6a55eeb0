package middleware

import (
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
	"github.com/jumpigames/newsletter/internal/services/auth"
)

// RequireAdmin rejects requests whose session is not authenticated.
// It must run inside the session manager's LoadAndSave.
func RequireAdmin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.IsAuthenticated(r.Context()) {
				apierr.WriteError(w, r, apierr.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
