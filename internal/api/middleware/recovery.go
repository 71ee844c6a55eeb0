package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
	"github.com/jumpigames/newsletter/internal/api/response"
	"github.com/jumpigames/newsletter/internal/middleware"
	"github.com/jumpigames/newsletter/internal/session"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler, session.CookieName)
}

// Logging re-exports the shared request logger
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// apiPanicHandler writes the generic 500; the panic was already reported by Recovery
func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	response.JSON(w, http.StatusInternalServerError, apierr.ErrorResponse{
		Error: apierr.MsgInternal,
		Code:  apierr.CodeInternalError,
	})
}
