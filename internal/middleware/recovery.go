package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	raven "github.com/getsentry/raven-go"
)

// PanicHandler is a function that handles panics and writes an error response
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery creates panic recovery middleware with a custom panic handler.
// Recovered panics are logged and sent to Sentry without the named cookies.
func Recovery(logger *slog.Logger, handler PanicHandler, redactCookies ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rval := recover(); rval != nil {
					if rval == http.ErrAbortHandler {
						panic(rval)
					}

					logger.Error("panic recovered",
						slog.Any("error", rval),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					err, ok := rval.(error)
					if !ok {
						err = fmt.Errorf("%v", rval)
					}
					packet := raven.NewPacket(err.Error(),
						raven.NewException(err, raven.GetOrNewStacktrace(err, 2, 3, nil)),
						SentryHTTP(r, redactCookies...))
					raven.Capture(packet, nil)

					handler(w, r, rval)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
