package handler

import (
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
)

// Fallback messages for unexpected failures, one per endpoint
const (
	msgLoginFailed     = "שגיאה באימות"
	msgLogoutFailed    = "שגיאה ביציאה"
	msgSubscribeFailed = "שגיאה בהרשמה. נסה שוב מאוחר יותר."
	msgListFailed      = "שגיאה בטעינת הרשימה"
	msgStatsFailed     = "שגיאה בטעינת הסטטיסטיקה"
	msgSendFailed      = "שגיאה בשליחת העדכון"
)

// writeError writes err, using fallback when err is not a known error
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	apierr.WriteError(w, r, apierr.WithFallback(err, fallback))
}

// sessionFallbacks maps each endpoint to the message its own handler
// would use for an unexpected failure
var sessionFallbacks = map[string]string{
	"/api/admin/login":          msgLoginFailed,
	"/api/admin/logout":         msgLogoutFailed,
	"/api/newsletter/subscribe": msgSubscribeFailed,
	"/api/admin/subscribers":    msgListFailed,
	"/api/admin/stats":          msgStatsFailed,
	"/api/admin/send-update":    msgSendFailed,
}

// SessionErrorFunc reports a failure to load or save the session
func SessionErrorFunc(w http.ResponseWriter, r *http.Request, err error) {
	fallback, ok := sessionFallbacks[r.URL.Path]
	if !ok {
		fallback = apierr.MsgInternal
	}
	writeError(w, r, err, fallback)
}
