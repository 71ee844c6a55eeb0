package apierr

import (
	"errors"
	"net/http"

	raven "github.com/getsentry/raven-go"

	"github.com/jumpigames/newsletter/internal/api/response"
	"github.com/jumpigames/newsletter/internal/middleware"
	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/services/auth"
	"github.com/jumpigames/newsletter/internal/services/broadcast"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
	"github.com/jumpigames/newsletter/internal/session"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeRoleRequired       = "ROLE_REQUIRED"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCode        = "INVALID_CODE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeMissingContent     = "MISSING_CONTENT"
	CodeEmailNotConfigured = "EMAIL_NOT_CONFIGURED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// User-facing messages
const (
	MsgMissingFields      = "נא למלא את כל השדות הנדרשים"
	MsgRoleRequired       = "נא לבחור אם אתה הורה או שחקן"
	MsgEmailExists        = "אימייל זה כבר רשום במערכת"
	MsgInvalidCode        = "קוד שגוי"
	MsgUnauthorized       = "אימות נדרש"
	MsgMissingContent     = "נא למלא נושא ותוכן ההודעה"
	MsgEmailNotConfigured = "שליחת אימיילים לא מוגדרת. אנא הגדר RESEND_API_KEY בקובץ .env. הירשם ב-resend.com (חינמי - 3,000 מיילים/חודש)"
	MsgInvalidRequest     = "בקשה לא תקינה"
	MsgInternal           = "שגיאה פנימית בשרת"
)

// httpError combines an HTTP status code with a code and message
type httpError struct {
	status  int
	code    string
	message string
	cause   error
}

// Error implements error interface
func (e *httpError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// WriteError writes an error response to the response writer.
// Server errors are reported to Sentry along with the request, minus the
// session cookie.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)
	if he.status >= http.StatusInternalServerError {
		packet := raven.NewPacket(err.Error(), middleware.SentryHTTP(r, session.CookieName))
		raven.Capture(packet, map[string]string{"code": he.code})
	}

	response.JSON(w, he.status, ErrorResponse{Error: he.message, Code: he.code})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Known errors win over any fallback wrapping them
	switch {
	case errors.Is(err, newsletter.ErrMissingFields):
		return &httpError{status: http.StatusBadRequest, code: CodeMissingFields, message: MsgMissingFields}
	case errors.Is(err, newsletter.ErrRoleRequired):
		return &httpError{status: http.StatusBadRequest, code: CodeRoleRequired, message: MsgRoleRequired}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{status: http.StatusBadRequest, code: CodeEmailExists, message: MsgEmailExists}
	case errors.Is(err, auth.ErrInvalidCode):
		return &httpError{status: http.StatusUnauthorized, code: CodeInvalidCode, message: MsgInvalidCode}
	case errors.Is(err, broadcast.ErrMissingContent):
		return &httpError{status: http.StatusBadRequest, code: CodeMissingContent, message: MsgMissingContent}
	case errors.Is(err, broadcast.ErrSenderNotConfigured):
		return &httpError{status: http.StatusInternalServerError, code: CodeEmailNotConfigured, message: MsgEmailNotConfigured}
	}

	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	return &httpError{status: http.StatusInternalServerError, code: CodeInternalError, message: MsgInternal}
}

// WithFallback attaches the message shown when err is not a known error
func WithFallback(err error, message string) error {
	return &httpError{
		status:  http.StatusInternalServerError,
		code:    CodeInternalError,
		message: message,
		cause:   err,
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError() error {
	return &httpError{status: http.StatusBadRequest, code: CodeInvalidRequest, message: MsgInvalidRequest}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{status: http.StatusUnauthorized, code: CodeUnauthorized, message: MsgUnauthorized}
}
