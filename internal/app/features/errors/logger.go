// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/platform"
)

// ErrorLogger logs failures and renders the matching error response.
// When the wrapped error is an expired or rejected credential from the
// backend, it hands the request to the session manager instead, which
// clears the session and bounces the browser to /login.
type ErrorLogger struct {
	log      *zap.Logger
	sessions *auth.SessionManager
}

// NewErrorLogger constructs an ErrorLogger. sessions may be nil in
// tests that never exercise the credential-expiry path.
func NewErrorLogger(log *zap.Logger, sessions *auth.SessionManager) *ErrorLogger {
	return &ErrorLogger{log: log, sessions: sessions}
}

// HandleAuth checks whether err is a 401/403 from the backend and, if
// so, clears the session and redirects to /login. Returns true when
// the response has been written and the caller should stop.
func (e *ErrorLogger) HandleAuth(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil || !platform.IsAuth(err) {
		return false
	}
	if e.sessions != nil {
		e.sessions.HandleExpired(w, r)
		return true
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// LogServerError logs an internal failure and renders a 500 error
// response: an inline snippet for HTMX requests, a full error page
// otherwise. userMsg is shown to the admin; backURL labels the way out.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	if e.HandleAuth(w, r, err) {
		return
	}
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
	renderError(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs a client-side failure (bad form data, malformed
// IDs) and renders a 400 error response. err may be nil.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
	renderError(w, r, http.StatusBadRequest, userMsg, backURL)
}
