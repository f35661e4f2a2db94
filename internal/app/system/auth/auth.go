// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/platform"
)

// Session value keys. All three are written together on login/refresh and
// cleared together on logout; readers treat any missing key as signed out.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
	adminProfileKey = "admin_profile"
)

// SessionManager owns the admin's cookie session: the backend token pair and
// the cached admin profile. It is the single writer of session state; every
// other component only reads through the request context.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. Secure cookies
// are expected in production; SameSite stays Lax since the dashboard is
// same-origin.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("cookie", name))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SaveSession persists the token pair and admin profile from a successful
// login, register or refresh. Partial writes are not a supported state, so
// everything lands in one cookie save.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, r *http.Request, s *platform.Session) error {
	sess, _ := sm.store.Get(r, sm.name)

	profile, err := json.Marshal(s.Admin)
	if err != nil {
		return fmt.Errorf("encode admin profile: %w", err)
	}

	sess.Values[accessTokenKey] = s.AccessToken
	sess.Values[refreshTokenKey] = s.RefreshToken
	sess.Values[adminProfileKey] = string(profile)
	return sess.Save(r, w)
}

// ClearSession drops all session state. Used on logout and whenever the
// backend answers 401/403.
func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

// RefreshTokenValue returns the stored refresh token, or "" when signed out.
func (sm *SessionManager) RefreshTokenValue(r *http.Request) string {
	sess, _ := sm.store.Get(r, sm.name)
	return getString(sess, refreshTokenKey)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the signed-in admin profile and a "found?" flag.
// Being signed in is a pure presence check on the access token; expiry is
// discovered reactively through a 401 from the backend.
func CurrentAdmin(r *http.Request) (*platform.Admin, bool) {
	a, ok := r.Context().Value(currentAdminKey).(*platform.Admin)
	return a, ok
}

// LoadSession reads the cookie session and, when a token is present, injects
// the admin profile and bearer token into the request context. Every backend
// call made with r.Context() then carries the token automatically.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// A decode failure means a cookie signed with a rotated or
			// foreign key; treat the visitor as signed out.
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				sm.log.Warn("session cookie invalid, treating as signed out", zap.Error(err))
			} else {
				sm.log.Error("session store error", zap.Error(err))
			}
		}

		token := getString(sess, accessTokenKey)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := platform.WithToken(r.Context(), token)
		if raw := getString(sess, adminProfileKey); raw != "" {
			var a platform.Admin
			if err := json.Unmarshal([]byte(raw), &a); err == nil {
				ctx = context.WithValue(ctx, currentAdminKey, &a)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSignedIn gates a route group on a present session.
// If not signed in:
//   - HTMX: HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  plain 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		RedirectToLogin(w, r)
	})
}

// RedirectToLogin routes an unauthenticated request to the login flow,
// preserving where it came from.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(r.URL.RequestURI())

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// HandleExpired is the central intercept for a 401/403 from the backend: the
// session is cleared and the operator is sent back to the login flow, no
// matter which page triggered the call.
func (sm *SessionManager) HandleExpired(w http.ResponseWriter, r *http.Request) {
	if a, ok := CurrentAdmin(r); ok {
		sm.log.Info("backend rejected session, signing out",
			zap.String("admin_id", a.ID))
	}
	sm.ClearSession(w, r)
	RedirectToLogin(w, r)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Test helpers                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// WithTestAdmin injects an admin and token directly into the request context,
// bypassing the cookie session. Test-only.
func WithTestAdmin(r *http.Request, a *platform.Admin, token string) *http.Request {
	ctx := platform.WithToken(r.Context(), token)
	ctx = context.WithValue(ctx, currentAdminKey, a)
	return r.WithContext(ctx)
}

// helpers

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
