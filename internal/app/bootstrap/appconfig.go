// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where you put everything specific to YOUR application.
// The dashboard owns no database; the platform backend is its only
// upstream, so the config surface is the backend URL plus cookie and
// presentation settings.
type AppConfig struct {
	// Platform backend
	APIBaseURL string        // backend base URL including the version prefix (e.g. https://api.lovebiteglobal.com/api/v1)
	APITimeout time.Duration // per-call ceiling for backend requests

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: admindash-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for gorilla/csrf token signing

	// Presentation
	PageSize int // rows per list page

	// Admin registration (gated by the backend's shared secret key)
	RegistrationOpen bool // expose the /login/register form
}
