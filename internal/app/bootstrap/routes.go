// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	accountfeature "github.com/lovebite/admindash/internal/app/features/account"
	dashboardfeature "github.com/lovebite/admindash/internal/app/features/dashboard"
	errorsfeature "github.com/lovebite/admindash/internal/app/features/errors"
	escortsfeature "github.com/lovebite/admindash/internal/app/features/escorts"
	healthfeature "github.com/lovebite/admindash/internal/app/features/health"
	loginfeature "github.com/lovebite/admindash/internal/app/features/login"
	logoutfeature "github.com/lovebite/admindash/internal/app/features/logout"
	paymentsfeature "github.com/lovebite/admindash/internal/app/features/payments"
	referralsfeature "github.com/lovebite/admindash/internal/app/features/referrals"
	reviewsfeature "github.com/lovebite/admindash/internal/app/features/reviews"
	usersfeature "github.com/lovebite/admindash/internal/app/features/users"
	withdrawalsfeature "github.com/lovebite/admindash/internal/app/features/withdrawals"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/listpage"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, and any
// Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the platform API client bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// This function should:
//  1. Create a router (chi, standard mux, etc.)
//  2. Mount feature routers for different parts of your application
//  3. Add any additional middleware needed for specific routes
//  4. Return the configured router as an http.Handler
//
// The dashboard initializes the template engine, applies session and CSRF
// middleware, and mounts feature routers for all application areas: login,
// dashboard, users, escorts, payments, withdrawals, referrals, and reviews.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers. It also carries the central
	// 401/403 intercept that clears the session.
	errLog := errorsfeature.NewErrorLogger(logger, sessionMgr)

	// One sequencer shared by every list screen, keyed per feature and admin.
	seq := listpage.NewSequencer()

	r := chi.NewRouter()

	// Global auth middleware: loads the admin profile and bearer token
	// into context when the session cookie is present.
	r.Use(sessionMgr.LoadSession)

	// Every POST carries the gorilla/csrf token, either as a form field or
	// via the X-CSRF-Token header HTMX sends from the page meta tag.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root: signed-in admins land on the dashboard, everyone else on login.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if _, ok := auth.CurrentAdmin(req); ok {
			http.Redirect(w, req, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, errLog, appCfg.RegistrationOpen, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Aggregate stats
	dashboardHandler := dashboardfeature.NewHandler(deps.API, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// User management (dating and hookup verticals)
	usersHandler := usersfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Escort listings and verification
	escortsHandler := escortsfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/escorts", escortsfeature.Routes(escortsHandler, sessionMgr))

	// Money in and money out
	paymentsHandler := paymentsfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, sessionMgr))

	withdrawalsHandler := withdrawalsfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/withdrawals", withdrawalsfeature.Routes(withdrawalsHandler, sessionMgr))

	// Referral rewards
	referralsHandler := referralsfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/referrals", referralsfeature.Routes(referralsHandler, sessionMgr))

	// Review moderation
	reviewsHandler := reviewsfeature.NewHandler(deps.API, errLog, seq, appCfg.PageSize, logger)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))

	// Admin profile and token refresh
	accountHandler := accountfeature.NewHandler(deps.API, sessionMgr, errLog, logger)
	r.Mount("/account", accountfeature.Routes(accountHandler, sessionMgr))

	return r, nil
}
