// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles GET /logout. The backend has no logout endpoint;
// dropping the cookie-held token pair is the whole operation.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if a, ok := auth.CurrentAdmin(r); ok {
		h.Log.Info("admin signed out", zap.String("admin_id", a.ID))
	}

	h.SessionMgr.ClearSession(w, r)

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
