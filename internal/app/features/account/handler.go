// internal/app/features/account/handler.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

const basePath = "/account"

type Handler struct {
	API        *platform.Client
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(api *platform.Client, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger, SessionMgr: sm, ErrLog: errLog}
}

type pageData struct {
	viewdata.BaseVM
	Admin      *platform.Admin
	LastLogin  string
	Joined     string
	FetchError string
	Refreshed  bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /account                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeProfile shows the signed-in admin's profile, fetched fresh from
// the backend. On a fetch failure the session copy is shown instead.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Account", "/dashboard"),
		Refreshed: r.URL.Query().Get("refreshed") == "1",
	}

	admin, err := h.API.Profile(ctx)
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("profile fetch failed", zap.Error(err))
		data.FetchError = platform.Message(err)
		if a, signed := auth.CurrentAdmin(r); signed {
			admin = a
		}
	}
	if admin != nil {
		data.Admin = admin
		data.Joined = admin.CreatedAt.Format("2 Jan 2006")
		if admin.LastLogin != nil {
			data.LastLogin = admin.LastLogin.Format("2 Jan 2006 15:04")
		}
	}

	templates.Render(w, r, "account", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /account/refresh                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRefreshPost trades the stored refresh token for a new token pair
// and rewrites the session. Without a refresh token the admin has to
// sign in again.
func (h *Handler) HandleRefreshPost(w http.ResponseWriter, r *http.Request) {
	refresh := h.SessionMgr.RefreshTokenValue(r)
	if refresh == "" {
		h.SessionMgr.HandleExpired(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.API.RefreshToken(ctx, refresh)
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "token refresh failed", err, platform.Message(err), basePath)
		return
	}

	if err := h.SessionMgr.SaveSession(w, r, sess); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Could not update your session.", basePath)
		return
	}

	h.Log.Info("session refreshed", zap.String("admin_id", sess.Admin.ID))

	viewdata.RedirectBack(w, r, basePath+"?refreshed=1")
}
