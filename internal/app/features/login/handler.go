// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

type Handler struct {
	API        *platform.Client
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger

	// RegistrationOpen gates the register page. The backend additionally
	// requires the shared secret key, so closing this only hides the UI.
	RegistrationOpen bool
}

func NewHandler(api *platform.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, registrationOpen bool, logger *zap.Logger) *Handler {
	return &Handler{
		API:              api,
		Log:              logger,
		SessionMgr:       sessionMgr,
		ErrLog:           errLog,
		RegistrationOpen: registrationOpen,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error            string
	FieldErrors      map[string][]string
	Email            string
	ReturnURL        string
	RegistrationOpen bool
}

type registerFormData struct {
	viewdata.BaseVM
	Error       string
	FieldErrors map[string][]string
	Email       string
	FirstName   string
	LastName    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentAdmin(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:           viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:        safeReturn(query.Get(r, "return")),
		RegistrationOpen: h.RegistrationOpen,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	ret := safeReturn(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", nil, email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sess, err := h.API.Login(ctx, platform.LoginRequest{Email: email, Password: password})
	if err != nil {
		h.renderLoginError(w, r, err, email, ret)
		return
	}

	if err := h.SessionMgr.SaveSession(w, r, sess); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not start your session.", "/login")
		return
	}

	h.Log.Info("admin signed in", zap.String("admin_id", sess.Admin.ID))

	if ret == "" {
		ret = "/dashboard"
	}
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// renderLoginError maps a backend failure onto the login form. A 401 here
// means bad credentials, not an expired session, so it never clears state.
func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, err error, email, ret string) {
	var pe *platform.Error
	if errors.As(err, &pe) {
		switch {
		case pe.StatusCode == http.StatusUnauthorized:
			h.renderFormWithError(w, r, "Invalid email or password.", nil, email, ret)
			return
		case len(pe.FieldErrors) > 0:
			h.renderFormWithError(w, r, pe.Message, pe.FieldErrors, email, ret)
			return
		}
	}
	h.Log.Warn("login call failed", zap.Error(err))
	h.renderFormWithError(w, r, platform.Message(err), nil, email, ret)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg string, fieldErrs map[string][]string, email, ret string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:           viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:            msg,
		FieldErrors:      fieldErrs,
		Email:            email,
		ReturnURL:        ret,
		RegistrationOpen: h.RegistrationOpen,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login/register                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	if !h.RegistrationOpen {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if _, ok := auth.CurrentAdmin(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create admin account", "/login"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login/register                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if !h.RegistrationOpen {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/register")
		return
	}

	req := platform.RegisterRequest{
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		SecretKey: r.FormValue("secret_key"),
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.SecretKey == "" {
		h.renderRegisterWithError(w, r, "Please fill in every required field.", nil, req)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sess, err := h.API.Register(ctx, req)
	if err != nil {
		var pe *platform.Error
		if errors.As(err, &pe) && len(pe.FieldErrors) > 0 {
			h.renderRegisterWithError(w, r, pe.Message, pe.FieldErrors, req)
			return
		}
		h.Log.Warn("register call failed", zap.Error(err))
		h.renderRegisterWithError(w, r, platform.Message(err), nil, req)
		return
	}

	if err := h.SessionMgr.SaveSession(w, r, sess); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not start your session.", "/login")
		return
	}

	h.Log.Info("admin registered", zap.String("admin_id", sess.Admin.ID))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) renderRegisterWithError(w http.ResponseWriter, r *http.Request, msg string, fieldErrs map[string][]string, req platform.RegisterRequest) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "register", registerFormData{
		BaseVM:      viewdata.NewBaseVM(r, "Create admin account", "/login"),
		Error:       msg,
		FieldErrors: fieldErrs,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
}

// safeReturn keeps return targets on-site: relative paths only.
func safeReturn(ret string) string {
	return viewdata.SafeReturn(ret, "")
}
