// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/formtoken"
	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

// tableTarget is the id of the wrapper div HTMX swaps on refresh.
const tableTarget = "users-table-wrap"

type Handler struct {
	API      *platform.Client
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Seq      *listpage.Sequencer
	PageSize int
}

func NewHandler(api *platform.Client, errLog *uierrors.ErrorLogger, seq *listpage.Sequencer, pageSize int, logger *zap.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = listpage.DefaultPageSize
	}
	return &Handler{API: api, Log: logger, ErrLog: errLog, Seq: seq, PageSize: pageSize}
}

// roleForVertical maps the URL segment to a backend role filter.
func roleForVertical(vertical string) (role, label string, ok bool) {
	switch vertical {
	case "dating":
		return platform.RoleDatingUser, "Dating Users", true
	case "hookup":
		return platform.RoleHookupUser, "Hookup Users", true
	default:
		return "", "", false
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{vertical}                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	vertical := chi.URLParam(r, "vertical")
	role, label, ok := roleForVertical(vertical)
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := listpage.ParseQuery(r)
	basePath := "/users/" + vertical

	seqKey := "users:" + vertical
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, label, "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Vertical: vertical,
	}

	items, pg, err := h.API.ListUsers(ctx, platform.UserListParams{
		Page:   q.Page,
		Limit:  h.PageSize,
		Role:   role,
		Search: q.Search,
	})
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list users failed", zap.String("vertical", vertical), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]userRow, 0, len(items))
		for _, u := range items {
			data.Rows = append(data.Rows, newUserRow(u, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	// HTMX partial table refresh: drop stale responses so a slow page 2
	// can't overwrite the page 3 the operator has since requested.
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "users_table", data)
		return
	}

	templates.Render(w, r, "users_list", data)
}

// pageStats derives the subtotal cards for the rows actually shown.
func pageStats(items []platform.User) []listpage.Stat {
	active := listpage.CountWhere(items, func(u platform.User) bool { return u.IsActive })
	wallet := listpage.SumWhere(items, func(u platform.User) float64 { return u.WalletBalance }, nil)

	return []listpage.Stat{
		{Label: "Users", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Active", Value: strconv.Itoa(active), Hint: "this page"},
		{Label: "Suspended", Value: strconv.Itoa(len(items) - active), Hint: "this page"},
		{Label: "Wallet total", Value: "KES " + strconv.FormatFloat(wallet, 'f', 2, 64), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{vertical}/{id}/modal                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeStatusModal renders the suspend/activate confirmation modal for a
// single user. Invoked via HTMX from the list page; returns only the
// modal snippet.
func (h *Handler) ServeStatusModal(w http.ResponseWriter, r *http.Request) {
	vertical := chi.URLParam(r, "vertical")
	if _, _, ok := roleForVertical(vertical); !ok {
		http.NotFound(w, r)
		return
	}
	basePath := "/users/" + vertical

	id := chi.URLParam(r, "id")
	if id == "" {
		uierrors.HTMXBadRequest(w, r, "Invalid user ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.API.GetUser(ctx, id)
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		uierrors.HTMXNotFound(w, r, "User not found.", basePath)
		return
	}

	templates.RenderSnippet(w, "user_status_modal", statusModalData{
		ID:        u.ID,
		Name:      u.Name(),
		Email:     u.Email,
		IsActive:  u.IsActive,
		ActionURL: basePath + "/" + u.ID + "/status",
		ReturnURL: viewdata.SafeReturn(r.URL.Query().Get("return"), basePath),
		CSRFToken: viewdata.NewBaseVM(r, "", "").CSRFToken,
		FormToken: formtoken.Issue(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /users/{vertical}/{id}/status                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleStatusPost suspends or reactivates a user, then sends the
// browser back to the list it came from so the table refetches.
func (h *Handler) HandleStatusPost(w http.ResponseWriter, r *http.Request) {
	vertical := chi.URLParam(r, "vertical")
	if _, _, ok := roleForVertical(vertical); !ok {
		http.NotFound(w, r)
		return
	}
	basePath := "/users/" + vertical

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing user id", nil, "Invalid user ID.", basePath)
		return
	}
	active := r.FormValue("is_active") == "true"
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	if !formtoken.Redeem(r.FormValue("form_token")) {
		h.Log.Info("duplicate status submit ignored", zap.String("user_id", id))
		viewdata.RedirectBack(w, r, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.UpdateUserStatus(ctx, id, platform.UpdateUserStatusRequest{IsActive: active}); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "update user status failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("user status updated",
		zap.String("user_id", id),
		zap.Bool("is_active", active))

	viewdata.RedirectBack(w, r, ret)
}
