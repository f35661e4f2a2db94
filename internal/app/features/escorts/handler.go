// internal/app/features/escorts/handler.go
package escorts

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

const (
	basePath    = "/escorts"
	tableTarget = "escorts-table-wrap"
)

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

// paramsForTab translates the active tab into backend filters.
func paramsForTab(q listpage.Query, pageSize int) platform.EscortListParams {
	p := platform.EscortListParams{
		Page:   q.Page,
		Limit:  pageSize,
		Search: q.Search,
	}
	t := true
	f := false
	switch q.Tab {
	case tabVerified:
		p.Verified = &t
	case tabPending:
		p.Verified = &f
	case tabVIP:
		p.VIPStatus = &t
	}
	return p
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /escorts                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listpage.ParseQuery(r)

	seqKey := "escorts"
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Escorts", "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Tabs: tabLinks(q, basePath),
	}

	items, pg, err := h.API.ListEscorts(ctx, paramsForTab(q, h.PageSize))
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list escorts failed", zap.String("tab", q.Tab), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]escortRow, 0, len(items))
		for _, e := range items {
			data.Rows = append(data.Rows, newEscortRow(e, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "escorts_table", data)
		return
	}

	templates.Render(w, r, "escorts_list", data)
}

func pageStats(items []platform.Escort) []listpage.Stat {
	verified := listpage.CountWhere(items, func(e platform.Escort) bool { return e.Verified })
	vip := listpage.CountWhere(items, func(e platform.Escort) bool { return e.VIPStatus })

	return []listpage.Stat{
		{Label: "Listings", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Verified", Value: strconv.Itoa(verified), Hint: "this page"},
		{Label: "Awaiting review", Value: strconv.Itoa(len(items) - verified), Hint: "this page"},
		{Label: "VIP", Value: strconv.Itoa(vip), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /escorts/{id}/modal                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeVerifyModal renders the grant/revoke verification modal.
func (h *Handler) ServeVerifyModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		uierrors.HTMXBadRequest(w, r, "Invalid escort ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.API.GetEscort(ctx, id)
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		uierrors.HTMXNotFound(w, r, "Escort not found.", basePath)
		return
	}

	templates.RenderSnippet(w, "escort_verify_modal", verifyModalData{
		ID:        e.ID,
		Name:      e.Name,
		Verified:  e.Verified,
		ActionURL: basePath + "/" + e.ID + "/verify",
		ReturnURL: viewdata.SafeReturn(r.URL.Query().Get("return"), basePath),
		CSRFToken: viewdata.NewBaseVM(r, "", "").CSRFToken,
		FormToken: formtoken.Issue(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /escorts/{id}/verify                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleVerifyPost grants or revokes verification for a listing.
func (h *Handler) HandleVerifyPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing escort id", nil, "Invalid escort ID.", basePath)
		return
	}
	verified := r.FormValue("verified") == "true"
	notes := r.FormValue("notes")
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	if !formtoken.Redeem(r.FormValue("form_token")) {
		h.Log.Info("duplicate verify submit ignored", zap.String("escort_id", id))
		viewdata.RedirectBack(w, r, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.VerifyEscort(ctx, id, platform.VerifyEscortRequest{Verified: verified, Notes: notes}); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "verify escort failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("escort verification updated",
		zap.String("escort_id", id),
		zap.Bool("verified", verified))

	viewdata.RedirectBack(w, r, ret)
}
