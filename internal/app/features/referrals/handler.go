// internal/app/features/referrals/handler.go
package referrals

import (
	"context"
	"fmt"
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
	basePath    = "/referrals"
	tableTarget = "referrals-table-wrap"
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

/*─────────────────────────────────────────────────────────────────────────────*
| GET /referrals                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList handles the referral-reward queue. The secondary filter is
// the referral level (1 = direct, 2 = second degree).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listpage.ParseQuery(r)

	seqKey := "referrals"
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	level, _ := strconv.Atoi(q.Filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Referrals", "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Tabs: tabLinks(q, basePath),
	}

	items, pg, err := h.API.ListReferrals(ctx, platform.ReferralListParams{
		Page:           q.Page,
		Limit:          h.PageSize,
		Status:         statusForTab[q.Tab],
		ReferrerUserID: q.Search, // search box takes a referrer user id
		Level:          level,
	})
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list referrals failed", zap.String("tab", q.Tab), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]referralRow, 0, len(items))
		for _, ref := range items {
			data.Rows = append(data.Rows, newReferralRow(ref, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "referrals_table", data)
		return
	}

	templates.Render(w, r, "referrals_list", data)
}

func pageStats(items []platform.Referral) []listpage.Stat {
	reward := func(ref platform.Referral) float64 { return ref.RewardAmount }
	pending := func(ref platform.Referral) bool { return ref.Status == platform.StatusPending }

	pendingSum := listpage.SumWhere(items, reward, pending)
	approvedSum := listpage.SumWhere(items, reward, func(ref platform.Referral) bool {
		return ref.Status == platform.StatusCompleted
	})

	return []listpage.Stat{
		{Label: "Rewards", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Awaiting approval", Value: fmt.Sprintf("KES %.2f", pendingSum), Hint: "this page"},
		{Label: "Approved value", Value: fmt.Sprintf("KES %.2f", approvedSum), Hint: "this page"},
		{Label: "Pending", Value: strconv.Itoa(listpage.CountWhere(items, pending)), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /referrals/{id}/modal                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeApproveModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		uierrors.HTMXBadRequest(w, r, "Invalid referral ID.", basePath)
		return
	}

	templates.RenderSnippet(w, "referral_approve_modal", approveModalData{
		ID:        id,
		Referrer:  r.URL.Query().Get("referrer"),
		Reward:    r.URL.Query().Get("reward"),
		ActionURL: basePath + "/" + id + "/approve",
		ReturnURL: viewdata.SafeReturn(r.URL.Query().Get("return"), basePath),
		CSRFToken: viewdata.NewBaseVM(r, "", "").CSRFToken,
		FormToken: formtoken.Issue(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /referrals/{id}/approve                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleApprovePost approves or rejects a referral reward. Approval
// credits the referrer's wallet on the backend.
func (h *Handler) HandleApprovePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing referral id", nil, "Invalid referral ID.", basePath)
		return
	}
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	if !formtoken.Redeem(r.FormValue("form_token")) {
		h.Log.Info("duplicate approve submit ignored", zap.String("referral_id", id))
		viewdata.RedirectBack(w, r, ret)
		return
	}

	var approve bool
	switch r.FormValue("decision") {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		h.ErrLog.LogBadRequest(w, r, "bad decision value", nil, "Invalid decision.", ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req := platform.ApproveReferralRequest{Approve: approve, Notes: r.FormValue("notes")}
	if _, err := h.API.ApproveReferral(ctx, id, req); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "approve referral failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("referral reviewed",
		zap.String("referral_id", id),
		zap.Bool("approved", approve))

	viewdata.RedirectBack(w, r, ret)
}
