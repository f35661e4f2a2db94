// internal/app/features/withdrawals/handler.go
package withdrawals

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

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
	basePath    = "/withdrawals"
	tableTarget = "withdrawals-table-wrap"
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
| GET /withdrawals                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listpage.ParseQuery(r)

	seqKey := "withdrawals"
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Withdrawals", "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Tabs: tabLinks(q, basePath),
	}

	items, pg, err := h.API.ListWithdrawals(ctx, platform.WithdrawalListParams{
		Page:   q.Page,
		Limit:  h.PageSize,
		Status: statusForTab[q.Tab],
		UserID: q.Search, // search box takes a user id on this screen
	})
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list withdrawals failed", zap.String("tab", q.Tab), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]withdrawalRow, 0, len(items))
		for _, wd := range items {
			data.Rows = append(data.Rows, newWithdrawalRow(wd, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "withdrawals_table", data)
		return
	}

	templates.Render(w, r, "withdrawals_list", data)
}

func pageStats(items []platform.Withdrawal) []listpage.Stat {
	amount := func(wd platform.Withdrawal) float64 { return wd.Amount }
	pending := func(wd platform.Withdrawal) bool { return wd.Status == platform.StatusPending }

	pendingSum := listpage.SumWhere(items, amount, pending)
	paidSum := listpage.SumWhere(items, amount, func(wd platform.Withdrawal) bool {
		return wd.Status == platform.StatusCompleted
	})

	return []listpage.Stat{
		{Label: "Requests", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Awaiting payout", Value: fmt.Sprintf("KES %.2f", pendingSum), Hint: "this page"},
		{Label: "Paid out", Value: fmt.Sprintf("KES %.2f", paidSum), Hint: "this page"},
		{Label: "Pending", Value: strconv.Itoa(listpage.CountWhere(items, pending)), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /withdrawals/{id}/modal                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeProcessModal renders the payout/reject modal for a pending request.
func (h *Handler) ServeProcessModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		uierrors.HTMXBadRequest(w, r, "Invalid withdrawal ID.", basePath)
		return
	}

	templates.RenderSnippet(w, "withdrawal_process_modal", processModalData{
		ID:        id,
		Requester: r.URL.Query().Get("requester"),
		Amount:    r.URL.Query().Get("amount"),
		Phone:     r.URL.Query().Get("phone"),
		ActionURL: basePath + "/" + id + "/process",
		ReturnURL: viewdata.SafeReturn(r.URL.Query().Get("return"), basePath),
		CSRFToken: viewdata.NewBaseVM(r, "", "").CSRFToken,
		FormToken: formtoken.Issue(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /withdrawals/{id}/process                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleProcessPost completes or rejects a withdrawal. The M-Pesa
// transaction id is optional on completion; when the field is blank it
// stays out of the request body entirely.
func (h *Handler) HandleProcessPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing withdrawal id", nil, "Invalid withdrawal ID.", basePath)
		return
	}
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	if !formtoken.Redeem(r.FormValue("form_token")) {
		h.Log.Info("duplicate process submit ignored", zap.String("withdrawal_id", id))
		viewdata.RedirectBack(w, r, ret)
		return
	}

	var status string
	switch r.FormValue("decision") {
	case "complete":
		status = platform.StatusCompleted
	case "reject":
		status = platform.StatusRejected
	default:
		h.ErrLog.LogBadRequest(w, r, "bad decision value", nil, "Invalid decision.", ret)
		return
	}

	req := platform.ProcessWithdrawalRequest{
		Status:             status,
		MpesaTransactionID: strings.TrimSpace(r.FormValue("mpesa_transaction_id")),
		Notes:              r.FormValue("notes"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.ProcessWithdrawal(ctx, id, req); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "process withdrawal failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("withdrawal processed",
		zap.String("withdrawal_id", id),
		zap.String("status", status))

	viewdata.RedirectBack(w, r, ret)
}
