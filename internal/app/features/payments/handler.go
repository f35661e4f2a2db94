// internal/app/features/payments/handler.go
package payments

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
	basePath    = "/payments"
	tableTarget = "payments-table-wrap"
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
| GET /payments                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList handles the payments ledger: status tabs, a payment-type
// filter, and phone/receipt search.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listpage.ParseQuery(r)

	seqKey := "payments"
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Payments", "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Tabs:  tabLinks(q, basePath),
		Types: typeOptions(q.Filter),
	}

	items, pg, err := h.API.ListPayments(ctx, platform.PaymentListParams{
		Page:   q.Page,
		Limit:  h.PageSize,
		Type:   q.Filter,
		Status: statusForTab[q.Tab],
		Search: q.Search,
	})
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list payments failed", zap.String("tab", q.Tab), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]paymentRow, 0, len(items))
		for _, p := range items {
			data.Rows = append(data.Rows, newPaymentRow(p, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "payments_table", data)
		return
	}

	templates.Render(w, r, "payments_list", data)
}

func pageStats(items []platform.Payment) []listpage.Stat {
	completed := func(p platform.Payment) bool { return p.Status == platform.PaymentCompleted }
	amount := func(p platform.Payment) float64 { return p.Amount }

	completedSum := listpage.SumWhere(items, amount, completed)
	refundedSum := listpage.SumWhere(items, amount, func(p platform.Payment) bool {
		return p.Status == platform.PaymentRefunded
	})
	pending := listpage.CountWhere(items, func(p platform.Payment) bool {
		return p.Status == platform.PaymentPending
	})

	return []listpage.Stat{
		{Label: "Payments", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Completed value", Value: fmt.Sprintf("KES %.2f", completedSum), Hint: "this page"},
		{Label: "Refunded value", Value: fmt.Sprintf("KES %.2f", refundedSum), Hint: "this page"},
		{Label: "Pending", Value: strconv.Itoa(pending), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /payments/{id}/modal                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRefundModal renders the refund confirmation modal. The payment
// row is passed along in the query so no extra backend read is needed.
func (h *Handler) ServeRefundModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		uierrors.HTMXBadRequest(w, r, "Invalid payment ID.", basePath)
		return
	}

	templates.RenderSnippet(w, "payment_refund_modal", refundModalData{
		ID:        id,
		Payer:     r.URL.Query().Get("payer"),
		Amount:    r.URL.Query().Get("amount"),
		ActionURL: basePath + "/" + id + "/refund",
		ReturnURL: viewdata.SafeReturn(r.URL.Query().Get("return"), basePath),
		CSRFToken: viewdata.NewBaseVM(r, "", "").CSRFToken,
		FormToken: formtoken.Issue(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /payments/{id}/refund                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRefundPost refunds a completed payment.
func (h *Handler) HandleRefundPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing payment id", nil, "Invalid payment ID.", basePath)
		return
	}
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	if !formtoken.Redeem(r.FormValue("form_token")) {
		h.Log.Info("duplicate refund submit ignored", zap.String("payment_id", id))
		viewdata.RedirectBack(w, r, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.RefundPayment(ctx, id, platform.RefundPaymentRequest{Notes: r.FormValue("notes")}); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "refund payment failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("payment refunded", zap.String("payment_id", id))

	viewdata.RedirectBack(w, r, ret)
}
