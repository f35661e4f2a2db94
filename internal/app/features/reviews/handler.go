// internal/app/features/reviews/handler.go
package reviews

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

const (
	basePath    = "/reviews"
	tableTarget = "reviews-table-wrap"
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
| GET /reviews                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList handles the escort-review moderation list. Comments are
// user-authored and pass through the sanitizer before rendering.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listpage.ParseQuery(r)

	seqKey := "reviews"
	if a, signed := auth.CurrentAdmin(r); signed {
		seqKey += ":" + a.ID
	}
	gen := h.Seq.Begin(seqKey)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Reviews", "/dashboard"),
		ListVM: listpage.ListVM{
			Query:       q,
			BasePath:    basePath,
			TableTarget: tableTarget,
		},
		Tabs: tabLinks(q, basePath),
	}

	items, pg, err := h.API.ListReviews(ctx, platform.ReviewListParams{
		Page:     q.Page,
		Limit:    h.PageSize,
		EscortID: q.Search, // search box takes an escort id
		Visible:  visibleForTab(q.Tab),
	})
	if err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.Log.Warn("list reviews failed", zap.String("tab", q.Tab), zap.Error(err))
		data.FetchError = platform.Message(err)
	} else {
		data.Rows = make([]reviewRow, 0, len(items))
		for _, rv := range items {
			data.Rows = append(data.Rows, newReviewRow(rv, q, basePath))
		}
		data.Nav = listpage.BuildNav(pg, len(items))
		data.Stats = pageStats(items)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableTarget {
		if !h.Seq.StillLatest(seqKey, gen) {
			listpage.Suppress(w)
			return
		}
		templates.RenderSnippet(w, "reviews_table", data)
		return
	}

	templates.Render(w, r, "reviews_list", data)
}

func pageStats(items []platform.Review) []listpage.Stat {
	hidden := func(rv platform.Review) bool { return !rv.Visible }

	return []listpage.Stat{
		{Label: "Reviews", Value: strconv.Itoa(len(items)), Hint: "this page"},
		{Label: "Hidden", Value: strconv.Itoa(listpage.CountWhere(items, hidden)), Hint: "this page"},
		{Label: "Average rating", Value: averageRating(items), Hint: "this page"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /reviews/{id}/visibility                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleVisibilityPost hides or shows a review. Hidden reviews stay in
// the backend and can be restored from the hidden tab.
func (h *Handler) HandleVisibilityPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing review id", nil, "Invalid review ID.", basePath)
		return
	}
	ret := viewdata.SafeReturn(r.FormValue("return"), basePath)

	var visible bool
	switch r.FormValue("visible") {
	case "true":
		visible = true
	case "false":
		visible = false
	default:
		h.ErrLog.LogBadRequest(w, r, "bad visible value", nil, "Invalid visibility value.", ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.SetReviewVisibility(ctx, id, platform.SetReviewVisibilityRequest{Visible: visible}); err != nil {
		if h.ErrLog.HandleAuth(w, r, err) {
			return
		}
		h.ErrLog.LogServerError(w, r, "set review visibility failed", err, platform.Message(err), ret)
		return
	}

	h.Log.Info("review visibility changed",
		zap.String("review_id", id),
		zap.Bool("visible", visible))

	viewdata.RedirectBack(w, r, ret)
}
