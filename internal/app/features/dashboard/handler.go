// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

type Handler struct {
	API    *platform.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api *platform.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger, ErrLog: errLog}
}

type pageData struct {
	viewdata.BaseVM
	Stats      *platform.DashboardStats
	Revenue    string
	FetchError string
}

// ServeDashboard handles GET /dashboard: the platform-wide aggregate
// counters. A failed stats call renders the page shell with an inline
// error so navigation keeps working.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
	}

	stats, err := h.API.DashboardStats(ctx)
	switch {
	case err == nil:
		data.Stats = stats
		data.Revenue = fmt.Sprintf("KES %.2f", stats.Payments.TotalRevenue)
	case h.ErrLog.HandleAuth(w, r, err):
		return
	default:
		h.Log.Warn("dashboard stats fetch failed", zap.Error(err))
		data.FetchError = platform.Message(err)
	}

	templates.Render(w, r, "dashboard", data)
}
