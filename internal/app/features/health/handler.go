// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/app/system/timeouts"
	"github.com/lovebite/admindash/internal/platform"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API *platform.Client
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the backend client and logger.
func NewHandler(api *platform.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"reachable" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "backend":"unreachable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "error",
			Backend: "unreachable",
			Error:   err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Backend: "reachable",
	})
}
