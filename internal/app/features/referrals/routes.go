// internal/app/features/referrals/routes.go
package referrals

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}/modal", h.ServeApproveModal)
		pr.Post("/{id}/approve", h.HandleApprovePost)
	})
	return r
}
