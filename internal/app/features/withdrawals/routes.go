// internal/app/features/withdrawals/routes.go
package withdrawals

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}/modal", h.ServeProcessModal)
		pr.Post("/{id}/process", h.HandleProcessPost)
	})
	return r
}
