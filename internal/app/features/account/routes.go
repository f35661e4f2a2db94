// internal/app/features/account/routes.go
package account

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeProfile)
		pr.Post("/refresh", h.HandleRefreshPost)
	})
	return r
}
