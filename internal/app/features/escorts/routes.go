// internal/app/features/escorts/routes.go
package escorts

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}/modal", h.ServeVerifyModal)
		pr.Post("/{id}/verify", h.HandleVerifyPost)
	})
	return r
}
