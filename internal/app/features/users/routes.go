// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{vertical}", h.ServeList)
		pr.Get("/{vertical}/{id}/modal", h.ServeStatusModal)
		pr.Post("/{vertical}/{id}/status", h.HandleStatusPost)
	})
	return r
}
