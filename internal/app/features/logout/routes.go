// internal/app/features/logout/routes.go
package logout

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	// No RequireSignedIn gate: logging out while signed out is a no-op
	// that still lands on /login.
	r.Get("/", h.ServeLogout)
	return r
}
