// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
)

// pageData is the view model for full error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler renders the standalone error pages.
// No backend calls; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Access denied", "/dashboard"),
		Message: "You don't have permission to view this page.",
	}
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_page", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Sign in required", "/login"),
		Message: "Please sign in to continue.",
	}
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_page", data)
}
