// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
)

// snippetData is the view model for the inline error panel.
type snippetData struct {
	Message  string
	RetryURL string
	BackURL  string
}

// renderError picks the right shape for an error response. HTMX
// requests get the inline panel so the page around them stays intact;
// plain requests get the full error page.
func renderError(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Reswap", "innerHTML")
		w.WriteHeader(status)
		templates.RenderSnippet(w, "error_snippet", snippetData{
			Message:  msg,
			RetryURL: r.URL.RequestURI(),
			BackURL:  backURL,
		})
		return
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong", backURL),
		Message: msg,
	})
}

// Snippet renders the inline error panel into an arbitrary writer.
// Features use it to place a fetch failure inside an otherwise
// healthy page, with a retry link pointing at the same URL.
func Snippet(w http.ResponseWriter, r *http.Request, msg string) {
	templates.RenderSnippet(w, "error_snippet", snippetData{
		Message:  msg,
		RetryURL: r.URL.RequestURI(),
	})
}

// HTMXBadRequest renders the inline error panel with a 400 status.
func HTMXBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderError(w, r, http.StatusBadRequest, msg, backURL)
}

// HTMXNotFound renders the inline error panel with a 404 status.
func HTMXNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderError(w, r, http.StatusNotFound, msg, backURL)
}
