// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/lovebite/admindash/internal/app/system/auth"
)

// SiteName is the dashboard's display name.
const SiteName = "LoveBite Admin"

// BaseVM contains the fields every page template needs. Embed it in the
// feature-specific view model:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(r, "Withdrawals", "/dashboard"),
//	    ...
//	}
type BaseVM struct {
	SiteName string

	// Operator context (from the session middleware)
	IsLoggedIn bool
	AdminName  string
	AdminEmail string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection for form submissions
	CSRFToken string
}

// SafeReturn keeps post-action redirects on-site. Anything that is not a
// relative path falls back to the given default.
func SafeReturn(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	return raw
}

// RedirectBack sends the browser to url after a form action: HX-Redirect
// for HTMX submits, a 303 otherwise.
func RedirectBack(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// NewBaseVM builds a populated BaseVM for a page render.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     backDefault,
		CurrentPath: r.URL.Path,
		CSRFToken:   csrf.Token(r),
	}

	if a, ok := auth.CurrentAdmin(r); ok {
		vm.IsLoggedIn = true
		vm.AdminName = a.FirstName + " " + a.LastName
		vm.AdminEmail = a.Email
	}
	return vm
}
