package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/platform"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "admindash-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func testSession() *platform.Session {
	return &platform.Session{
		Admin:        platform.Admin{ID: "a1", Email: "ops@lovebite.test", FirstName: "Ops", IsActive: true},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}
}

// roundTrip saves a session and returns a follow-up request carrying the
// resulting cookies.
func roundTrip(t *testing.T, sm *SessionManager) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := sm.SaveSession(rec, req, testSession()); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	next := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestSaveAndLoadSession(t *testing.T) {
	sm := newTestManager(t)
	req := roundTrip(t, sm)

	var gotAdmin *platform.Admin
	var gotToken string
	h := sm.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdmin, _ = CurrentAdmin(r)
		gotToken = platform.TokenFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotAdmin == nil || gotAdmin.ID != "a1" {
		t.Fatalf("CurrentAdmin = %+v", gotAdmin)
	}
	if gotToken != "access-1" {
		t.Errorf("token = %q", gotToken)
	}
	if got := sm.RefreshTokenValue(req); got != "refresh-1" {
		t.Errorf("refresh token = %q", got)
	}
}

func TestClearSession_DropsEverything(t *testing.T) {
	sm := newTestManager(t)
	req := roundTrip(t, sm)

	rec := httptest.NewRecorder()
	sm.ClearSession(rec, req)

	// Replay with the expired cookie: the session must read as signed out.
	after := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		after.AddCookie(c)
	}

	var found bool
	h := sm.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = CurrentAdmin(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), after)

	if found {
		t.Error("admin still present after ClearSession")
	}
}

func TestRequireSignedIn_RedirectsBrowser(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/withdrawals?status=PENDING", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without session")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location = %q", loc)
	}
	if !strings.Contains(loc, "PENDING") {
		t.Errorf("return URL lost the filter: %q", loc)
	}
}

func TestRequireSignedIn_HTMXRedirect(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/escorts/table", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(got, "/login") {
		t.Errorf("HX-Redirect = %q", got)
	}
}

func TestRequireSignedIn_PassesThrough(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = WithTestAdmin(req, &platform.Admin{ID: "a1"}, "tok")
	rec := httptest.NewRecorder()

	var reached bool
	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})).ServeHTTP(rec, req)

	if !reached {
		t.Error("handler not reached with session present")
	}
}

func TestHandleExpired_ClearsAndRedirects(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/payments", nil)
	req.Header.Set("Accept", "text/html")
	req = WithTestAdmin(req, &platform.Admin{ID: "a1"}, "stale")
	rec := httptest.NewRecorder()

	sm.HandleExpired(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("Location = %q", loc)
	}
}

func TestNewSessionManager_RejectsEmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "name", "", false, zap.NewNop()); err == nil {
		t.Error("want error for empty session key")
	}
}
