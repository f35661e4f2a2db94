package login_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/features/login"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/platform"
	"github.com/lovebite/admindash/internal/testutil"
)

func newTestHandler(t *testing.T, backend *testutil.FakeBackend) *login.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	errLog := uierrors.NewErrorLogger(logger, sm)
	return login.NewHandler(backend.Client(), sm, errLog, true, logger)
}

func newLoginPost(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req, err := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLoginPost_Success(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("POST", "/admin/auth/login", platform.Session{
		Admin:        *testutil.TestAdmin(),
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, nil)

	h := newTestHandler(t, backend)

	req := newLoginPost(t, url.Values{
		"email":    {"admin@test.com"},
		"password": {"hunter22"},
	})
	rec := testutil.NewRecorder()

	h.HandleLoginPost(rec, req)

	rec.AssertRedirect(t, "/dashboard")

	call, ok := backend.LastCall("POST", "/admin/auth/login")
	if !ok {
		t.Fatal("no login call recorded")
	}
	var body platform.LoginRequest
	call.DecodeBody(t, &body)
	if body.Email != "admin@test.com" || body.Password != "hunter22" {
		t.Errorf("login body: got %+v", body)
	}

	// Session cookie must be set with the token pair.
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie after login")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("POST", "/admin/auth/login", platform.Session{
		Admin:       *testutil.TestAdmin(),
		AccessToken: "access-1",
	}, nil)

	h := newTestHandler(t, backend)

	req := newLoginPost(t, url.Values{
		"email":    {"admin@test.com"},
		"password": {"hunter22"},
		"return":   {"/withdrawals?page=2"},
	})
	rec := testutil.NewRecorder()

	h.HandleLoginPost(rec, req)
	rec.AssertRedirect(t, "/withdrawals?page=2")
}

func TestHandleLoginPost_OffsiteReturnIgnored(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("POST", "/admin/auth/login", platform.Session{
		Admin:       *testutil.TestAdmin(),
		AccessToken: "access-1",
	}, nil)

	h := newTestHandler(t, backend)

	req := newLoginPost(t, url.Values{
		"email":    {"admin@test.com"},
		"password": {"hunter22"},
		"return":   {"https://evil.example/phish"},
	})
	rec := testutil.NewRecorder()

	h.HandleLoginPost(rec, req)
	rec.AssertRedirect(t, "/dashboard")
}

func TestHandleLoginPost_BadCredentials(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.HandleError("POST", "/admin/auth/login", http.StatusUnauthorized, "Invalid credentials", nil)

	h := newTestHandler(t, backend)

	req := newLoginPost(t, url.Values{
		"email":    {"admin@test.com"},
		"password": {"wrong"},
	})
	rec := testutil.NewRecorder()

	testutil.Render(h.HandleLoginPost, rec, req)

	// Bad credentials re-render the form instead of redirecting.
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleLoginPost_MissingFields(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	h := newTestHandler(t, backend)

	req := newLoginPost(t, url.Values{"email": {""}, "password": {""}})
	rec := testutil.NewRecorder()

	testutil.Render(h.HandleLoginPost, rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if len(backend.Calls()) != 0 {
		t.Error("backend should not be called with empty credentials")
	}
}

func TestHandleRegisterPost_Success(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("POST", "/admin/auth/register", platform.Session{
		Admin:       *testutil.TestAdmin(),
		AccessToken: "access-1",
	}, nil)

	h := newTestHandler(t, backend)

	req, err := http.NewRequest("POST", "/login/register", strings.NewReader(url.Values{
		"email":      {"new@test.com"},
		"password":   {"hunter22"},
		"first_name": {"New"},
		"last_name":  {"Admin"},
		"secret_key": {"sekrit"},
	}.Encode()))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := testutil.NewRecorder()

	h.HandleRegisterPost(rec, req)
	rec.AssertRedirect(t, "/dashboard")

	call, ok := backend.LastCall("POST", "/admin/auth/register")
	if !ok {
		t.Fatal("no register call recorded")
	}
	var body platform.RegisterRequest
	call.DecodeBody(t, &body)
	if body.SecretKey != "sekrit" {
		t.Errorf("secretKey: got %q", body.SecretKey)
	}
}

func TestServeRegister_ClosedRedirects(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := login.NewHandler(backend.Client(), sm, uierrors.NewErrorLogger(logger, sm), false, logger)

	req := testutil.NewRequest("GET", "/login/register")
	rec := testutil.NewRecorder()

	h.ServeRegister(rec, req)
	rec.AssertRedirect(t, "/login")
}
