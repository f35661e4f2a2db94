package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/platform"
)

// BackendCall records one request a handler made against the fake backend.
type BackendCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Token  string
}

// DecodeBody unmarshals the recorded request body into out.
func (c BackendCall) DecodeBody(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(c.Body, out); err != nil {
		t.Fatalf("decode recorded body: %v", err)
	}
}

type stubResponse struct {
	status     int
	message    string
	errors     map[string][]string
	data       any
	pagination *platform.Pagination
}

// FakeBackend is an httptest server that speaks the backend's envelope
// format. Feature tests stub routes, run a handler, then inspect the
// calls the handler made.
type FakeBackend struct {
	t      *testing.T
	Server *httptest.Server

	mu     sync.Mutex
	calls  []BackendCall
	routes map[string]stubResponse
}

// NewFakeBackend starts a fake backend. It is shut down via t.Cleanup.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{t: t, routes: make(map[string]stubResponse)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

// Client returns a platform client pointed at the fake backend.
func (b *FakeBackend) Client() *platform.Client {
	b.t.Helper()
	c, err := platform.New(b.Server.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		b.t.Fatalf("platform.New: %v", err)
	}
	return c
}

// Handle stubs a successful envelope response for method+path.
func (b *FakeBackend) Handle(method, path string, data any, p *platform.Pagination) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = stubResponse{status: http.StatusOK, data: data, pagination: p}
}

// HandleError stubs an error envelope response for method+path.
func (b *FakeBackend) HandleError(method, path string, status int, message string, fieldErrors map[string][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = stubResponse{status: status, message: message, errors: fieldErrors}
}

// Calls returns a copy of every request recorded so far.
func (b *FakeBackend) Calls() []BackendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BackendCall, len(b.calls))
	copy(out, b.calls)
	return out
}

// LastCall returns the most recent request matching method+path.
func (b *FakeBackend) LastCall(method, path string) (BackendCall, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].Method == method && b.calls[i].Path == path {
			return b.calls[i], true
		}
	}
	return BackendCall{}, false
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}

	b.mu.Lock()
	b.calls = append(b.calls, BackendCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
		Token:  token,
	})
	stub, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "no stub for " + r.Method + " " + r.URL.Path,
		})
		return
	}

	if stub.status >= 400 {
		w.WriteHeader(stub.status)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": stub.message,
			"errors":  stub.errors,
		})
		return
	}

	resp := map[string]any{"status": "success", "data": stub.data}
	if stub.pagination != nil {
		resp["pagination"] = stub.pagination
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
