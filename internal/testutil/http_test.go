package testutil_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lovebite/admindash/internal/testutil"
)

func TestWithChiURLParam_ChainedCallsKeepEarlierParams(t *testing.T) {
	req := testutil.NewRequest("GET", "/users/dating/u1/status")
	req = testutil.WithChiURLParam(req, "vertical", "dating")
	req = testutil.WithChiURLParam(req, "id", "u1")

	if got := chi.URLParam(req, "vertical"); got != "dating" {
		t.Errorf("vertical param: got %q, want %q", got, "dating")
	}
	if got := chi.URLParam(req, "id"); got != "u1" {
		t.Errorf("id param: got %q, want %q", got, "u1")
	}
}

func TestRender_PropagatesHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("handler panic must reach the test")
		}
	}()

	req := testutil.NewRequest("GET", "/")
	rec := testutil.NewRecorder()
	testutil.Render(func(http.ResponseWriter, *http.Request) {
		panic("handler bug")
	}, rec, req)
}

func TestRender_KeepsHeadersWrittenBeforeRenderCall(t *testing.T) {
	req := testutil.NewRequest("GET", "/")
	rec := testutil.NewRecorder()

	testutil.Render(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
	}, rec, req)

	rec.AssertStatus(t, http.StatusNoContent)
	if got := rec.Header().Get("HX-Reswap"); got != "none" {
		t.Errorf("HX-Reswap: got %q, want %q", got, "none")
	}
}
