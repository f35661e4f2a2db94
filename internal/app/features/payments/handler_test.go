package payments_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/lovebite/admindash/internal/app/features/errors"
	"github.com/lovebite/admindash/internal/app/features/payments"
	"github.com/lovebite/admindash/internal/app/system/auth"
	"github.com/lovebite/admindash/internal/app/system/formtoken"
	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/platform"
	"github.com/lovebite/admindash/internal/testutil"
)

func newTestHandler(t *testing.T, backend *testutil.FakeBackend) *payments.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	errLog := uierrors.NewErrorLogger(logger, sm)
	return payments.NewHandler(backend.Client(), errLog, listpage.NewSequencer(), 20, logger)
}

func samplePayments() []platform.Payment {
	now := time.Now().UTC()
	return []platform.Payment{
		{ID: "p1", Amount: 500, Type: platform.PaymentVIPSubscription, Status: platform.PaymentCompleted, Phone: "254700000001", CreatedAt: now},
		{ID: "p2", Amount: 200, Type: platform.PaymentUnlockEscort, Status: platform.PaymentPending, Phone: "254700000002", CreatedAt: now},
	}
}

func TestServeList_StatusTabForwarded(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("GET", "/admin/payments", samplePayments(), &platform.Pagination{Page: 1, Limit: 20, Total: 2, TotalPages: 1})

	h := newTestHandler(t, backend)

	req := testutil.NewAuthenticatedRequest("GET", "/payments?tab=completed")
	rec := testutil.NewRecorder()
	testutil.Render(h.ServeList, rec, req)

	call, ok := backend.LastCall("GET", "/admin/payments")
	if !ok {
		t.Fatal("no list call recorded")
	}
	if got := call.Query.Get("status"); got != platform.PaymentCompleted {
		t.Errorf("status param: got %q, want %q", got, platform.PaymentCompleted)
	}
}

func TestServeList_TypeFilterForwarded(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("GET", "/admin/payments", samplePayments(), nil)

	h := newTestHandler(t, backend)

	req := testutil.NewAuthenticatedRequest("GET", "/payments?filter=VIP_SUBSCRIPTION&search=2547")
	rec := testutil.NewRecorder()
	testutil.Render(h.ServeList, rec, req)

	call, ok := backend.LastCall("GET", "/admin/payments")
	if !ok {
		t.Fatal("no list call recorded")
	}
	if got := call.Query.Get("type"); got != platform.PaymentVIPSubscription {
		t.Errorf("type param: got %q", got)
	}
	if got := call.Query.Get("search"); got != "2547" {
		t.Errorf("search param: got %q", got)
	}
}

func TestServeList_AllTabSendsNoStatus(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("GET", "/admin/payments", samplePayments(), nil)

	h := newTestHandler(t, backend)

	req := testutil.NewAuthenticatedRequest("GET", "/payments")
	rec := testutil.NewRecorder()
	testutil.Render(h.ServeList, rec, req)

	call, ok := backend.LastCall("GET", "/admin/payments")
	if !ok {
		t.Fatal("no list call recorded")
	}
	if call.Query.Has("status") || call.Query.Has("type") {
		t.Errorf("all tab must send no status/type, got %v", call.Query)
	}
}

func TestHandleRefundPost_SendsNotes(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle("POST", "/admin/payments/p1/refund", platform.Payment{ID: "p1", Status: platform.PaymentRefunded}, nil)

	h := newTestHandler(t, backend)

	form := "notes=duplicate+charge&return=%2Fpayments%3Ftab%3Dcompleted&form_token=" + formtoken.Issue()
	req, err := http.NewRequest("POST", "/payments/p1/refund", strings.NewReader(form))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithAdmin(req, testutil.TestAdmin())
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()

	h.HandleRefundPost(rec, req)
	rec.AssertRedirect(t, "/payments?tab=completed")

	call, ok := backend.LastCall("POST", "/admin/payments/p1/refund")
	if !ok {
		t.Fatal("no refund call recorded")
	}
	var body platform.RefundPaymentRequest
	call.DecodeBody(t, &body)
	if body.Notes != "duplicate charge" {
		t.Errorf("notes: got %q", body.Notes)
	}
}

func TestHandleRefundPost_BackendRejects(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.HandleError("POST", "/admin/payments/p2/refund", 409, "Payment is not refundable", nil)

	h := newTestHandler(t, backend)

	req, err := http.NewRequest("POST", "/payments/p2/refund", strings.NewReader("notes=&form_token="+formtoken.Issue()))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req = testutil.WithAdmin(req, testutil.TestAdmin())
	req = testutil.WithChiURLParam(req, "id", "p2")
	rec := testutil.NewRecorder()

	testutil.Render(h.HandleRefundPost, rec, req)

	// The failure surfaces inline; no redirect happens.
	rec.AssertStatus(t, http.StatusInternalServerError)
	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("failed refund must not redirect")
	}
}
