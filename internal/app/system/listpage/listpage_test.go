package listpage

import (
	"net/http/httptest"
	"testing"

	"github.com/lovebite/admindash/internal/platform"
)

func TestParseQuery_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/payments", nil)
	q := ParseQuery(r)

	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.Tab != "" || q.Search != "" || q.Expanded != "" {
		t.Errorf("non-zero defaults: %+v", q)
	}
}

func TestParseQuery_TrimsSearch(t *testing.T) {
	r := httptest.NewRequest("GET", "/payments?page=3&tab=PENDING&search=++jessica++&expanded=p1", nil)
	q := ParseQuery(r)

	if q.Page != 3 || q.Tab != "PENDING" || q.Expanded != "p1" {
		t.Errorf("query = %+v", q)
	}
	if q.Search != "jessica" {
		t.Errorf("search = %q, want trimmed", q.Search)
	}
}

func TestParseQuery_BadPage(t *testing.T) {
	for _, raw := range []string{"/x?page=0", "/x?page=-2", "/x?page=abc"} {
		q := ParseQuery(httptest.NewRequest("GET", raw, nil))
		if q.Page != 1 {
			t.Errorf("%s: page = %d, want 1", raw, q.Page)
		}
	}
}

func TestValues_DropsEmptyAndDefaults(t *testing.T) {
	q := Query{Page: 1, Search: ""}
	if enc := q.Values().Encode(); enc != "" {
		t.Errorf("Values() = %q, want empty", enc)
	}

	q = Query{Page: 2, Tab: "verified", Search: "amy"}
	v := q.Values()
	if v.Get("page") != "2" || v.Get("tab") != "verified" || v.Get("search") != "amy" {
		t.Errorf("Values() = %v", v)
	}
	if _, present := v["expanded"]; present {
		t.Error("empty expanded encoded")
	}
}

func TestWithTab_ResetsPageAndExpansion(t *testing.T) {
	q := Query{Page: 4, Tab: "all", Search: "k", Expanded: "row9"}
	got := q.WithTab("pending")

	if got.Tab != "pending" || got.Page != 1 || got.Expanded != "" {
		t.Errorf("WithTab = %+v", got)
	}
	if got.Search != "k" {
		t.Error("tab switch dropped the search text")
	}
}

func TestWithFilter_ResetsPageKeepsTab(t *testing.T) {
	q := Query{Page: 3, Tab: "completed", Filter: "", Search: "07"}
	got := q.WithFilter("VIP_SUBSCRIPTION")

	if got.Filter != "VIP_SUBSCRIPTION" || got.Page != 1 {
		t.Errorf("WithFilter = %+v", got)
	}
	if got.Tab != "completed" || got.Search != "07" {
		t.Error("filter switch dropped tab or search")
	}

	v := got.Values()
	if v.Get("filter") != "VIP_SUBSCRIPTION" {
		t.Errorf("Values() = %v", v)
	}
}

func TestToggled_Exclusive(t *testing.T) {
	q := Query{Expanded: "a"}

	// Opening row B collapses row A.
	got := q.Toggled("b")
	if got.Expanded != "b" {
		t.Errorf("Expanded = %q, want b", got.Expanded)
	}

	// Toggling the open row closes it.
	got = got.Toggled("b")
	if got.Expanded != "" {
		t.Errorf("Expanded = %q, want collapsed", got.Expanded)
	}
}

func TestBuildNav_LastPageDisablesNext(t *testing.T) {
	n := BuildNav(&platform.Pagination{Page: 5, Limit: 20, Total: 95, TotalPages: 5}, 15)

	if n.HasNext {
		t.Error("HasNext true on last page")
	}
	if !n.HasPrev || n.PrevPage != 4 {
		t.Errorf("prev: HasPrev=%v PrevPage=%d", n.HasPrev, n.PrevPage)
	}
	if n.NextPage != 5 {
		t.Errorf("NextPage = %d, want clamped to 5", n.NextPage)
	}
	if n.RangeStart != 81 || n.RangeEnd != 95 {
		t.Errorf("range = %d..%d, want 81..95", n.RangeStart, n.RangeEnd)
	}
}

func TestBuildNav_FirstOfMany(t *testing.T) {
	n := BuildNav(&platform.Pagination{Page: 1, Limit: 20, Total: 61, TotalPages: 4}, 20)

	if n.HasPrev {
		t.Error("HasPrev true on page 1")
	}
	if !n.HasNext || n.NextPage != 2 {
		t.Errorf("next: HasNext=%v NextPage=%d", n.HasNext, n.NextPage)
	}
	if n.RangeStart != 1 || n.RangeEnd != 20 {
		t.Errorf("range = %d..%d", n.RangeStart, n.RangeEnd)
	}
}

func TestBuildNav_NilPagination(t *testing.T) {
	n := BuildNav(nil, 7)

	if n.Page != 1 || n.TotalPages != 1 || n.Total != 7 {
		t.Errorf("nav = %+v", n)
	}
	if n.HasPrev || n.HasNext {
		t.Error("nav claims more pages without pagination data")
	}
}

func TestBuildNav_EmptyPage(t *testing.T) {
	n := BuildNav(&platform.Pagination{Page: 1, Limit: 20, Total: 0, TotalPages: 0}, 0)
	if n.RangeStart != 0 || n.RangeEnd != 0 {
		t.Errorf("range = %d..%d, want 0..0", n.RangeStart, n.RangeEnd)
	}
}

func TestCountAndSum(t *testing.T) {
	type row struct {
		status string
		amount float64
	}
	rows := []row{
		{"PENDING", 100},
		{"COMPLETED", 250},
		{"PENDING", 50},
	}

	if got := CountWhere(rows, func(r row) bool { return r.status == "PENDING" }); got != 2 {
		t.Errorf("CountWhere = %d", got)
	}
	if got := SumWhere(rows, func(r row) float64 { return r.amount }, nil); got != 400 {
		t.Errorf("SumWhere(all) = %v", got)
	}
	pending := SumWhere(rows, func(r row) float64 { return r.amount }, func(r row) bool { return r.status == "PENDING" })
	if pending != 150 {
		t.Errorf("SumWhere(pending) = %v", pending)
	}
}

func TestSequencer_LastWriteWins(t *testing.T) {
	s := NewSequencer()

	// Two rapid tab switches: A arrives, then B, before either finishes.
	genA := s.Begin("payments:a1")
	genB := s.Begin("payments:a1")

	// B's response lands first and is applied; A resolves late and is stale.
	if !s.StillLatest("payments:a1", genB) {
		t.Error("newest request reported stale")
	}
	if s.StillLatest("payments:a1", genA) {
		t.Error("superseded request still reported latest")
	}
}

func TestSequencer_KeysAreIndependent(t *testing.T) {
	s := NewSequencer()

	genPay := s.Begin("payments:a1")
	s.Begin("withdrawals:a1")

	if !s.StillLatest("payments:a1", genPay) {
		t.Error("unrelated key invalidated this list's request")
	}
}

func TestSuppress(t *testing.T) {
	rec := httptest.NewRecorder()
	Suppress(rec)

	if rec.Code != 204 {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Errorf("HX-Reswap = %q", rec.Header().Get("HX-Reswap"))
	}
}
