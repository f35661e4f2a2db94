// internal/app/system/listpage/listpage.go

// Package listpage is the shared engine behind every paginated admin list:
// query/filter parsing, pagination math from the backend's pagination block,
// page-local derived stats, exclusive row expansion, and last-write-wins
// sequencing for partial table refreshes. Each feature package instantiates
// it instead of re-implementing the same state handling per screen.
package listpage

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lovebite/admindash/internal/platform"
)

// DefaultPageSize matches the backend's default list limit.
const DefaultPageSize = 20

// Query is the view state of one list page as carried in the URL: current
// page, active tab, search text, and which row's detail panel is open. It is
// the only list state there is; nothing is persisted server-side.
type Query struct {
	Page     int
	Tab      string
	Filter   string // secondary filter dimension, feature-defined
	Search   string
	Expanded string // id of the single expanded row, "" for none
}

// ParseQuery extracts list state from the request. Page defaults to 1,
// search text is trimmed, and everything else passes through as-is.
func ParseQuery(r *http.Request) Query {
	q := Query{
		Page:     1,
		Tab:      strings.TrimSpace(r.URL.Query().Get("tab")),
		Filter:   strings.TrimSpace(r.URL.Query().Get("filter")),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Expanded: r.URL.Query().Get("expanded"),
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	return q
}

// Values encodes the query back into URL parameters, dropping defaults and
// empties so links stay clean and a cleared search box sends no search
// parameter at all.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Tab != "" {
		v.Set("tab", q.Tab)
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Expanded != "" {
		v.Set("expanded", q.Expanded)
	}
	return v
}

// URL renders the query as path?params.
func (q Query) URL(path string) string {
	if enc := q.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// WithPage returns a copy pointing at another page. Changing pages keeps the
// tab and search but closes any expanded row.
func (q Query) WithPage(page int) Query {
	q.Page = page
	q.Expanded = ""
	return q
}

// WithTab returns a copy switched to another tab, reset to page 1 with no
// expanded row. The secondary filter and search carry over.
func (q Query) WithTab(tab string) Query {
	q.Tab = tab
	q.Page = 1
	q.Expanded = ""
	return q
}

// WithFilter returns a copy with another secondary filter, reset to page 1
// with no expanded row.
func (q Query) WithFilter(filter string) Query {
	q.Filter = filter
	q.Page = 1
	q.Expanded = ""
	return q
}

// Toggled returns a copy with the given row expanded, or collapsed if it was
// already the expanded one. Expansion is exclusive: setting row B implicitly
// collapses row A.
func (q Query) Toggled(id string) Query {
	if q.Expanded == id {
		q.Expanded = ""
	} else {
		q.Expanded = id
	}
	return q
}

/*─────────────────────────────────────────────────────────────────────────────*
| Pagination                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Nav is the render-ready pagination state derived from the backend's
// pagination block plus the number of rows actually shown.
type Nav struct {
	Page       int
	TotalPages int
	Total      int
	Limit      int
	Shown      int
	RangeStart int // 1-based index of the first shown row, 0 when empty
	RangeEnd   int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// BuildNav computes the navigation state. A nil pagination block (some
// endpoints omit it) yields a single page holding whatever was shown.
// On the last page HasNext is false, which is what disables the Next control.
func BuildNav(pg *platform.Pagination, shown int) Nav {
	n := Nav{Page: 1, TotalPages: 1, Total: shown, Limit: DefaultPageSize, Shown: shown}
	if pg != nil {
		n.Page = pg.Page
		n.TotalPages = pg.TotalPages
		n.Total = pg.Total
		n.Limit = pg.Limit
	}
	if n.Page < 1 {
		n.Page = 1
	}
	if n.TotalPages < 1 {
		n.TotalPages = 1
	}
	if n.Limit < 1 {
		n.Limit = DefaultPageSize
	}

	if shown > 0 {
		n.RangeStart = (n.Page-1)*n.Limit + 1
		n.RangeEnd = n.RangeStart + shown - 1
	}

	n.HasPrev = n.Page > 1
	n.HasNext = n.Page < n.TotalPages
	n.PrevPage = n.Page - 1
	if n.PrevPage < 1 {
		n.PrevPage = 1
	}
	n.NextPage = n.Page + 1
	if n.NextPage > n.TotalPages {
		n.NextPage = n.TotalPages
	}
	return n
}

// ListVM is the view-model slice shared by every list page. Features embed
// it next to their row data so the shared templates (stats bar, search box,
// pagination controls) can render off one shape.
type ListVM struct {
	Query       Query
	Nav         Nav
	Stats       []Stat
	BasePath    string // list page path, e.g. "/payments"
	TableTarget string // id of the table wrapper div HTMX swaps
	FetchError  string // non-empty when the backend list call failed
}

/*─────────────────────────────────────────────────────────────────────────────*
| Derived stats                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// Stat is one summary figure shown above a list. Stats are computed over the
// current page only and must be labeled as page subtotals; platform-wide
// numbers come from the dashboard endpoint.
type Stat struct {
	Label string
	Value string
	Hint  string
}

// CountWhere counts page rows matching pred.
func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// SumWhere totals val over page rows matching pred. A nil pred sums all rows.
func SumWhere[T any](items []T, val func(T) float64, pred func(T) bool) float64 {
	var sum float64
	for _, it := range items {
		if pred == nil || pred(it) {
			sum += val(it)
		}
	}
	return sum
}
