// internal/app/features/reviews/types.go
package reviews

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/lovebite/admindash/internal/app/system/htmlsanitize"
	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

const (
	tabAll     = ""
	tabVisible = "visible"
	tabHidden  = "hidden"
)

func visibleForTab(tab string) *bool {
	switch tab {
	case tabVisible:
		v := true
		return &v
	case tabHidden:
		v := false
		return &v
	default:
		return nil
	}
}

type reviewRow struct {
	ID        string
	Escort    string
	Reviewer  string
	Rating    int
	Stars     string
	Comment   template.HTML
	Visible   bool
	Created   string
	Expanded  bool
	ToggleURL string

	// detail panel
	EscortID string
	UserID   string
	Updated  string
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Tabs []tabLink
	Rows []reviewRow
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

func newReviewRow(rv platform.Review, q listpage.Query, basePath string) reviewRow {
	row := reviewRow{
		ID:        rv.ID,
		Rating:    rv.Rating,
		Stars:     stars(rv.Rating),
		Comment:   htmlsanitize.PrepareForDisplay(rv.Comment),
		Visible:   rv.Visible,
		Created:   rv.CreatedAt.Format("2 Jan 2006"),
		Expanded:  q.Expanded == rv.ID,
		ToggleURL: q.Toggled(rv.ID).URL(basePath),
		EscortID:  rv.EscortID,
		UserID:    rv.UserID,
		Updated:   rv.UpdatedAt.Format("2 Jan 2006 15:04"),
	}
	if rv.Escort != nil {
		row.Escort = rv.Escort.Name
	} else {
		row.Escort = rv.EscortID
	}
	if rv.User != nil {
		row.Reviewer = rv.User.Name()
	} else {
		row.Reviewer = rv.UserID
	}
	return row
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func tabLinks(q listpage.Query, basePath string) []tabLink {
	mk := func(label, tab string) tabLink {
		return tabLink{
			Label:  label,
			URL:    q.WithTab(tab).URL(basePath),
			Active: q.Tab == tab,
		}
	}
	return []tabLink{
		mk("All", tabAll),
		mk("Visible", tabVisible),
		mk("Hidden", tabHidden),
	}
}

func averageRating(items []platform.Review) string {
	if len(items) == 0 {
		return "–"
	}
	var sum int
	for _, rv := range items {
		sum += rv.Rating
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(items)))
}
