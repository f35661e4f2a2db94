// internal/app/features/escorts/types.go
package escorts

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/lovebite/admindash/internal/app/system/htmlsanitize"
	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

// tab names as they appear in the URL.
const (
	tabAll      = ""
	tabVerified = "verified"
	tabPending  = "pending"
	tabVIP      = "vip"
)

type escortRow struct {
	ID               string
	Name             string
	Age              int
	City             string
	Verified         bool
	VIP              bool
	VIPExpires       string
	ModerationStatus string
	Rating           string
	Views            int
	UnlockPrice      string
	Listed           string
	Expanded         bool
	ToggleURL        string

	// detail panel
	About        template.HTML
	ContactPhone string
	OwnerName    string
	Photos       []string
	Services     []platform.EscortService
	HourlyRate   string
	Priced       []pricedService
	Days         string
	Hours        string
	Languages    string
	Tags         string
	Experience   int
}

type pricedService struct {
	Name  string
	Price string
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Tabs []tabLink
	Rows []escortRow
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

type verifyModalData struct {
	ID        string
	Name      string
	Verified  bool
	ActionURL string
	ReturnURL string
	CSRFToken string
	FormToken string
}

func newEscortRow(e platform.Escort, q listpage.Query, basePath string) escortRow {
	row := escortRow{
		ID:               e.ID,
		Name:             e.Name,
		Age:              e.Age,
		Verified:         e.Verified,
		VIP:              e.VIPStatus,
		ModerationStatus: e.ModerationStatus,
		Rating:           fmt.Sprintf("%.1f (%d)", e.AverageRating, e.ReviewCount),
		Views:            e.TotalViews,
		UnlockPrice:      fmt.Sprintf("KES %.0f", e.UnlockPrice),
		Listed:           e.CreatedAt.Format("2 Jan 2006"),
		Expanded:         q.Expanded == e.ID,
		ToggleURL:        q.Toggled(e.ID).URL(basePath),
		About:            htmlsanitize.PrepareForDisplay(e.About),
		ContactPhone:     e.ContactPhone,
		Photos:           e.Photos,
		Services:         e.Services,
		Languages:        strings.Join(e.Languages, ", "),
		Tags:             strings.Join(e.Tags, ", "),
		Experience:       e.ExperienceYears,
	}
	if e.Locations != nil {
		row.City = e.Locations.City
	}
	if e.VIPExpiresAt != nil {
		row.VIPExpires = e.VIPExpiresAt.Format("2 Jan 2006")
	}
	if e.User != nil {
		row.OwnerName = strings.TrimSpace(e.User.FirstName + " " + e.User.LastName)
		if e.User.DisplayName != "" {
			row.OwnerName = e.User.DisplayName
		}
	}
	if e.Pricing != nil {
		row.HourlyRate = fmt.Sprintf("KES %.0f/hr", e.Pricing.HourlyRate)
		for _, s := range e.Pricing.Services {
			row.Priced = append(row.Priced, pricedService{
				Name:  s.Name,
				Price: fmt.Sprintf("KES %.0f", s.Price),
			})
		}
	}
	if e.Availability != nil {
		row.Days = strings.Join(e.Availability.Days, ", ")
		row.Hours = e.Availability.Hours
	}
	return row
}

// tabLinks builds the tab bar, preserving search while switching tabs.
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
		mk("Verified", tabVerified),
		mk("Pending", tabPending),
		mk("VIP", tabVIP),
	}
}
