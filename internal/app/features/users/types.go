// internal/app/features/users/types.go
package users

import (
	"fmt"
	"time"

	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

// userRow is one rendered table row.
type userRow struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	IsActive     bool
	Wallet       string
	ReferralCode string
	Joined       string
	Expanded     bool
	ToggleURL    string

	// detail panel extras
	SubscriptionEnds string
	ReferredBy       string
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Vertical string // "dating" or "hookup"
	Rows     []userRow
}

type statusModalData struct {
	ID        string
	Name      string
	Email     string
	IsActive  bool
	ActionURL string
	ReturnURL string
	CSRFToken string
	FormToken string
}

func newUserRow(u platform.User, q listpage.Query, basePath string) userRow {
	row := userRow{
		ID:           u.ID,
		Name:         u.Name(),
		Email:        u.Email,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		Wallet:       fmt.Sprintf("KES %.2f", u.WalletBalance),
		ReferralCode: u.ReferralCode,
		Joined:       u.CreatedAt.Format("2 Jan 2006"),
		Expanded:     q.Expanded == u.ID,
		ToggleURL:    q.Toggled(u.ID).URL(basePath),
		ReferredBy:   u.ReferredBy,
	}
	if u.DatingSubscriptionExpires != nil {
		row.SubscriptionEnds = u.DatingSubscriptionExpires.Format("2 Jan 2006")
		if u.DatingSubscriptionExpires.Before(time.Now()) {
			row.SubscriptionEnds += " (expired)"
		}
	}
	return row
}
