// internal/app/features/referrals/types.go
package referrals

import (
	"fmt"

	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

const (
	tabAll       = ""
	tabPending   = "pending"
	tabCompleted = "completed"
	tabRejected  = "rejected"
)

var statusForTab = map[string]string{
	tabAll:       "",
	tabPending:   platform.StatusPending,
	tabCompleted: platform.StatusCompleted,
	tabRejected:  platform.StatusRejected,
}

type referralRow struct {
	ID       string
	Referrer string
	Referred string
	Code     string
	Reward   string
	Level    int
	Status   string
	Created  string
	Pending  bool
	Expanded bool
	ToggleURL string

	// detail panel
	PaymentAmount string
	PaymentStatus string
	ApprovedAt    string
	ApprovedBy    string
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Tabs []tabLink
	Rows []referralRow
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

type approveModalData struct {
	ID        string
	Referrer  string
	Reward    string
	ActionURL string
	ReturnURL string
	CSRFToken string
	FormToken string
}

func newReferralRow(ref platform.Referral, q listpage.Query, basePath string) referralRow {
	row := referralRow{
		ID:        ref.ID,
		Code:      ref.CodeUsed,
		Reward:    fmt.Sprintf("KES %.2f", ref.RewardAmount),
		Level:     ref.Level,
		Status:    ref.Status,
		Created:   ref.CreatedAt.Format("2 Jan 2006"),
		Pending:   ref.Status == platform.StatusPending,
		Expanded:  q.Expanded == ref.ID,
		ToggleURL: q.Toggled(ref.ID).URL(basePath),
		ApprovedBy: ref.ApprovedBy,
	}
	if ref.Referrer != nil {
		row.Referrer = ref.Referrer.Name()
	} else {
		row.Referrer = ref.ReferrerUserID
	}
	if ref.Referred != nil {
		row.Referred = ref.Referred.Name()
	} else {
		row.Referred = ref.ReferredUserID
	}
	if ref.Payment != nil {
		row.PaymentAmount = fmt.Sprintf("KES %.2f", ref.Payment.Amount)
		row.PaymentStatus = ref.Payment.Status
	}
	if ref.ApprovedAt != nil {
		row.ApprovedAt = ref.ApprovedAt.Format("2 Jan 2006 15:04")
	}
	return row
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
		mk("Pending", tabPending),
		mk("Approved", tabCompleted),
		mk("Rejected", tabRejected),
	}
}
