// internal/app/features/withdrawals/types.go
package withdrawals

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

type withdrawalRow struct {
	ID        string
	Requester string
	Phone     string
	Amount    string
	Status    string
	Requested string
	Pending   bool
	Expanded  bool
	ToggleURL string

	// detail panel
	TransactionID string
	Notes         string
	ProcessedAt   string
	ProcessedBy   string
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Tabs []tabLink
	Rows []withdrawalRow
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

type processModalData struct {
	ID        string
	Requester string
	Amount    string
	Phone     string
	ActionURL string
	ReturnURL string
	CSRFToken string
	FormToken string
}

func newWithdrawalRow(wd platform.Withdrawal, q listpage.Query, basePath string) withdrawalRow {
	row := withdrawalRow{
		ID:            wd.ID,
		Phone:         wd.Phone,
		Amount:        fmt.Sprintf("KES %.2f", wd.Amount),
		Status:        wd.Status,
		Requested:     wd.CreatedAt.Format("2 Jan 2006 15:04"),
		Pending:       wd.Status == platform.StatusPending,
		Expanded:      q.Expanded == wd.ID,
		ToggleURL:     q.Toggled(wd.ID).URL(basePath),
		TransactionID: wd.MpesaTransactionID,
		Notes:         wd.Notes,
		ProcessedBy:   wd.ProcessedBy,
	}
	if wd.User != nil {
		row.Requester = wd.User.Name()
	} else {
		row.Requester = wd.Phone
	}
	if wd.ProcessedAt != nil {
		row.ProcessedAt = wd.ProcessedAt.Format("2 Jan 2006 15:04")
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
		mk("Completed", tabCompleted),
		mk("Rejected", tabRejected),
	}
}
