// internal/app/features/payments/types.go
package payments

import (
	"fmt"

	"github.com/lovebite/admindash/internal/app/system/listpage"
	"github.com/lovebite/admindash/internal/app/system/viewdata"
	"github.com/lovebite/admindash/internal/platform"
)

// status tabs as they appear in the URL.
const (
	tabAll       = ""
	tabPending   = "pending"
	tabCompleted = "completed"
	tabFailed    = "failed"
	tabRefunded  = "refunded"
)

// statusForTab maps the URL tab to the backend status value.
var statusForTab = map[string]string{
	tabAll:       "",
	tabPending:   platform.PaymentPending,
	tabCompleted: platform.PaymentCompleted,
	tabFailed:    platform.PaymentFailed,
	tabRefunded:  platform.PaymentRefunded,
}

// typeLabel maps backend payment types to display text.
var typeLabel = map[string]string{
	platform.PaymentDatingSubscription: "Dating subscription",
	platform.PaymentVIPSubscription:    "VIP subscription",
	platform.PaymentUnlockEscort:       "Escort unlock",
}

type paymentRow struct {
	ID         string
	Payer      string
	Phone      string
	Amount     string
	Type       string
	Status     string
	Receipt    string
	Created    string
	Refundable bool
	Expanded   bool
	ToggleURL  string

	// detail panel
	TransactionID string
	PayerEmail    string
}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type listData struct {
	viewdata.BaseVM
	listpage.ListVM
	Tabs  []tabLink
	Types []typeOption
	Rows  []paymentRow
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

type refundModalData struct {
	ID        string
	Payer     string
	Amount    string
	ActionURL string
	ReturnURL string
	CSRFToken string
	FormToken string
}

func newPaymentRow(p platform.Payment, q listpage.Query, basePath string) paymentRow {
	row := paymentRow{
		ID:         p.ID,
		Phone:      p.Phone,
		Amount:     fmt.Sprintf("KES %.2f", p.Amount),
		Type:       typeLabel[p.Type],
		Status:     p.Status,
		Receipt:    p.MpesaReceiptNumber,
		Created:    p.CreatedAt.Format("2 Jan 2006 15:04"),
		Refundable: p.Status == platform.PaymentCompleted,
		Expanded:   q.Expanded == p.ID,
		ToggleURL:  q.Toggled(p.ID).URL(basePath),

		TransactionID: p.MpesaTransactionID,
	}
	if row.Type == "" {
		row.Type = p.Type
	}
	if p.User != nil {
		row.Payer = p.User.Name()
		row.PayerEmail = p.User.Email
	} else {
		row.Payer = p.Phone
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
		mk("Failed", tabFailed),
		mk("Refunded", tabRefunded),
	}
}

func typeOptions(selected string) []typeOption {
	opts := []typeOption{{Value: "", Label: "All types", Selected: selected == ""}}
	for _, v := range []string{
		platform.PaymentDatingSubscription,
		platform.PaymentVIPSubscription,
		platform.PaymentUnlockEscort,
	} {
		opts = append(opts, typeOption{Value: v, Label: typeLabel[v], Selected: selected == v})
	}
	return opts
}
