package renderer

import (
	"slices"

	"github.com/mwessel/booking"
)

// Closing is the renderable view of a simulated year end closing.
type Closing struct {
	AccountID  string
	Rows       []ClosingRow
	ProfitLoss string
	Saldo      string
	Balanced   bool
}

// ClosingRow is one ledger account's columns after the closing transfers.
type ClosingRow struct {
	Account int
	Debit   string
	Credit  string
}

// NewClosing builds the closing view for one broker account's journal.
func NewClosing(j *booking.Journal, accountID string) *Closing {
	res := booking.SimulateClosing(j.ForAccount(accountID))
	v := &Closing{
		AccountID:  accountID,
		ProfitLoss: res.ProfitLoss.String(),
		Saldo:      res.Saldo.String(),
		Balanced:   res.Saldo.IsZero(),
	}
	accounts := make([]booking.AccountNo, 0, len(res.Balances))
	for acc := range res.Balances {
		accounts = append(accounts, acc)
	}
	slices.Sort(accounts)
	for _, acc := range accounts {
		b := res.Balances[acc]
		v.Rows = append(v.Rows, ClosingRow{
			Account: int(acc),
			Debit:   b.Debit.String(),
			Credit:  b.Credit.String(),
		})
	}
	return v
}

// RenderClosing renders the closing view to a markdown string.
func RenderClosing(v *Closing) string {
	partials := map[string]string{
		"closing_title":   "closing_title.md",
		"closing_rows":    "closing_rows.md",
		"closing_summary": "closing_summary.md",
	}
	return renderTemplate("closing", "closing.md", partials, v)
}
