package renderer

import "github.com/mwessel/booking"

// Journal is the renderable view of one account's booking journal.
type Journal struct {
	AccountID string
	Lines     []JournalRow
	Total     string // sum over the quality relevant lines
}

// JournalRow is one booking, formatted for display.
type JournalRow struct {
	DocumentNo int64
	Date       string
	RuleID     string
	Desc       string
	Subdesc    string
	Reference  string
	Amount     string
	Debit      int
	Credit     int
	Quality    string // "x" for quality relevant lines
}

// NewJournal builds the journal view for one broker account.
func NewJournal(j *booking.Journal, accountID string) *Journal {
	v := &Journal{
		AccountID: accountID,
		Total:     j.QualityRelevantSum(accountID).String(),
	}
	for _, l := range j.ForAccount(accountID) {
		quality := ""
		if l.QualityRelevant {
			quality = "x"
		}
		v.Lines = append(v.Lines, JournalRow{
			DocumentNo: l.DocumentNo,
			Date:       l.Date.String(),
			RuleID:     l.RuleID,
			Desc:       l.Desc,
			Subdesc:    l.Subdesc,
			Reference:  l.Reference,
			Amount:     l.Amount.String(),
			Debit:      int(l.Debit),
			Credit:     int(l.Credit),
			Quality:    quality,
		})
	}
	return v
}

// RenderJournal renders the journal view to a markdown string.
func RenderJournal(v *Journal) string {
	partials := map[string]string{
		"journal_title": "journal_title.md",
		"journal_lines": "journal_lines.md",
	}
	return renderTemplate("journal", "journal.md", partials, v)
}
