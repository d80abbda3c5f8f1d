package renderer

import "github.com/mwessel/booking"

// Quality is the renderable view of the per account quality reports.
type Quality struct {
	Rows   []QualityRow
	Faults []FaultRow
}

// QualityRow is one account's reconciliation outcome.
type QualityRow struct {
	AccountID   string
	Bank        int
	BookedSum   string
	SourceSum   string
	Reconciled  string
	Saldo       string
	Unprocessed int
	Mismatched  int
}

// FaultRow is one collected fault.
type FaultRow struct {
	Kind          string
	AccountID     string
	TransactionID int64
	Message       string
}

// NewQuality builds the quality view from a run result.
func NewQuality(result *booking.RunResult) *Quality {
	v := &Quality{}
	for _, rep := range result.Reports {
		outcome := "erfolgreich"
		if !rep.Reconciled || !rep.ClosingBalanced {
			outcome = "nicht erfolgreich"
		}
		v.Rows = append(v.Rows, QualityRow{
			AccountID:   rep.AccountID,
			Bank:        int(rep.Bank),
			BookedSum:   rep.BookedSum.Round(2).String(),
			SourceSum:   rep.SourceSum.Round(2).String(),
			Reconciled:  outcome,
			Saldo:       rep.ClosingSaldo.String(),
			Unprocessed: len(rep.Unprocessed),
			Mismatched:  len(rep.Mismatched),
		})
	}
	for _, f := range result.Faults {
		v.Faults = append(v.Faults, FaultRow{
			Kind:          string(f.Kind),
			AccountID:     f.AccountID,
			TransactionID: f.TransactionID,
			Message:       f.Message,
		})
	}
	return v
}

// RenderQuality renders the quality view to a markdown string.
func RenderQuality(v *Quality) string {
	partials := map[string]string{
		"quality_title":  "quality_title.md",
		"quality_rows":   "quality_rows.md",
		"quality_faults": "quality_faults.md",
	}
	return renderTemplate("quality", "quality.md", partials, v)
}
