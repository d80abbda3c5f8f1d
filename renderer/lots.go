package renderer

import "github.com/mwessel/booking"

// Lots is the renderable view of the open position snapshot.
type Lots struct {
	Rows []LotRow
}

// LotRow is one open lot, formatted for display.
type LotRow struct {
	AccountID     string
	TransactionID int64
	Symbol        string
	Category      string
	Date          string
	Quantity      string
	Cost          string
}

// NewLots builds the open position view from a lot book.
func NewLots(book *booking.LotBook) *Lots {
	v := &Lots{}
	for _, l := range book.Lots() {
		v.Rows = append(v.Rows, LotRow{
			AccountID:     l.AccountID,
			TransactionID: l.TransactionID,
			Symbol:        l.Key,
			Category:      string(l.AssetCategory),
			Date:          l.Date.String(),
			Quantity:      l.Quantity.String(),
			Cost:          l.Cost.String(),
		})
	}
	return v
}

// RenderLots renders the open position view to a markdown string.
func RenderLots(v *Lots) string {
	partials := map[string]string{
		"lots_title": "lots_title.md",
		"lots_rows":  "lots_rows.md",
	}
	return renderTemplate("lots", "lots.md", partials, v)
}
