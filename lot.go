package booking

import (
	"slices"
	"strings"
)

// Lot is an open position entry: a quantity of a security plus its remaining
// cost basis, opened by one activity and consumed oldest-first by later
// closing activities.
//
// Enough of the opening record is retained for the snapshot to round-trip and
// for later pruning of non-position entries.
type Lot struct {
	TransactionID int64         `json:"transactionID"`
	AccountID     string        `json:"accountId"`
	Key           string        `json:"symbol"` // symbol, or activity description for symbol-less lines
	ActivityCode  ActivityCode  `json:"activityCode"`
	AssetCategory AssetCategory `json:"assetCategory"`
	Date          Date          `json:"date"`
	Quantity      Quantity      `json:"tradeQuantity"` // signed: positive long, negative short
	Cost          Money         `json:"amount"`        // remaining cost basis magnitude, never negative
}

// LotBook is the collection of open lots across all accounts. Lots are never
// merged: each opening activity stays its own lot so FIFO order by
// transaction id is preserved. All updates replace entries, the book never
// hands out aliases into its own storage.
type LotBook struct {
	lots []Lot
}

// NewLotBook creates an empty lot book.
func NewLotBook(seed ...Lot) *LotBook {
	b := &LotBook{}
	for _, l := range seed {
		b.add(l)
	}
	return b
}

// Lots returns a copy of all open lots, ordered by account then transaction id.
func (b *LotBook) Lots() []Lot {
	out := slices.Clone(b.lots)
	slices.SortStableFunc(out, func(a, c Lot) int {
		if a.AccountID != c.AccountID {
			return strings.Compare(a.AccountID, c.AccountID)
		}
		return int(a.TransactionID - c.TransactionID)
	})
	return out
}

// add appends a lot unless one with the same origin already exists.
func (b *LotBook) add(l Lot) {
	for _, e := range b.lots {
		if e.AccountID == l.AccountID && e.TransactionID == l.TransactionID {
			return
		}
	}
	b.lots = append(b.lots, l)
}

// OpenOrIncrease opens a fresh lot from an activity record. Increasing a
// position is the same operation: the new activity becomes its own lot.
func (b *LotBook) OpenOrIncrease(r ActivityRecord) {
	b.add(Lot{
		TransactionID: r.TransactionID,
		AccountID:     r.AccountID,
		Key:           r.lotKey(),
		ActivityCode:  r.ActivityCode,
		AssetCategory: r.AssetCategory,
		Date:          r.Date,
		Quantity:      r.Quantity,
		Cost:          r.Amount.Abs(),
	})
}

// FindOpenLots returns the open lots for (accountID, key) ordered by
// transaction id ascending, oldest first.
func (b *LotBook) FindOpenLots(accountID, key string) []Lot {
	var out []Lot
	for _, l := range b.lots {
		if l.AccountID == accountID && l.Key == key {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, c Lot) int { return int(a.TransactionID - c.TransactionID) })
	return out
}

// Resolve finds the open lots a record closes against. When the plain symbol
// lookup fails on an expiration, the broker may have renamed the underlying
// with a trailing disambiguation digit; strip it and retry in both directions
// before concluding that no lot is open. It returns the lots and the key they
// were found under.
func (b *LotBook) Resolve(r ActivityRecord) ([]Lot, string) {
	key := r.lotKey()
	if lots := b.FindOpenLots(r.AccountID, key); len(lots) > 0 {
		return lots, key
	}
	if r.ActivityCode != Expiration || !strings.HasSuffix(r.Underlying, "1") {
		return nil, key
	}
	stripped := strings.TrimSuffix(r.Underlying, "1") + " "
	// the record carries the suffixed name, the lot the renamed one
	if alt := strings.Replace(r.Symbol, r.Underlying, stripped, 1); alt != r.Symbol {
		if lots := b.FindOpenLots(r.AccountID, alt); len(lots) > 0 {
			return lots, alt
		}
	}
	// or the other way around
	if alt := strings.Replace(r.Symbol, stripped, r.Underlying, 1); alt != r.Symbol {
		if lots := b.FindOpenLots(r.AccountID, alt); len(lots) > 0 {
			return lots, alt
		}
	}
	return nil, key
}

// Reduce replaces a lot's remaining quantity and cost basis.
func (b *LotBook) Reduce(accountID string, transactionID int64, quantity Quantity, cost Money) {
	for i, l := range b.lots {
		if l.AccountID == accountID && l.TransactionID == transactionID {
			l.Quantity = quantity
			l.Cost = cost
			b.lots[i] = l
			return
		}
	}
}

// Close removes a lot from the book.
func (b *LotBook) Close(accountID string, transactionID int64) {
	b.lots = slices.DeleteFunc(b.lots, func(l Lot) bool {
		return l.AccountID == accountID && l.TransactionID == transactionID
	})
}

// netQuantity sums the signed quantities of the given lots; its sign tells
// whether the open exposure is net long or net short.
func netQuantity(lots []Lot) Quantity {
	var sum Quantity
	for _, l := range lots {
		sum = sum.Add(l.Quantity)
	}
	return sum
}

// pruneCodes lists activities that land in the book as bookkeeping leftovers,
// not as real open positions; they are dropped from the final snapshot.
var pruneCodes = []ActivityCode{DebitInterest, Dividend, WithholdingTax, OtherFee, SalesTax, CreditInterest, BrokerFee, CFDCharge, "FUT"}

var pruneCategories = []AssetCategory{Future, CFD}

// Prune removes entries that never were real open positions (dividend lines,
// interest lines, daily settled future and CFD legs) before the snapshot is
// handed to the next run.
func (b *LotBook) Prune() {
	b.lots = slices.DeleteFunc(b.lots, func(l Lot) bool {
		return slices.Contains(pruneCodes, l.ActivityCode) || slices.Contains(pruneCategories, l.AssetCategory)
	})
}
