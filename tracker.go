package booking

import "slices"

// ProcessedRecord marks a source transaction as turned into journal lines.
type ProcessedRecord struct {
	AccountID     string `json:"accountId"`
	TransactionID int64  `json:"transactionID"`
	Date          Date   `json:"date"`
	Amount        Money  `json:"processedAmount"`
}

// Tracker records which source transaction ids have been booked. Recording
// the same (account, transaction id) twice is a no-op: that is the engine's
// idempotency guarantee, a reprocessed feed never duplicates journal lines.
type Tracker struct {
	records []ProcessedRecord
	seen    map[string]map[int64]int // account -> transaction id -> index into records
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]map[int64]int)}
}

// Record inserts a processed record unless one already exists for the same
// account and transaction id. It reports whether the record was inserted.
func (t *Tracker) Record(accountID string, transactionID int64, amount Money, on Date) bool {
	if _, ok := t.Processed(accountID, transactionID); ok {
		return false
	}
	byID, ok := t.seen[accountID]
	if !ok {
		byID = make(map[int64]int)
		t.seen[accountID] = byID
	}
	byID[transactionID] = len(t.records)
	t.records = append(t.records, ProcessedRecord{
		AccountID:     accountID,
		TransactionID: transactionID,
		Date:          on,
		Amount:        amount,
	})
	return true
}

// Processed returns the record for (account, transaction id) if one exists.
func (t *Tracker) Processed(accountID string, transactionID int64) (ProcessedRecord, bool) {
	if byID, ok := t.seen[accountID]; ok {
		if i, ok := byID[transactionID]; ok {
			return t.records[i], true
		}
	}
	return ProcessedRecord{}, false
}

// Records returns all processed records in insertion order.
func (t *Tracker) Records() []ProcessedRecord { return slices.Clone(t.records) }

// Merge copies all records of another tracker, keeping first-write-wins
// semantics per (account, transaction id).
func (t *Tracker) Merge(other *Tracker) {
	for _, r := range other.records {
		t.Record(r.AccountID, r.TransactionID, r.Amount, r.Date)
	}
}
