package booking

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// RunConfig holds the per-run settings of the booking engine.
type RunConfig struct {
	// Accounts restricts the run to these broker accounts. Empty means every
	// account seen in the feed.
	Accounts []string `json:"accounts,omitempty"`
	// BankAccounts maps each broker account to its ledger settlement account.
	// A missing entry is a configuration fault, the account is skipped.
	BankAccounts map[string]AccountNo `json:"bankAccounts"`
	// CombineAccounts folds feed accounts into another one before
	// classification, typically after a broker side account migration.
	CombineAccounts map[string]string `json:"combineAccounts,omitempty"`
	// Start and End bound the trade dates taken from the feed, inclusive.
	// A zero date leaves that side open.
	Start Date `json:"start,omitzero"`
	End   Date `json:"end,omitzero"`
}

// AccountReport is the quality check outcome for one account.
type AccountReport struct {
	AccountID string    `json:"accountId"`
	Bank      AccountNo `json:"bankAccount"`

	// BookedSum is the sum over the quality relevant journal line amounts,
	// SourceSum the sum over the absolute processed feed amounts. They must
	// agree to the cent.
	BookedSum  Money `json:"bookedSum"`
	SourceSum  Money `json:"sourceSum"`
	Reconciled bool  `json:"reconciled"`

	// Unprocessed lists feed transactions that produced no booking and no
	// tracking entry, Mismatched the ones whose tracked amount differs from
	// the feed.
	Unprocessed []int64 `json:"unprocessed,omitempty"`
	Mismatched  []int64 `json:"mismatched,omitempty"`

	// ClosingSaldo is the closing balance account's residual after the
	// simulated year end closing, zero for a balanced ledger.
	ClosingSaldo    Money `json:"closingSaldo"`
	ClosingBalanced bool  `json:"closingBalanced"`
}

// RunResult is everything a booking run produces.
type RunResult struct {
	Journal *Journal
	Lots    *LotBook
	Tracker *Tracker
	Faults  []Fault
	Reports []AccountReport
}

// Engine turns a normalized activity feed into a double entry booking
// journal. Runs are independent; an Engine carries only configuration.
type Engine struct {
	cfg RunConfig
}

func NewEngine(cfg RunConfig) *Engine { return &Engine{cfg: cfg} }

// statusRows are broker statement summary lines carried in the activity
// section; they report state, not activity, and are dropped before
// classification.
var statusRows = []string{"Starting Balance", "FX Translations P&L", "Ending Balance"}

// prepare applies the upstream filters: account combination, the cash
// transfer and status row exclusions, and the configured date range. The
// result is sorted by account and transaction id, the processing order every
// downstream step relies on.
func (e *Engine) prepare(records []ActivityRecord) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(records))
	for _, r := range records {
		if to, ok := e.cfg.CombineAccounts[r.AccountID]; ok {
			r.AccountID = to
		}
		if r.ActivityCode == Withdrawal || r.ActivityCode == Deposit {
			continue
		}
		if slices.Contains(statusRows, r.Description) {
			continue
		}
		if !e.cfg.Start.IsZero() && r.Date.Before(e.cfg.Start) {
			continue
		}
		if !e.cfg.End.IsZero() && r.Date.After(e.cfg.End) {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b ActivityRecord) int {
		if c := strings.Compare(a.AccountID, b.AccountID); c != 0 {
			return c
		}
		return int(a.TransactionID - b.TransactionID)
	})
	return out
}

// Run books the feed and returns journal, lot snapshot, processing log,
// collected faults and the per account quality reports. Accounts run
// concurrently; within an account records are booked strictly in transaction
// id order. Seed lots carry open positions over from a previous run.
// Failures never abort the run, they are collected as faults in the result.
func (e *Engine) Run(records []ActivityRecord, seed ...Lot) *RunResult {
	filtered := e.prepare(records)

	byAccount := make(map[string][]ActivityRecord)
	for _, r := range filtered {
		byAccount[r.AccountID] = append(byAccount[r.AccountID], r)
	}

	accounts := e.cfg.Accounts
	if len(accounts) == 0 {
		for id := range byAccount {
			accounts = append(accounts, id)
		}
		slices.Sort(accounts)
	}

	seedByAccount := make(map[string][]Lot)
	for _, l := range seed {
		seedByAccount[l.AccountID] = append(seedByAccount[l.AccountID], l)
	}

	result := &RunResult{
		Journal: NewJournal(),
		Lots:    NewLotBook(),
		Tracker: NewTracker(),
	}

	runs := make([]*accountRun, len(accounts))
	var wg sync.WaitGroup
	for i, id := range accounts {
		bank, ok := e.cfg.BankAccounts[id]
		if !ok {
			result.Faults = append(result.Faults, Fault{
				Kind:      ConfigurationFault,
				AccountID: id,
				Message:   "no bank account mapped",
			})
			continue
		}
		a := &accountRun{
			accountID: id,
			bank:      bank,
			book:      NewLotBook(seedByAccount[id]...),
			journal:   NewJournal(),
			tracker:   NewTracker(),
			records:   byAccount[id],
		}
		runs[i] = a
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.process()
		}()
	}
	wg.Wait()

	// merge in account order so the combined journal stays deterministic
	for _, a := range runs {
		if a == nil {
			continue
		}
		result.Journal.Append(a.journal.Lines()...)
		for _, l := range a.book.Lots() {
			result.Lots.add(l)
		}
		result.Tracker.Merge(a.tracker)
		result.Faults = append(result.Faults, a.faults...)
		result.Reports = append(result.Reports, a.report())
	}
	for i := range result.Reports {
		rep := &result.Reports[i]
		if !rep.Reconciled {
			result.Faults = append(result.Faults, Fault{
				Kind:      ReconciliationMismatch,
				AccountID: rep.AccountID,
				Message: fmt.Sprintf("booked %s vs source %s",
					rep.BookedSum.Round(2), rep.SourceSum.Round(2)),
			})
		}
		if !rep.ClosingBalanced {
			result.Faults = append(result.Faults, Fault{
				Kind:      ReconciliationMismatch,
				AccountID: rep.AccountID,
				Message:   fmt.Sprintf("closing saldo %s", rep.ClosingSaldo),
			})
		}
	}
	return result
}

// accountRun is the single threaded booking state of one account.
type accountRun struct {
	accountID string
	bank      AccountNo
	book      *LotBook
	journal   *Journal
	tracker   *Tracker
	records   []ActivityRecord
	faults    []Fault
	carry     Carry
}

func (a *accountRun) process() {
	for _, r := range a.records {
		a.classify(r)
	}
	a.book.Prune()
}

// track marks the record as processed without booking anything.
func (a *accountRun) track(r ActivityRecord) {
	a.tracker.Record(r.AccountID, r.TransactionID, r.Amount, r.Date)
}

// bookLine books one journal line against the rule and marks the record as
// processed.
func (a *accountRun) bookLine(r ActivityRecord, rule Rule, amount Money, text string) {
	a.journal.Append(line(r, rule, amount, a.bank, text))
	a.track(r)
}

func (a *accountRun) fault(f Fault) { a.faults = append(a.faults, f) }

// report runs the quality checks: the cent exact reconciliation of quality
// relevant journal lines against the processed feed amounts, the search for
// unprocessed or amount shifted transactions, and the simulated closing.
func (a *accountRun) report() AccountReport {
	rep := AccountReport{
		AccountID: a.accountID,
		Bank:      a.bank,
		BookedSum: a.journal.QualityRelevantSum(a.accountID),
	}
	counted := make(map[int64]bool)
	for _, r := range a.records {
		p, ok := a.tracker.Processed(r.AccountID, r.TransactionID)
		if !ok {
			rep.Unprocessed = append(rep.Unprocessed, r.TransactionID)
			continue
		}
		if !p.Amount.Equal(r.Amount) {
			rep.Mismatched = append(rep.Mismatched, r.TransactionID)
		}
		if !counted[r.TransactionID] {
			counted[r.TransactionID] = true
			rep.SourceSum = rep.SourceSum.Add(r.Amount.Abs())
		}
	}
	rep.Reconciled = rep.BookedSum.Sub(rep.SourceSum).Round(2).IsZero() &&
		len(rep.Unprocessed) == 0 && len(rep.Mismatched) == 0
	rep.ClosingSaldo = SimulateClosing(a.journal.ForAccount(a.accountID)).Saldo
	rep.ClosingBalanced = rep.ClosingSaldo.IsZero()
	return rep
}
