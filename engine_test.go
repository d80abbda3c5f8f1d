package booking

import (
	"testing"
	"time"
)

func TestRunBooksAndReconciles(t *testing.T) {
	feed := []ActivityRecord{
		trade(1, Buy, Stock, "ACME", 100, -1000),
		trade(2, Sell, Stock, "ACME", -100, 1500),
		cash(3, Dividend, "ACME CASH DIVIDEND", 12.5),
	}

	result := NewEngine(testConfig()).Run(feed)
	if len(result.Faults) != 0 {
		t.Fatalf("Run() collected faults: %v", result.Faults)
	}
	if len(result.Reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(result.Reports))
	}
	rep := result.Reports[0]
	if !rep.Reconciled {
		t.Errorf("booked %s vs source %s should reconcile", rep.BookedSum, rep.SourceSum)
	}
	if !rep.ClosingBalanced {
		t.Errorf("closing saldo = %s, want 0", rep.ClosingSaldo)
	}
	if len(result.Lots.Lots()) != 0 {
		t.Errorf("no open positions expected: %v", result.Lots.Lots())
	}
}

func TestRunFiltersUpstream(t *testing.T) {
	deposit := cash(1, Deposit, "CASH RECEIPTS", 5000)
	status := cash(2, Dividend, "Starting Balance", 123)
	early := cash(3, Dividend, "ACME CASH DIVIDEND", 10)
	early.Date = NewDate(2024, time.December, 30)
	kept := cash(4, Dividend, "ACME CASH DIVIDEND", 20)
	// only descriptions equal to a status row are dropped
	lookalike := cash(5, Dividend, "Starting Balance Fund ACME", 30)

	cfg := testConfig()
	cfg.Start = NewDate(2025, time.January, 1)
	cfg.End = NewDate(2025, time.December, 31)

	result := NewEngine(cfg).Run([]ActivityRecord{deposit, status, early, kept, lookalike})
	lines := result.Journal.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d journal lines, want the two in-range dividends", len(lines))
	}
	if lines[0].DocumentNo != 4 || lines[1].DocumentNo != 5 {
		t.Errorf("booked documents %d, %d; want 4 and 5", lines[0].DocumentNo, lines[1].DocumentNo)
	}
}

func TestRunCombinesAccounts(t *testing.T) {
	r := cash(1, Dividend, "ACME CASH DIVIDEND", 10)
	r.AccountID = "U0"

	cfg := testConfig()
	cfg.CombineAccounts = map[string]string{"U0": "U100"}

	result := NewEngine(cfg).Run([]ActivityRecord{r})
	lines := result.Journal.Lines()
	if len(lines) != 1 || lines[0].Account != "U100" {
		t.Fatalf("journal = %v, want one line on U100", lines)
	}
}

func TestRunMissingBankMappingFaults(t *testing.T) {
	r := cash(1, Dividend, "ACME CASH DIVIDEND", 10)
	r.AccountID = "U999"

	result := NewEngine(testConfig()).Run([]ActivityRecord{r})
	if result.Journal.Len() != 0 {
		t.Errorf("unmapped account must not book: %v", result.Journal.Lines())
	}
	if len(result.Faults) != 1 || result.Faults[0].Kind != ConfigurationFault {
		t.Fatalf("faults = %v, want one configuration fault", result.Faults)
	}
}

func TestRunSeedsOpenPositions(t *testing.T) {
	seed := Lot{
		TransactionID: 1,
		AccountID:     "U100",
		Key:           "ACME",
		ActivityCode:  Buy,
		AssetCategory: Stock,
		Date:          NewDate(2024, time.June, 1),
		Quantity:      Q(10),
		Cost:          EUR(100),
	}

	result := NewEngine(testConfig()).Run(
		[]ActivityRecord{trade(2, Sell, Stock, "ACME", -10, 130)}, seed)
	if len(result.Lots.Lots()) != 0 {
		t.Errorf("seeded lot should be closed: %v", result.Lots.Lots())
	}
	lines := result.Journal.Lines()
	if len(lines) != 2 || lines[0].RuleID != ruleStockSellProfit.ID {
		t.Fatalf("journal = %v, want a profitable close of the seeded lot", lines)
	}
}

func TestRunIsDeterministicAcrossAccounts(t *testing.T) {
	r1 := cash(1, Dividend, "ACME CASH DIVIDEND", 10)
	r2 := cash(2, Dividend, "ACME CASH DIVIDEND", 20)
	r2.AccountID = "U200"

	for range 10 {
		result := NewEngine(testConfig()).Run([]ActivityRecord{r2, r1})
		lines := result.Journal.Lines()
		if len(lines) != 2 {
			t.Fatalf("got %d journal lines, want 2", len(lines))
		}
		if lines[0].Account != "U100" || lines[1].Account != "U200" {
			t.Fatalf("merge order = %s, %s; want U100 then U200", lines[0].Account, lines[1].Account)
		}
	}
}

func TestRunReportsUnprocessed(t *testing.T) {
	bad := ActivityRecord{
		AccountID:     "U100",
		TransactionID: 1,
		Date:          day(time.March, 3),
		ActivityCode:  "BONUS",
		AssetCategory: Cash,
		Amount:        EUR(10),
	}

	result := NewEngine(testConfig()).Run([]ActivityRecord{bad})
	rep := result.Reports[0]
	if rep.Reconciled {
		t.Error("run with an unprocessed record must not reconcile")
	}
	if len(rep.Unprocessed) != 1 || rep.Unprocessed[0] != 1 {
		t.Errorf("unprocessed = %v, want [1]", rep.Unprocessed)
	}
}
