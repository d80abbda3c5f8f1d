package booking

import (
	"testing"
	"time"
)

func TestDividendBooksAgainstBank(t *testing.T) {
	a := newTestRun()
	a.classify(cash(1, Dividend, "ACME CASH DIVIDEND", 12.5))

	lines := a.journal.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d journal lines, want 1", len(lines))
	}
	l := lines[0]
	if l.Debit != 1200 || l.Credit != acctDividends {
		t.Errorf("accounts = %d/%d, want 1200/%d", l.Debit, l.Credit, acctDividends)
	}
	if !l.Amount.Equal(EUR(12.5)) || !l.QualityRelevant {
		t.Errorf("amount = %s quality = %v, want 12.5 true", l.Amount, l.QualityRelevant)
	}
	if l.DocumentNo != 1 {
		t.Errorf("document no = %d, want 1", l.DocumentNo)
	}
}

func TestReprocessingIsIdempotent(t *testing.T) {
	a := newTestRun()
	r := cash(1, Dividend, "ACME CASH DIVIDEND", 12.5)
	a.classify(r)
	a.classify(r)

	if a.journal.Len() != 1 {
		t.Errorf("got %d journal lines, want 1", a.journal.Len())
	}
}

func TestBuyOpensLot(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Buy, Stock, "ACME", 100, -1000))

	lots := a.book.Lots()
	if len(lots) != 1 {
		t.Fatalf("got %d lots, want 1", len(lots))
	}
	if !lots[0].Quantity.Equal(Q(100)) || !lots[0].Cost.Equal(EUR(1000)) {
		t.Errorf("lot = %s @ %s, want 100 @ 1000", lots[0].Quantity, lots[0].Cost)
	}
	lines := a.journal.Lines()
	if len(lines) != 1 || lines[0].RuleID != ruleStockBuyOpen.ID {
		t.Fatalf("journal = %v, want one stock buy line", lines)
	}
}

func TestSellClosesViaFIFO(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Buy, Stock, "ACME", 100, -1000))
	a.classify(trade(2, Sell, Stock, "ACME", -100, 1500))

	if len(a.book.Lots()) != 0 {
		t.Errorf("position should be closed: %v", a.book.Lots())
	}
	lines := a.journal.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d journal lines, want 3", len(lines))
	}
	if lines[1].RuleID != ruleStockSellProfit.ID || !lines[1].Amount.Equal(EUR(1500)) {
		t.Errorf("proceeds leg = %s %s", lines[1].RuleID, lines[1].Amount)
	}
	if lines[2].RuleID != ruleStockSellProfitDisposal.ID || !lines[2].Amount.Equal(EUR(1000)) {
		t.Errorf("disposal leg = %s %s", lines[2].RuleID, lines[2].Amount)
	}
}

func TestSellWithoutPositionOpensShort(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Sell, Stock, "ACME", -50, 500))

	lines := a.journal.Lines()
	if len(lines) != 1 || lines[0].RuleID != ruleStockSellShort.ID {
		t.Fatalf("journal = %v, want one short opening line", lines)
	}
	lots := a.book.Lots()
	if len(lots) != 1 || !lots[0].Quantity.Equal(Q(-50)) {
		t.Fatalf("lots = %v, want one short lot of -50", lots)
	}
}

func TestOptionAssignmentRealizesPremium(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Sell, Option, "ACME P90", -1, 80))

	assign := trade(2, Assignment, Option, "ACME P90", 1, 0)
	assign.PutCall = "P"
	a.classify(assign)

	if len(a.book.Lots()) != 0 {
		t.Errorf("assigned option should be closed: %v", a.book.Lots())
	}
	lines := a.journal.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d journal lines, want 2", len(lines))
	}
	l := lines[1]
	if l.RuleID != ruleAssignPutPremium.ID || !l.Amount.Equal(EUR(80)) {
		t.Errorf("premium leg = %s %s, want %s 80", l.RuleID, l.Amount, ruleAssignPutPremium.ID)
	}
	if l.QualityRelevant {
		t.Error("premium realization must not be quality relevant, it has no cash effect")
	}
}

func TestOptionAssignmentUnknownPutCallFaults(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Sell, Option, "ACME P90", -1, 80))

	assign := trade(2, Assignment, Option, "ACME P90", 1, 0)
	assign.PutCall = "X"
	a.classify(assign)

	if len(a.book.Lots()) != 1 {
		t.Errorf("lot must stay open on an unrecognized putCall: %v", a.book.Lots())
	}
	if a.journal.Len() != 1 {
		t.Errorf("got %d journal lines, want only the opening premium", a.journal.Len())
	}
	if len(a.faults) != 1 || a.faults[0].Kind != ClassificationFault {
		t.Fatalf("faults = %v, want one classification fault", a.faults)
	}
}

func TestExpirationRealizesPremium(t *testing.T) {
	a := newTestRun()
	a.classify(trade(1, Sell, Option, "ACME C120", -2, 60))

	exp := trade(2, Expiration, Option, "ACME C120", 2, 0)
	a.classify(exp)

	if len(a.book.Lots()) != 0 {
		t.Errorf("expired option should be closed: %v", a.book.Lots())
	}
	lines := a.journal.Lines()
	if len(lines) != 2 || lines[1].RuleID != ruleExpiration.ID || !lines[1].Amount.Equal(EUR(60)) {
		t.Fatalf("journal = %v, want expiration of 60", lines)
	}
}

func TestExpirationResolvesRenamedUnderlying(t *testing.T) {
	a := newTestRun()
	// position opened under the renamed symbol with the padded underlying
	a.classify(trade(1, Sell, Option, "ACME  250117C00005000", -1, 40))

	exp := trade(2, Expiration, Option, "ACME1 250117C00005000", 1, 0)
	exp.Underlying = "ACME1"
	a.classify(exp)

	if len(a.book.Lots()) != 0 {
		t.Errorf("renamed option should still close: %v", a.book.Lots())
	}
	if a.journal.Len() != 2 {
		t.Errorf("got %d journal lines, want 2", a.journal.Len())
	}
	if len(a.faults) != 0 {
		t.Errorf("unexpected faults: %v", a.faults)
	}
}

func TestCFDInterestBooksAndClears(t *testing.T) {
	a := newTestRun()
	a.classify(cash(1, CFDCharge, "CFD INTEREST for position", -5))

	lines := a.journal.Lines()
	if len(lines) != 1 || lines[0].RuleID != ruleCFDIntPaid.ID {
		t.Fatalf("journal = %v, want one CFD interest line", lines)
	}
	if len(a.book.Lots()) != 0 {
		t.Errorf("interest line must not linger as open position: %v", a.book.Lots())
	}
}

func TestForexZeroIsTrackedOnly(t *testing.T) {
	a := newTestRun()
	r := cash(1, Forex, "USD.EUR", 0)
	a.classify(r)

	if a.journal.Len() != 0 {
		t.Errorf("zero forex must not book: %v", a.journal.Lines())
	}
	if _, ok := a.tracker.Processed("U100", 1); !ok {
		t.Error("zero forex must still be marked processed")
	}
}

func TestUnknownActivityFaults(t *testing.T) {
	a := newTestRun()
	r := ActivityRecord{
		AccountID:     "U100",
		TransactionID: 1,
		Date:          day(time.March, 3),
		ActivityCode:  "BONUS",
		AssetCategory: Cash,
		Amount:        EUR(10),
	}
	a.classify(r)

	if a.journal.Len() != 0 {
		t.Errorf("unknown code must not book: %v", a.journal.Lines())
	}
	if len(a.faults) != 1 || a.faults[0].Kind != ClassificationFault {
		t.Fatalf("faults = %v, want one classification fault", a.faults)
	}
	if _, ok := a.tracker.Processed("U100", 1); ok {
		t.Error("faulted record must stay unprocessed so reconciliation reports it")
	}
}
