package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mwessel/booking"
)

func testResult() *booking.RunResult {
	lots := booking.NewLotBook(booking.Lot{
		TransactionID: 1,
		AccountID:     "U100",
		Key:           "ACME",
		ActivityCode:  booking.Buy,
		AssetCategory: booking.Stock,
		Date:          booking.NewDate(2025, time.March, 3),
		Quantity:      booking.Q(100),
		Cost:          booking.M(1000, "EUR"),
	})
	tracker := booking.NewTracker()
	tracker.Record("U100", 1, booking.M(-1000, "EUR"), booking.NewDate(2025, time.March, 3))
	journal := booking.NewJournal()
	journal.Append(booking.JournalLine{
		Account:         "U100",
		DocumentNo:      1,
		RuleID:          "ATG_0000005_0000001",
		Desc:            "Aktienkauf",
		Date:            booking.NewDate(2025, time.March, 3),
		SettleDate:      booking.NewDate(2025, time.March, 5),
		Reference:       "1_BUY_STK_100_ACME",
		Amount:          booking.M(1000, "EUR"),
		Debit:           1510,
		Credit:          1200,
		QualityRelevant: true,
	})
	return &booking.RunResult{Journal: journal, Lots: lots, Tracker: tracker}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "booking.db"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.SaveRun(testResult())
	if err != nil {
		t.Fatalf("SaveRun() returned error: %v", err)
	}
	if runID == "" {
		t.Fatal("SaveRun() returned empty run id")
	}

	lots, err := s.LoadLots(runID)
	if err != nil {
		t.Fatalf("LoadLots() returned error: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("got %d lots, want 1", len(lots))
	}
	l := lots[0]
	if l.Key != "ACME" || !l.Quantity.Equal(booking.Q(100)) || !l.Cost.Equal(booking.M(1000, "EUR")) {
		t.Errorf("loaded lot = %+v", l)
	}
	if l.Cost.Currency() != "EUR" {
		t.Errorf("loaded currency = %q, want EUR", l.Cost.Currency())
	}

	tracker, err := s.LoadProcessed(runID)
	if err != nil {
		t.Fatalf("LoadProcessed() returned error: %v", err)
	}
	if _, ok := tracker.Processed("U100", 1); !ok {
		t.Error("processed record lost in round trip")
	}

	journal, err := s.LoadJournal(runID)
	if err != nil {
		t.Fatalf("LoadJournal() returned error: %v", err)
	}
	if journal.Len() != 1 {
		t.Fatalf("got %d journal lines, want 1", journal.Len())
	}
	line := journal.Lines()[0]
	if line.RuleID != "ATG_0000005_0000001" || !line.Amount.Equal(booking.M(1000, "EUR")) {
		t.Errorf("loaded line = %+v", line)
	}
	if !line.QualityRelevant || line.Debit != 1510 {
		t.Errorf("loaded line flags = %+v", line)
	}
}

func TestLatestRun(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.LatestRun(); err == nil {
		t.Error("LatestRun() on an empty store should fail")
	}

	first, err := s.SaveRun(testResult())
	if err != nil {
		t.Fatalf("SaveRun() returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := s.SaveRun(testResult())
	if err != nil {
		t.Fatalf("SaveRun() returned error: %v", err)
	}
	if first == second {
		t.Fatal("run ids must be unique")
	}

	latest, err := s.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun() returned error: %v", err)
	}
	if latest != second {
		t.Errorf("latest = %s, want the second run %s", latest, second)
	}
}
