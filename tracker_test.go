package booking

import (
	"testing"
	"time"
)

func TestTrackerDeduplicates(t *testing.T) {
	tr := NewTracker()
	if !tr.Record("U100", 1, EUR(10), day(time.March, 3)) {
		t.Error("first Record() should insert")
	}
	if tr.Record("U100", 1, EUR(99), day(time.March, 4)) {
		t.Error("second Record() for the same id should be a no-op")
	}

	p, ok := tr.Processed("U100", 1)
	if !ok {
		t.Fatal("Processed() should find the record")
	}
	if !p.Amount.Equal(EUR(10)) {
		t.Errorf("amount = %s, want the first write's 10", p.Amount)
	}
	if len(tr.Records()) != 1 {
		t.Errorf("got %d records, want 1", len(tr.Records()))
	}
}

func TestTrackerScopesByAccount(t *testing.T) {
	tr := NewTracker()
	tr.Record("U100", 1, EUR(10), day(time.March, 3))
	if _, ok := tr.Processed("U200", 1); ok {
		t.Error("same transaction id on another account must not be processed")
	}
}

func TestTrackerMerge(t *testing.T) {
	a, b := NewTracker(), NewTracker()
	a.Record("U100", 1, EUR(10), day(time.March, 3))
	b.Record("U100", 1, EUR(99), day(time.March, 4))
	b.Record("U200", 2, EUR(20), day(time.March, 5))

	a.Merge(b)
	if len(a.Records()) != 2 {
		t.Fatalf("got %d records after merge, want 2", len(a.Records()))
	}
	p, _ := a.Processed("U100", 1)
	if !p.Amount.Equal(EUR(10)) {
		t.Errorf("merge must keep the first write, got %s", p.Amount)
	}
}
