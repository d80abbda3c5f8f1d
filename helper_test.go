package booking

import "time"

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create a date in the test year
func day(month time.Month, d int) Date { return NewDate(2025, month, d) }

// trade builds a minimal trade record for tests.
func trade(txid int64, code ActivityCode, cat AssetCategory, symbol string, qty float64, amount float64) ActivityRecord {
	buySell := "BUY"
	if code == Sell || qty < 0 {
		buySell = "SELL"
	}
	return ActivityRecord{
		AccountID:     "U100",
		TransactionID: txid,
		Date:          day(time.March, 3),
		ActivityCode:  code,
		AssetCategory: cat,
		Symbol:        symbol,
		BuySell:       buySell,
		Quantity:      Q(qty),
		Amount:        EUR(amount),
	}
}

// cash builds a symbol-less cash record for tests.
func cash(txid int64, code ActivityCode, desc string, amount float64) ActivityRecord {
	return ActivityRecord{
		AccountID:     "U100",
		TransactionID: txid,
		Date:          day(time.March, 3),
		ActivityCode:  code,
		AssetCategory: Cash,
		Description:   desc,
		Amount:        EUR(amount),
	}
}

// newTestRun builds an empty single-account run for classifier and matcher tests.
func newTestRun() *accountRun {
	return &accountRun{
		accountID: "U100",
		bank:      1200,
		book:      NewLotBook(),
		journal:   NewJournal(),
		tracker:   NewTracker(),
	}
}

// testConfig is the engine configuration used across tests.
func testConfig() RunConfig {
	return RunConfig{
		BankAccounts: map[string]AccountNo{"U100": 1200, "U200": 1210},
	}
}
