package booking

import "slices"

// Synthetic accounts used only by the closing simulation, outside the fixed
// chart on purpose.
const (
	acctProfitAndLoss AccountNo = 9990 // GuV
	acctEquity        AccountNo = 9980 // Eigenkapital
	acctClosing       AccountNo = 9999 // Schlussbilanzkonto
)

// Balance is the debit and credit column of one account in the trial balance.
type Balance struct {
	Debit  Money `json:"debit"`
	Credit Money `json:"credit"`
}

// Saldo is the debit surplus of the account, negative for a credit surplus.
func (b Balance) Saldo() Money { return b.Debit.Sub(b.Credit) }

// ClosingResult is the outcome of a simulated year end closing.
type ClosingResult struct {
	// Balances holds the per account columns after all closing transfers.
	// Closed accounts have equal debit and credit sums.
	Balances map[AccountNo]Balance
	// ProfitLoss is the credit surplus of the profit and loss account before
	// it closes into equity: positive for a profit, negative for a loss.
	ProfitLoss Money
	// Saldo is the closing balance account's credit minus debit, rounded to
	// the cent. A consistent journal closes to exactly zero.
	Saldo Money
}

// closeInto transfers the saldo of one account onto the opposite side of
// another, leaving the source account balanced.
func closeInto(bal map[AccountNo]Balance, from, into AccountNo) {
	b, t := bal[from], bal[into]
	diff := b.Saldo()
	switch {
	case diff.IsPositive():
		b.Credit = b.Credit.Add(diff.Abs())
		t.Debit = t.Debit.Add(diff.Abs())
	case diff.IsNegative():
		b.Debit = b.Debit.Add(diff.Abs())
		t.Credit = t.Credit.Add(diff.Abs())
	}
	bal[from], bal[into] = b, t
}

// SimulateClosing runs the year end closing over a journal: income statement
// accounts close into profit and loss, profit and loss into equity, balance
// sheet accounts and equity into the closing balance account. The journal
// itself stays untouched, the simulation exists to prove that debits and
// credits work out.
func SimulateClosing(lines []JournalLine) ClosingResult {
	bal := make(map[AccountNo]Balance)
	for _, l := range lines {
		d := bal[l.Debit]
		d.Debit = d.Debit.Add(l.Amount)
		bal[l.Debit] = d
		c := bal[l.Credit]
		c.Credit = c.Credit.Add(l.Amount)
		bal[l.Credit] = c
	}

	accounts := make([]AccountNo, 0, len(bal))
	for acc := range bal {
		accounts = append(accounts, acc)
	}
	slices.Sort(accounts)

	for _, acc := range accounts {
		if acc.IsIncomeStatement() {
			closeInto(bal, acc, acctProfitAndLoss)
		}
	}

	g := bal[acctProfitAndLoss]
	pl := g.Credit.Sub(g.Debit)
	closeInto(bal, acctProfitAndLoss, acctEquity)

	for _, acc := range accounts {
		if !acc.IsIncomeStatement() {
			closeInto(bal, acc, acctClosing)
		}
	}
	closeInto(bal, acctEquity, acctClosing)

	s := bal[acctClosing]
	return ClosingResult{
		Balances:   bal,
		ProfitLoss: pl,
		Saldo:      s.Credit.Sub(s.Debit).Round(2),
	}
}
