package booking

import "slices"

// JournalLine is one double-entry booking: an amount moved from the credit
// account to the debit account. The amount is always the absolute value of
// the monetary effect; direction is encoded entirely by the account pair.
type JournalLine struct {
	Account         string    `json:"account"`     // broker account id
	DocumentNo      int64     `json:"belegnummer"` // source transaction id
	RuleID          string    `json:"ruleId"`
	Desc            string    `json:"desc"`
	Subdesc         string    `json:"subdesc,omitempty"`
	Date            Date      `json:"date"`
	SettleDate      Date      `json:"settleDate"`
	Reference       string    `json:"reference"`
	Amount          Money     `json:"amount"`
	Debit           AccountNo `json:"debit"`
	Credit          AccountNo `json:"credit"`
	QualityRelevant bool      `json:"qualityRelevant"`
}

// Journal is the ordered sequence of booking lines produced by a run. Lines
// are appended in processing order and never mutated.
type Journal struct {
	lines []JournalLine
}

// NewJournal creates an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Lines returns all journal lines in booking order.
func (j *Journal) Lines() []JournalLine { return slices.Clone(j.lines) }

// Len returns the number of lines.
func (j *Journal) Len() int { return len(j.lines) }

// Append adds lines in order.
func (j *Journal) Append(lines ...JournalLine) {
	j.lines = append(j.lines, lines...)
}

// ForAccount returns the lines booked on a broker account, in order.
func (j *Journal) ForAccount(accountID string) []JournalLine {
	var out []JournalLine
	for _, l := range j.lines {
		if l.Account == accountID {
			out = append(out, l)
		}
	}
	return out
}

// QualityRelevantSum sums the amounts of the quality relevant lines of one
// broker account. It must reproduce the sum of absolute source amounts of
// the classified feed for that account.
func (j *Journal) QualityRelevantSum(accountID string) Money {
	var sum Money
	for _, l := range j.lines {
		if l.Account == accountID && l.QualityRelevant {
			sum = sum.Add(l.Amount)
		}
	}
	return sum
}

// line builds a journal line from a rule applied to a record. The acctBank
// placeholder is substituted with the broker account's cash account, the
// amount is stored as magnitude, and a missing settle date falls back to the
// trade date (the broker omits it on some line types).
func line(r ActivityRecord, rule Rule, amount Money, bank AccountNo, text string) JournalLine {
	debit, credit := rule.Debit, rule.Credit
	if debit == acctBank {
		debit = bank
	}
	if credit == acctBank {
		credit = bank
	}
	settle := r.SettleDate
	if settle.IsZero() {
		settle = r.Date
	}
	return JournalLine{
		Account:         r.AccountID,
		DocumentNo:      r.TransactionID,
		RuleID:          rule.ID,
		Desc:            rule.Desc,
		Subdesc:         rule.Subdesc,
		Date:            r.Date,
		SettleDate:      settle,
		Reference:       r.Reference(text),
		Amount:          amount.Abs(),
		Debit:           debit,
		Credit:          credit,
		QualityRelevant: rule.QualityRelevant,
	}
}
