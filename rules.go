package booking

// AccountNo is a bookkeeping account number. The chart of accounts is fixed
// business policy: leading digits 0-3 are balance-sheet accounts, 4-7 income
// statement accounts.
type AccountNo int

// Accounts of the fixed chart. Each broker account additionally maps to its
// own bank (cash clearing) account, substituted for acctBank at booking time.
const (
	// acctBank marks the side of a rule that books against the broker
	// account's designated cash account.
	acctBank AccountNo = 0

	acctSecurities      AccountNo = 1510 // securities in custody (long positions, short clearing)
	acctLongOptions     AccountNo = 1300 // purchased option rights, position increases
	acctShortSettlement AccountNo = 1810 // short close-out without gain or loss
	acctOptionLiability AccountNo = 3500 // written option obligations
	acctOptionIncome    AccountNo = 4830 // realized option premiums
	acctFxGains         AccountNo = 4840 // currency gains
	acctSaleProceeds    AccountNo = 4852 // stock sale proceeds (profitable sales)
	acctSaleDisposal    AccountNo = 4858 // stock disposal contra for profitable sales
	acctDerivativeGains AccountNo = 4905 // future and CFD trading gains
	acctFees            AccountNo = 6300 // fees and trading losses
	acctFxLosses        AccountNo = 6880 // currency losses
	acctSaleLosses      AccountNo = 6892 // stock sale losses
	acctLossDisposal    AccountNo = 6898 // stock disposal contra for losing sales
	acctDividends       AccountNo = 7020 // dividend income
	acctInterestIncome  AccountNo = 7100 // interest received
	acctOtherLosses     AccountNo = 7210 // residual close-out losses
	acctInterestPaid    AccountNo = 7300 // interest paid
	acctWithholding     AccountNo = 7639 // foreign withholding tax
)

// Class returns the leading digit of the account number.
func (a AccountNo) Class() int {
	n := int(a)
	if n < 0 {
		n = -n
	}
	for n >= 10 {
		n /= 10
	}
	return n
}

// IsIncomeStatement reports whether the account closes into the profit and
// loss account at year end (classes 4-7); the others close into the closing
// balance account (classes 0-3).
func (a AccountNo) IsIncomeStatement() bool {
	c := a.Class()
	return c >= 4 && c <= 7
}

// Rule is one entry of the booking decision table: a named treatment mapping
// a classified business event onto a fixed debit/credit account pair.
// QualityRelevant marks the line of a pair whose amount must reconcile
// against the source record's amount.
type Rule struct {
	ID              string
	Desc            string
	Subdesc         string
	Debit           AccountNo
	Credit          AccountNo
	QualityRelevant bool
}

// Cash, fee and opening rules, selected directly by the classifier.
var (
	ruleFutureAdjLoss = Rule{"ATG_0000010_0000020", "Futures-Handel", "Verlust", acctFees, acctBank, true}
	ruleFutureAdjGain = Rule{"ATG_0000010_0000025", "Futures-Handel", "Gewinn", acctBank, acctDerivativeGains, true}

	ruleAssignPutPremium  = Rule{"ATG_0000004_0000002", "Zuteilung einer verkauften Optionsposition", "Verbuchen der Put-Prämie", acctOptionLiability, acctOptionIncome, false}
	ruleAssignCallPremium = Rule{"ATG_0000004_0000003", "Zuteilung einer verkauften Optionsposition", "Verbuchen der Call-Prämie", acctOptionLiability, acctOptionIncome, false}
	ruleAssignStockBuy    = Rule{"ATG_0000004_0000001", "Einbuchen einer verkauften Option", "Zuteilung des Puts", acctSecurities, acctBank, true}
	ruleAssignStockShort  = Rule{"ATG_0000004_0000004", "Zuteilung einer verkauften Optionsposition", "keine offene Position => Short", acctSecurities, acctBank, true}

	ruleBrokerFee = Rule{"ATG_0000010_0000001", "Investitionszinsen", "Zinszahlung", acctInterestPaid, acctBank, true}

	ruleStockBuyOpen    = Rule{"ATG_0000005_0000001", "Aktienkauf", "Eröffnung oder Erhöhung der Position", acctSecurities, acctBank, true}
	ruleOptionBuyOpen   = Rule{"ATG_0000002_0000003", "Optionkauf", "keine offene Position", acctSecurities, acctBank, true}
	ruleOptionBuyRaise  = Rule{"ATG_0000002_0000007", "Optionkauf", "Erhöhung der bestehenden Long-Position", acctLongOptions, acctBank, true}
	ruleOptionSellOpen  = Rule{"ATG_0000002_0000001", "Eröffnen einer Stillhalterposition", "Eröffnung ohne bestehende Long-Position", acctBank, acctOptionLiability, true}
	ruleOptionSellRaise = Rule{"ATG_0000002_0000002", "Eröffnen einer Stillhalterposition", "Erhöhung der Shortposition", acctBank, acctOptionLiability, true}
	ruleStockSellShort  = Rule{"ATG_0000006_0000005", "Aktienverkauf", "Eröffnung oder Erhöhung der Shortposition", acctBank, acctSecurities, true}

	ruleCFDLoss    = Rule{"ATG_0000010_0000002", "CFD-Handel", "Verlust", acctFees, acctBank, true}
	ruleCFDGain    = Rule{"ATG_0000010_0000001", "CFD-Handel", "Gewinn", acctBank, acctDerivativeGains, true}
	ruleFutLoss    = Rule{"ATG_0000010_0000020", "Future-Handel", "Verlust", acctFees, acctBank, true}
	ruleFutGain    = Rule{"ATG_0000010_0000025", "Future-Handel", "Gewinn", acctBank, acctDerivativeGains, true}
	ruleCFDIntPaid = Rule{"ATG_0000009_0000001", "CFD-Handel", "Zinsaufwendung", acctInterestPaid, acctBank, true}
	ruleCFDIntRecv = Rule{"ATG_0000009_0000002", "CFD-Handel", "Zinsgewinne", acctBank, acctInterestPaid, true}
	ruleCFDFxLoss  = Rule{"ATG_0000010_0000004", "CFD-Handel", "Kursverlust", acctFxLosses, acctBank, true}
	ruleCFDFxGain  = Rule{"ATG_0000010_0000003", "CFD-Handel", "Kursgewinn", acctBank, acctFxGains, true}

	ruleInterestPaid = Rule{"ATG_0000009_0000001", "Zinsaufwendungen", "Bezahlte Zinsen", acctInterestPaid, acctBank, true}
	ruleInterestRecv = Rule{"ATG_0000009_0000002", "Zinsaufwendungen", "Erhaltene Zinsen", acctBank, acctInterestIncome, true}

	ruleDividend      = Rule{"ATG_0000008_0000001", "Dividendeneinnahmen", "Verbuchung der Dividenden", acctBank, acctDividends, true}
	rulePaymentInLieu = Rule{"ATG_0000008_0000003", "Dividendeneinnahmen", "Payment in Lieu of Dividend", acctBank, acctDividends, true}
	ruleWithholding   = Rule{"ATG_0000008_0000002", "Dividendeneinnahmen", "Verbuchung der Quellensteuer", acctWithholding, acctBank, true}

	ruleExpiration = Rule{"ATG_0000003_0000001", "Expiration einer Stillhalterposition", "Verbuchen des Gewinns", acctOptionLiability, acctOptionIncome, false}

	ruleForexGain = Rule{"ATG_0000011_0000001", "Währungsumrechnung", "Verbuchung des Gewinns", acctBank, acctFxGains, true}
	ruleForexLoss = Rule{"ATG_0000011_0000002", "Währungsumrechnung", "Verbuchung des Verlusts", acctBank, acctFxLosses, true}

	ruleOtherFeeCost   = Rule{"ATG_0000007_0000001", "Marktdatengebuehren", "Verbuchung der Kosten", acctFees, acctBank, true}
	ruleOtherFeeCredit = Rule{"ATG_0000007_0000002", "Marktdatengebuehren", "Verbuchung der Gutschrift", acctBank, acctFees, true}
	ruleSalesTax       = Rule{"ATG_0000007_0000003", "Marktdatengebuehren", "Steuerverbuchung", acctFees, acctBank, true}
)

// Closing rules, selected by the FIFO matcher on
// (asset category, direction, profit/loss classification). A profitable or
// losing close books a pair: the quality relevant settlement line plus the
// disposal or P&L leg; a breakeven close books a single balancing line.
var (
	ruleStockSellProfit         = Rule{"ATG_0000006_0000001", "Aktienverkauf", "Erlösbuchung", acctBank, acctSaleProceeds, true}
	ruleStockSellProfitDisposal = Rule{"ATG_0000006_0000002", "Aktienverkauf", "Abgang des Wertpapiers", acctSaleDisposal, acctSecurities, false}
	ruleStockSellLoss           = Rule{"ATG_0000006_0000003", "Aktienverkauf", "Aufwandsbuchung", acctBank, acctSaleLosses, true}
	ruleStockSellLossDisposal   = Rule{"ATG_0000006_0000004", "Aktienverkauf", "Abgang des Wertpapiers", acctLossDisposal, acctSecurities, false}
	ruleStockSellEven           = Rule{"ATG_0000006_0000020", "Aktienverkauf", "Schließen eines Long ohne Gewinn oder Verlust", acctBank, acctSecurities, true}

	ruleStockBuybackProfit         = Rule{"ATG_0000005_0000002", "Aktienkauf", "Gewinnbuchung", acctSaleProceeds, acctBank, true}
	ruleStockBuybackProfitDisposal = Rule{"ATG_0000005_0000003", "Aktienkauf", "Abgang des Wertpapiers", acctSecurities, acctSaleDisposal, false}
	ruleStockBuybackLoss           = Rule{"ATG_0000005_0000004", "Aktienverkauf", "Verlustbuchung", acctSaleLosses, acctBank, true}
	ruleStockBuybackLossDisposal   = Rule{"ATG_0000005_0000005", "Aktienverkauf", "Abgang des Wertpapiers", acctSecurities, acctLossDisposal, false}
	ruleStockBuybackEven           = Rule{"ATG_0000005_0000010", "Aktienverkauf", "Schließen eines Shorts ohne Gewinn oder Verlust", acctSecurities, acctShortSettlement, true}

	ruleShortOptionClose     = Rule{"ATG_0000001_0000002", "Schließen einer verkauften Optionsposition", "Ausbuchen der Verbindlichkeit", acctOptionLiability, acctBank, true}
	ruleShortOptionGain      = Rule{"ATG_0000001_0000003", "Schließen einer verkauften Optionsposition", "Verbuchen des Gewinns", acctOptionLiability, acctOptionIncome, false}
	ruleShortOptionLoss      = Rule{"ATG_0000001_0000004", "Schließen einer verkauften Optionsposition", "Verbuchen des Verlusts", acctFees, acctOptionLiability, false}
	ruleShortOptionEven      = Rule{"ATG_0000001_0000001", "Schließen einer verkauften Optionsposition", "Rückbuchen ohne Gewinn oder Verlust", acctOptionLiability, acctBank, true}
	ruleShortOptionLossResid = Rule{"ATG_0000001_0000005", "Schließen einer verkauften Optionsposition", "Verbuchen des Restverlusts", acctOtherLosses, acctBank, false}

	ruleLongOptionClose = Rule{"ATG_0000002_0000005", "Schließen einer gekauften Optionsposition", "Ausbuchen des Ausübungsrechts", acctBank, acctSecurities, true}
	ruleLongOptionGain  = Rule{"ATG_0000002_0000005", "Schließen einer gekauften Optionsposition", "Verbuchen des Gewinns", acctSecurities, acctOptionIncome, false}
	ruleLongOptionLoss  = Rule{"ATG_0000002_0000006", "Schließen einer gekauften Optionsposition", "Verbuchen des Verlusts", acctFees, acctSecurities, false}
	ruleLongOptionEven  = Rule{"ATG_0000002_0000004", "Schließen einer gekauften Optionsposition", "Rückbuchen ohne Gewinn oder Verlust", acctBank, acctSecurities, true}
)
