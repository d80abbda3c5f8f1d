package booking

import "fmt"

// ActivityCode identifies the kind of broker activity a statement line reports.
type ActivityCode string

const (
	Adjustment     ActivityCode = "ADJ"
	Assignment     ActivityCode = "ASSIGN"
	BrokerFee      ActivityCode = "BFEE"
	Buy            ActivityCode = "BUY"
	CFDCharge      ActivityCode = "CFD"
	CreditInterest ActivityCode = "CINT"
	DebitInterest  ActivityCode = "DINT"
	Dividend       ActivityCode = "DIV"
	Expiration     ActivityCode = "EXP"
	Forex          ActivityCode = "FOREX"
	WithholdingTax ActivityCode = "FRTAX"
	OtherFee       ActivityCode = "OFEE"
	PaymentInLieu  ActivityCode = "PIL"
	Sell           ActivityCode = "SELL"
	SalesTax       ActivityCode = "STAX"
	// Withdrawal and Deposit are excluded upstream; they only ever appear in
	// raw feeds and are filtered before classification.
	Withdrawal ActivityCode = "WITH"
	Deposit    ActivityCode = "DEP"
)

// AssetCategory identifies the instrument class of a statement line.
type AssetCategory string

const (
	Stock         AssetCategory = "STK"
	Option        AssetCategory = "OPT"
	FuturesOption AssetCategory = "FOP"
	CFD           AssetCategory = "CFD"
	Future        AssetCategory = "FUT"
	Cash          AssetCategory = "CASH"
)

// isOption reports whether the category is an option style instrument,
// exchange traded or on futures.
func (c AssetCategory) isOption() bool { return c == Option || c == FuturesOption }

// ActivityRecord is one normalized line of the broker's trade and cash
// activity feed. Records are immutable inputs; the import collaborator owns
// parsing and validation of the raw statement.
type ActivityRecord struct {
	AccountID     string        `json:"accountId"`
	TransactionID int64         `json:"transactionID"`
	Date          Date          `json:"date"`
	SettleDate    Date          `json:"settleDate,omitzero"`
	ActivityCode  ActivityCode  `json:"activityCode"`
	AssetCategory AssetCategory `json:"assetCategory"`
	Symbol        string        `json:"symbol,omitempty"`
	Underlying    string        `json:"underlyingSymbol,omitempty"`
	Description   string        `json:"activityDescription,omitempty"`
	BuySell       string        `json:"buySell,omitempty"` // "BUY" or "SELL" on trades
	PutCall       string        `json:"putCall,omitempty"` // "P" or "C" on options
	Quantity      Quantity      `json:"tradeQuantity"`     // signed: positive long, negative short
	Amount        Money         `json:"amount"`            // signed monetary value
	Commission    Money         `json:"tradeCommission"`
}

// Reference builds the journal free-text reference for this record, the
// trailing part defaults to quantity and symbol.
func (r ActivityRecord) Reference(text string) string {
	if text != "" {
		return fmt.Sprintf("%d_%s_%s_%s", r.TransactionID, r.ActivityCode, r.AssetCategory, text)
	}
	return fmt.Sprintf("%d_%s_%s_%s_%s", r.TransactionID, r.ActivityCode, r.AssetCategory, r.Quantity, r.Symbol)
}

// lotKey is the open-position lookup key: trades are keyed by symbol,
// symbol-less cash lines by their activity description.
func (r ActivityRecord) lotKey() string {
	if r.Symbol != "" {
		return r.Symbol
	}
	return r.Description
}
