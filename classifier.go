package booking

import (
	"log"
	"strings"
)

// classify books a single activity record: it resolves the open position
// state, dispatches on activity code, asset category and direction, and
// either books directly against the rule table, opens or increases a lot, or
// hands the record to the FIFO matcher.
//
// Records already present in the processing tracker are skipped before any
// line can be emitted, so reprocessing a feed is idempotent.
func (a *accountRun) classify(r ActivityRecord) {
	if _, done := a.tracker.Processed(r.AccountID, r.TransactionID); done {
		return
	}

	open, key := a.book.Resolve(r)
	positionOpen := len(open) > 0
	if positionOpen && key != r.lotKey() {
		// renamed underlying: continue under the symbol the lot is open under
		r.Symbol = key
	}
	if !positionOpen {
		// a record with no matching open position starts a fresh lot; the
		// snapshot prune drops the entries that never were real positions
		a.book.OpenOrIncrease(r)
	}
	net := netQuantity(open)

	switch r.ActivityCode {
	case Adjustment:
		if r.AssetCategory != Future {
			a.unclassified(r)
			return
		}
		a.bookSigned(r, ruleFutureAdjLoss, ruleFutureAdjGain, "")

	case Assignment:
		switch {
		case r.AssetCategory.isOption() && positionOpen:
			// assignment of a written option realizes its premium
			var rule Rule
			switch r.PutCall {
			case "P":
				rule = ruleAssignPutPremium
			case "C":
				rule = ruleAssignCallPremium
			default:
				a.unclassified(r)
				return
			}
			first := open[0]
			a.bookLine(r, rule, first.Cost, "")
			a.book.Close(first.AccountID, first.TransactionID)
		case r.AssetCategory == Stock:
			switch r.BuySell {
			case "BUY":
				a.bookLine(r, ruleAssignStockBuy, r.Amount, "")
				a.book.OpenOrIncrease(r)
			case "SELL":
				switch {
				case !positionOpen:
					a.bookLine(r, ruleAssignStockShort, r.Amount, "")
				case net.IsNegative():
					a.bookLine(r, ruleAssignStockShort, r.Amount, "")
					a.book.OpenOrIncrease(r)
				case net.IsPositive():
					a.carry = a.closePositionFIFO(DirSell, r, open, a.carry)
				}
			}
		default:
			a.unclassified(r)
			if r.Amount.IsZero() {
				a.track(r)
			}
		}

	case BrokerFee:
		a.bookLine(r, ruleBrokerFee, r.Amount, "")

	case Buy:
		switch {
		case r.AssetCategory == Stock:
			switch {
			case !positionOpen, !net.IsNegative():
				a.bookLine(r, ruleStockBuyOpen, r.Amount, "")
				a.book.OpenOrIncrease(r)
			default:
				a.carry = a.closePositionFIFO(DirBuyToCloseShort, r, open, a.carry)
			}
		case r.AssetCategory.isOption():
			switch {
			case !positionOpen:
				a.bookLine(r, ruleOptionBuyOpen, r.Amount, "")
				a.book.OpenOrIncrease(r)
			case net.IsPositive():
				a.bookLine(r, ruleOptionBuyRaise, r.Amount, "")
				a.book.OpenOrIncrease(r)
			default:
				a.carry = a.closePositionFIFO(DirBuyToCloseShort, r, open, a.carry)
			}
		case r.AssetCategory == CFD:
			a.bookSigned(r, ruleCFDLoss, ruleCFDGain, "")
		case r.AssetCategory == Future:
			a.bookSigned(r, ruleFutLoss, ruleFutGain, "")
		default:
			a.unclassified(r)
		}

	case CFDCharge:
		// only interest and price differences arrive under this code, the
		// CFD trades themselves come in as BUY and SELL
		switch {
		case r.Symbol == "" && strings.Contains(r.Description, "CFD INTEREST"):
			if r.Amount.IsPositive() {
				a.bookLine(r, ruleCFDIntRecv, r.Amount, r.Description)
			} else {
				a.bookLine(r, ruleCFDIntPaid, r.Amount, r.Description)
			}
			a.book.Close(r.AccountID, r.TransactionID)
		case r.Symbol != "" && strings.Contains(r.Description, "USD"):
			switch {
			case r.Amount.IsNegative():
				a.bookLine(r, ruleCFDFxLoss, r.Amount, r.Description)
			case r.Amount.IsPositive():
				a.bookLine(r, ruleCFDFxGain, r.Amount, r.Description)
			default:
				a.unclassified(r)
			}
		}

	case CreditInterest, DebitInterest:
		if r.Amount.IsPositive() {
			a.bookLine(r, ruleInterestRecv, r.Amount, r.Description)
		} else {
			a.bookLine(r, ruleInterestPaid, r.Amount, r.Description)
		}

	case Dividend:
		a.bookLine(r, ruleDividend, r.Amount, "")

	case Expiration:
		if !r.AssetCategory.isOption() {
			a.unclassified(r)
			return
		}
		switch {
		case positionOpen:
			// an expired written option realizes its full premium
			first := open[0]
			a.bookLine(r, ruleExpiration, first.Cost, "")
			a.book.Close(first.AccountID, first.TransactionID)
		case r.Amount.IsZero():
			a.track(r)
		default:
			a.unclassified(r)
		}

	case Forex:
		if r.AssetCategory != Cash {
			a.unclassified(r)
			return
		}
		a.bookSigned(r, ruleForexLoss, ruleForexGain, "")

	case WithholdingTax:
		a.bookLine(r, ruleWithholding, r.Amount, "")

	case OtherFee:
		if r.Amount.IsPositive() {
			a.bookLine(r, ruleOtherFeeCredit, r.Amount, "")
		} else {
			a.bookLine(r, ruleOtherFeeCost, r.Amount, "")
		}

	case PaymentInLieu:
		a.bookLine(r, rulePaymentInLieu, r.Amount, "")

	case SalesTax:
		a.bookLine(r, ruleSalesTax, r.Amount, "")

	case Sell:
		switch {
		case r.AssetCategory == CFD:
			// daily settled, no position bookkeeping beyond the cash effect
			switch {
			case r.Amount.IsNegative():
				a.bookLine(r, ruleCFDLoss, r.Amount, "")
			case r.Amount.IsPositive():
				a.bookLine(r, ruleCFDGain, r.Amount, "")
				a.book.Close(r.AccountID, r.TransactionID)
			default:
				a.track(r)
			}
		case r.AssetCategory == Future:
			a.bookSigned(r, ruleFutLoss, ruleFutGain, "")
		case r.AssetCategory.isOption():
			switch {
			case !positionOpen:
				a.bookLine(r, ruleOptionSellOpen, r.Amount, "")
				a.book.OpenOrIncrease(r)
			case net.IsNegative():
				a.bookLine(r, ruleOptionSellRaise, r.Amount, "")
				a.book.OpenOrIncrease(r)
			case net.IsPositive():
				a.carry = a.closePositionFIFO(DirSellToCloseLong, r, open, a.carry)
			}
		case r.AssetCategory == Stock:
			switch {
			case !positionOpen:
				a.bookLine(r, ruleStockSellShort, r.Amount, "")
			case net.IsNegative():
				a.bookLine(r, ruleStockSellShort, r.Amount, "")
				a.book.OpenOrIncrease(r)
			case net.IsPositive():
				a.carry = a.closePositionFIFO(DirSell, r, open, a.carry)
			}
		default:
			a.unclassified(r)
		}

	default:
		a.unclassified(r)
	}
}

// bookSigned books a cash event against the loss rule for negative amounts
// and the gain rule for positive ones. Zero amounts carry no monetary effect
// and are only marked as processed, no empty line is booked.
func (a *accountRun) bookSigned(r ActivityRecord, loss, gain Rule, text string) {
	switch {
	case r.Amount.IsNegative():
		a.bookLine(r, loss, r.Amount, text)
	case r.Amount.IsPositive():
		a.bookLine(r, gain, r.Amount, text)
	default:
		a.track(r)
	}
}

// unclassified records a classification fault. The record stays out of the
// tracker on purpose: skipping it silently would hide it, this way the
// reconciliation check reports it as unprocessed.
func (a *accountRun) unclassified(r ActivityRecord) {
	log.Printf("account %s: no booking treatment for activity %s / category %s (transaction %d)",
		r.AccountID, r.ActivityCode, r.AssetCategory, r.TransactionID)
	a.fault(Fault{
		Kind:          ClassificationFault,
		AccountID:     r.AccountID,
		TransactionID: r.TransactionID,
		Message:       "no booking treatment for " + string(r.ActivityCode) + " / " + string(r.AssetCategory),
	})
}
