package booking

import "log"

// Carry holds the matcher's accumulators between two closing records of the
// same consolidated trade. The broker occasionally splits one economic close
// over several statement lines; whatever quantity, cost basis or proceeds a
// walk could not settle is handed to the next close of the same key.
type Carry struct {
	StockAdjustment   Quantity // remaining quantity of the first lot touched by a prior pass
	RemainingCost     Money
	RemainingProceeds Money
}

// zeroed clamps negative accumulators, they only ever carry forward surplus.
func (c Carry) zeroed() Carry {
	if !c.StockAdjustment.IsPositive() {
		c.StockAdjustment = Q(0)
	}
	if !c.RemainingCost.IsPositive() {
		c.RemainingCost = M(0, "")
	}
	if !c.RemainingProceeds.IsPositive() {
		c.RemainingProceeds = M(0, "")
	}
	return c
}

// closePositionFIFO consumes the open lots oldest-first against a closing
// record. Each matched step reduces or removes a lot, classifies the realized
// result and books the corresponding pair of journal lines. It returns the
// updated carry for a close that spans further records.
//
// If the lots are exhausted while quantity remains to be closed, a
// MatchExhaustionFault is recorded: the completed steps stay booked (they are
// correct on their own) and the shortfall surfaces in the quality checks
// rather than being silently dropped.
func (a *accountRun) closePositionFIFO(dir Direction, r ActivityRecord, open []Lot, cv Carry) Carry {
	stocksToSell := r.Quantity.Abs()
	amountToSell := r.Amount.Abs()
	cv = cv.zeroed()
	adjustment := cv.StockAdjustment
	restCost := cv.RemainingCost
	proceeds := cv.RemainingProceeds

	a.track(r)

	for _, l := range open {
		if stocksToSell.IsZero() {
			break
		}

		lotQty := l.Quantity.Abs()
		if adjustment.IsPositive() {
			// a prior pass already consumed part of this lot
			lotQty = adjustment
		}
		lotCost := l.Cost.Abs()
		lotCostOriginal := lotCost

		var stepQty, newQty Quantity
		var stepCost, stepProceeds Money

		switch {
		case lotQty.Equal(stocksToSell):
			// the lot exactly covers the remaining close
			stepQty = stocksToSell
			if proceeds.IsPositive() {
				amountToSell = proceeds
			} else {
				proceeds = amountToSell
			}
			if restCost.IsZero() {
				restCost = lotCost
			} else {
				lotCost = restCost
			}
			stepProceeds = amountToSell.Div(stocksToSell).Mul(stepQty)
			stepCost = lotCost

			stocksToSell = Q(0)
			newQty = Q(0)
			proceeds = M(0, "")
			restCost = restCost.Sub(stepCost)

		case lotQty.LessThan(stocksToSell):
			// the lot is fully consumed, the close continues on the next lot
			stepQty = lotQty
			if proceeds.IsPositive() {
				amountToSell = proceeds
			} else {
				proceeds = amountToSell
			}
			if restCost.IsZero() {
				restCost = lotCost
			} else {
				lotCost = restCost
			}
			stepProceeds = amountToSell.Div(stocksToSell).Mul(stepQty)
			stepCost = lotCost

			stocksToSell = stocksToSell.Sub(stepQty)
			newQty = Q(0)
			proceeds = proceeds.Sub(stepProceeds)
			restCost = restCost.Sub(stepCost)

		default: // lot larger than the remaining close
			stepQty = stocksToSell
			if restCost.IsPositive() {
				lotCost = restCost
			}
			stepCost = lotCost.Div(lotQty).Mul(stepQty)
			if proceeds.IsPositive() {
				amountToSell = proceeds
			}
			stepProceeds = amountToSell

			stocksToSell = Q(0)
			if l.Quantity.IsNegative() {
				newQty = lotQty.Neg().Add(stepQty)
			} else {
				newQty = lotQty.Sub(stepQty)
			}
			proceeds = M(0, "")
			if restCost.IsZero() {
				restCost = lotCostOriginal.Sub(stepCost)
			} else {
				restCost = restCost.Sub(stepCost)
			}
		}

		// write the consumption back to the book by replacement
		adjustment = Q(0)
		if newQty.IsZero() {
			a.book.Close(l.AccountID, l.TransactionID)
		} else {
			a.book.Reduce(l.AccountID, l.TransactionID, newQty, restCost.Abs())
			restCost = M(0, "")
		}

		outcome, result := ClassifyPL(dir, stepCost, stepProceeds)
		a.bookCloseStep(dir, r, outcome, stepCost, stepProceeds, result)
	}

	if stocksToSell.IsPositive() {
		log.Printf("account %s: close of %s (transaction %d) exhausted open lots with %s left to close",
			r.AccountID, r.lotKey(), r.TransactionID, stocksToSell)
		a.fault(Fault{
			Kind:          MatchExhaustionFault,
			AccountID:     r.AccountID,
			TransactionID: r.TransactionID,
			Message:       "open lots insufficient to satisfy close of " + r.lotKey(),
		})
	}

	return Carry{StockAdjustment: adjustment, RemainingCost: restCost, RemainingProceeds: proceeds}
}

// bookCloseStep books the journal pair for one matched step, selected by
// (asset category, direction, outcome). Profitable and losing closes book the
// settlement line plus a disposal or P&L leg; breakeven closes book a single
// balancing line.
func (a *accountRun) bookCloseStep(dir Direction, r ActivityRecord, outcome Outcome, stepCost, stepProceeds, result Money) {
	type leg struct {
		rule   Rule
		amount Money
	}
	var legs []leg

	switch {
	case r.AssetCategory == Stock && dir == DirSell:
		switch outcome {
		case Profit:
			legs = []leg{{ruleStockSellProfit, stepProceeds}, {ruleStockSellProfitDisposal, stepCost}}
		case Loss:
			legs = []leg{{ruleStockSellLoss, stepProceeds}, {ruleStockSellLossDisposal, stepCost}}
		case Breakeven:
			legs = []leg{{ruleStockSellEven, stepCost}}
		}

	case r.AssetCategory == Stock && dir.isBuySide():
		switch outcome {
		case Profit:
			legs = []leg{{ruleStockBuybackProfit, stepProceeds}, {ruleStockBuybackProfitDisposal, stepCost}}
		case Loss:
			legs = []leg{{ruleStockBuybackLoss, stepProceeds}, {ruleStockBuybackLossDisposal, stepCost}}
		case Breakeven:
			legs = []leg{{ruleStockBuybackEven, stepCost}}
		}

	case r.AssetCategory.isOption() && dir == DirBuyToCloseShort:
		switch outcome {
		case Profit:
			legs = []leg{{ruleShortOptionClose, stepProceeds}, {ruleShortOptionGain, result}}
		case Loss:
			legs = []leg{{ruleShortOptionClose, stepProceeds}, {ruleShortOptionLoss, result}}
		case Breakeven:
			legs = []leg{{ruleShortOptionEven, stepProceeds}}
		}

	case r.AssetCategory.isOption() && dir == DirSellToCloseLong:
		switch outcome {
		case Profit:
			legs = []leg{{ruleLongOptionClose, stepProceeds}, {ruleLongOptionGain, result}}
		case Loss:
			legs = []leg{{ruleLongOptionClose, stepProceeds}, {ruleLongOptionLoss, result}}
		case Breakeven:
			legs = []leg{{ruleLongOptionEven, stepProceeds}}
		}

	case r.AssetCategory.isOption() && dir == DirSellToCloseShort:
		switch outcome {
		case Profit:
			legs = []leg{{ruleShortOptionClose, stepProceeds}, {ruleShortOptionGain, result}}
		case Loss:
			legs = []leg{{ruleShortOptionClose, stepProceeds}, {ruleShortOptionLossResid, result}}
		case Breakeven:
			legs = []leg{{ruleShortOptionEven, stepProceeds}}
		}

	default:
		log.Printf("account %s: no closing treatment for %s %s (transaction %d)",
			r.AccountID, r.AssetCategory, dir, r.TransactionID)
		a.fault(Fault{
			Kind:          ClassificationFault,
			AccountID:     r.AccountID,
			TransactionID: r.TransactionID,
			Message:       "no closing treatment for " + string(r.AssetCategory) + " " + string(dir),
		})
		return
	}

	for _, g := range legs {
		a.bookLine(r, g.rule, g.amount, "")
	}
}
