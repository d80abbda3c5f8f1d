package booking

// Direction is the matcher's view of a closing trade: what the incoming
// activity does to the open exposure it is matched against.
type Direction string

const (
	DirBuy              Direction = "BUY"
	DirSell             Direction = "SELL"
	DirBuyToCloseShort  Direction = "BUYTOCLOSESHORT"
	DirSellToCloseLong  Direction = "SELLTOCLOSELONG"
	DirSellToCloseShort Direction = "SELLTOCLOSESHORT"
)

// isBuySide reports whether the close pays cash out (buying back exposure).
func (d Direction) isBuySide() bool { return d == DirBuy || d == DirBuyToCloseShort }

// Outcome classifies one matched close step.
type Outcome int

const (
	Breakeven Outcome = iota
	Profit
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Profit:
		return "profit"
	case Loss:
		return "loss"
	case Breakeven:
		return "breakeven"
	default:
		return "unknown"
	}
}

// pnlPrecision is the rounding applied before comparing cost basis and
// proceeds, to absorb the proportional-allocation arithmetic.
const pnlPrecision = 8

// ClassifyPL computes the realized result of one matched close step and
// classifies it. The sign convention flips with the direction so that a
// favorable trade always yields a positive result: buying back exposure is
// favorable when the cost basis exceeds what is paid, selling exposure is
// favorable when the proceeds exceed the cost basis. Breakeven is exact
// equality after rounding; amounts are decimals, so equal allocations
// compare equal.
func ClassifyPL(dir Direction, costBasis, proceeds Money) (Outcome, Money) {
	costBasis = costBasis.Round(pnlPrecision)
	proceeds = proceeds.Round(pnlPrecision)

	var result Money
	if dir.isBuySide() {
		result = costBasis.Sub(proceeds)
	} else {
		result = proceeds.Sub(costBasis)
	}

	switch {
	case result.IsNegative():
		return Loss, result
	case result.IsPositive():
		return Profit, result
	default:
		return Breakeven, result
	}
}
